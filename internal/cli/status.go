package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/dmitrijs2005/vssclient/internal/netx"
)

// probeTimeout bounds the reachability check so a dead server does not hang
// the REPL.
const probeTimeout = 3 * time.Second

// Status prints the connection details and probes server reachability.
func (a *App) Status(ctx context.Context) error {
	fmt.Printf("Server: %s\n", a.config.ServerURL)

	if a.isConnected() {
		fmt.Printf("Store: %s (%s)\n", a.client.StoreID(), a.Mode)
	} else {
		fmt.Println("Store: not connected")
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := netx.Probe(probeCtx, a.config.ServerURL); err != nil {
		fmt.Printf("Server unreachable: %s\n", err.Error())
	} else {
		fmt.Println("Server reachable")
	}
	return nil
}

// Stats dumps the client metric counters in Prometheus text format.
func (a *App) Stats() error {
	metrics.WritePrometheus(os.Stdout, false)
	return nil
}
