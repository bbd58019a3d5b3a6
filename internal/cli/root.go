package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if a.isConnected() {
		s = a.client.StoreID()
		if a.Mode != "" {
			s = s + " " + string(a.Mode)
		}
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to the VSS CLI (type 'help' for commands)")

	if err := a.Connect(ctx); err != nil {
		log.Printf("Connection not established: %s", err.Error())
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
