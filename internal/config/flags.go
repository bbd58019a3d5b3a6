package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/vssclient/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string       base URL of the VSS HTTP endpoint (default from Config)
//	-auth string    URL of the LNURL-auth challenge endpoint
//	-store string   explicit store id
//	-prefix string  store id prefix for derivation
//	-t int          per-operation timeout in seconds (default from Config)
//
// The mnemonic and passphrase have no flag form.
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-auth", "-store", "-prefix", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the VSS endpoint")
	fs.StringVar(&cfg.LnurlAuthServerURL, "auth", cfg.LnurlAuthServerURL, "URL of the LNURL-auth endpoint")
	fs.StringVar(&cfg.StoreID, "store", cfg.StoreID, "store id")
	fs.StringVar(&cfg.StoreIDPrefix, "prefix", cfg.StoreIDPrefix, "store id prefix for derivation")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "operation timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Timeout = time.Duration(*timeout) * time.Second
}
