package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isConnected() bool
	Status(ctx context.Context) error
	Store(ctx context.Context, key string) error
	Get(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) error
	Keys(ctx context.Context, prefix string) error
	Batch(ctx context.Context) error
	Delete(ctx context.Context, key string) error
	Export(ctx context.Context, prefix string) error
	Derive(ctx context.Context) error
	Stats() error
}

// optionalArg returns the first argument or "" when none was given.
func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// runREPL starts a simple read-eval-print loop for the VSS CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always available:
//	  - help            — show available commands
//	  - status          — show connection details and probe the server
//	  - derive          — derive a store id from a mnemonic
//	  - stats           — dump client metrics (Prometheus text format)
//	  - exit | quit     — leave the program
//
//	When connected:
//	  - store <key>     — store a value (read interactively)
//	  - get <key>       — fetch and print one item
//	  - list [prefix]   — list items under a prefix
//	  - keys [prefix]   — list key versions under a prefix
//	  - batch           — store several items atomically (read interactively)
//	  - delete <key>    — delete one item
//	  - export [prefix] — save fetched items to local files
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vss %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isConnected() {
				printlnFn("Available commands: store <key>, get <key>, (l)ist [prefix], keys [prefix], batch, delete <key>, export [prefix], status, derive, stats, exit")
			} else {
				printlnFn("Available commands: status, derive, stats, exit")
			}

		case "status":
			_ = a.Status(ctx)

		case "derive":
			_ = a.Derive(ctx)

		case "stats":
			_ = a.Stats()

		case "store":
			if !requireConnected(a) {
				continue
			}
			if len(args) == 0 {
				printlnFn("Usage: store <key>")
				continue
			}
			_ = a.Store(ctx, args[0])

		case "get":
			if !requireConnected(a) {
				continue
			}
			if len(args) == 0 {
				printlnFn("Usage: get <key>")
				continue
			}
			_ = a.Get(ctx, args[0])

		case "l", "list":
			if !requireConnected(a) {
				continue
			}
			_ = a.List(ctx, optionalArg(args))

		case "keys":
			if !requireConnected(a) {
				continue
			}
			_ = a.Keys(ctx, optionalArg(args))

		case "batch":
			if !requireConnected(a) {
				continue
			}
			_ = a.Batch(ctx)

		case "delete":
			if !requireConnected(a) {
				continue
			}
			if len(args) == 0 {
				printlnFn("Usage: delete <key>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "export":
			if !requireConnected(a) {
				continue
			}
			_ = a.Export(ctx, optionalArg(args))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requireConnected(a execIface) bool {
	if !a.isConnected() {
		printlnFn("Not connected; check the server, auth and store settings and restart")
		return false
	}
	return true
}
