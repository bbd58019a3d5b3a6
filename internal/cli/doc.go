// Package cli provides the interactive VSS command-line client.
//
// It wires configuration, the store client, and a REPL for exercising the
// full operation surface against a live server. Typical flow: connect
// (prompting for the mnemonic when authenticated mode is configured and no
// mnemonic was supplied), then execute user commands.
//
// Key features:
//   - Store / Get / Delete single items
//   - List items or bare key versions under a prefix
//   - Atomic multi-item batch writes
//   - Export fetched items to local files
//   - Derive a store id from a mnemonic without connecting
//   - Dump client metrics in Prometheus text format
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, Connect, and runREPL for details.
package cli
