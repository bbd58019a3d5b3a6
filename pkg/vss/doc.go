// Package vss is a client for a Versioned Storage Service: a remote
// key-value store with per-key optimistic-concurrency versioning, prefix
// listing and an authenticated, end-to-end encrypted mode.
//
// # Overview
//
// The package provides:
//  1. A client handle (see Client) with the operation surface
//     Store/Get/List/ListKeys/PutWithKeyPrefix/Delete over the VSS wire
//     protocol (protobuf messages over HTTP POST).
//  2. An authenticated mode (see NewWithLnurlAuth) that derives the store
//     identity from a BIP39 mnemonic, encrypts every value client-side,
//     obfuscates key names, and authenticates via LNURL-auth with
//     transparent bearer-token renewal.
//  3. Deterministic store-identifier derivation (see DeriveStoreID) for
//     callers that need the identifier without opening a client.
//
// # Versioning
//
// The server assigns versions; the client never invents them. A write the
// server turns down because another writer won surfaces as
// ErrVersionConflict and is not retried. Batch writes via PutWithKeyPrefix
// are atomic: all items commit or none do.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrInvalidMnemonic, ErrAuthenticationFailed,
// ErrVersionConflict, ErrNotFound, ErrDecryptionFailed, ErrInvalidInput,
// ErrClientClosed. Unclassified server replies surface as
// *transport.StatusError with the HTTP status preserved.
//
// Concurrency & Contexts
//
// A Client is safe for concurrent use. All operations accept
// context.Context and honor cancellation; concurrent operations that need a
// fresh auth token share a single renewal round-trip.
//
// See Also
//
//   - Handle:     Client, New, NewWithLnurlAuth, Option
//   - Operations: Store, Get, List, ListKeys, PutWithKeyPrefix, Delete
//   - Identity:   DeriveStoreID
package vss
