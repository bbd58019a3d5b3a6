// Package proto holds the VSS wire messages and their binary codec.
//
// # Overview
//
// The VSS server speaks protobuf-encoded messages over HTTP POST with an
// octet-stream content type. The messages are small and the schema is frozen
// at the server boundary, so the codec is maintained by hand on top of
// protowire rather than generated; field numbers in this package are
// normative and must not be renumbered.
//
// Two message families live here:
//
//  1. Request/response pairs for the five endpoints (getObject, putObjects,
//     deleteObject, listKeyVersions, listObjects) plus the ErrorResponse
//     envelope returned on failures.
//  2. The encrypted-value envelope (Storable, EncryptionMetadata,
//     PlaintextBlob) used by the encryption layer for stored values.
//
// Unknown fields are skipped on decode so newer servers can add fields
// without breaking older clients.
package proto
