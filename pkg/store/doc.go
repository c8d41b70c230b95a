// Package store is the narrow persistence boundary the core depends on: a
// plain get/put/delete/clear key-value contract, with a pgx/v5-backed
// Postgres implementation for production use and an in-memory
// implementation for tests (§6, §9: "Async I/O around persistence").
// Record encoding is CBOR via fxamacker/cbor/v2, kept out of the Store
// interface itself so callers never need to know the wire format.
package store
