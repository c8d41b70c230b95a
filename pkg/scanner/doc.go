// Package scanner drives trial-decryption and commitment-tree maintenance
// over a stream of blocks pulled from an external chain-data source (§4.9).
//
// A Scanner owns no persistent connection; it pulls one block at a time
// through a BlockSource, so the same Scanner works against a live RPC
// client, a replayed fixture, or (in tests) a canned slice of blocks.
package scanner
