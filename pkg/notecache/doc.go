// Package notecache implements the in-memory note cache (§4.7): three
// indices (by commitment, by nullifier, by address), a spent-nullifier
// set, per-address synced heights, and the current commitment tree state,
// plus the balance and reorg operations built on top of them.
package notecache
