// Package note implements the shielded note model (§3, §4.4): incoming
// viewing keys, full key sets, diversified payment addresses and their
// Bech32 encoding, note construction, and commitment/nullifier derivation.
package note
