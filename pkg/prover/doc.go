// Package prover is the external Groth16 oracle the transaction builder
// calls into (§4.10, §6). The core never differentiates a local prover from
// a remote one; both satisfy the same Prover interface.
//
// GnarkProver is a concrete reference backend built on gnark/gnark-crypto
// over BLS12-381 — the same field this module's field package implements,
// which is exactly why a Sapling-style system picks an embedded twisted
// Edwards curve (Jubjub) in the first place. MockProver is a fast,
// deterministic stand-in for tests that never runs a real constraint
// system.
package prover
