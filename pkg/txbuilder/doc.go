// Package txbuilder assembles a signed shielded transaction bundle from
// spendable notes and output recipients: it draws the per-input and
// per-output randomness, calls out to an external Prover for the Groth16
// proofs, computes the binding signature, and serializes the result to the
// canonical wire layout (§4.10, §6).
package txbuilder
