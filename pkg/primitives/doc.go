// Package primitives implements the cryptographic building blocks layered
// on top of the field and curve packages: the windowed Pedersen note
// commitment, the Pedersen value commitment, the nullifier PRF, PRF_expand,
// the note-encryption KDF and AEAD, and the Schnorr-on-Jubjub signature
// scheme shared by spend authorization and the binding signature (§4.3).
package primitives
