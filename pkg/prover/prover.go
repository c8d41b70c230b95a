package prover

import (
	"context"
	"errors"
)

// ErrProverFailed is a sentinel for proof-generation failures (§7:
// ProverError). GnarkProver and MockProver return their underlying errors
// as they are, without wrapping them in it.
var ErrProverFailed = errors.New("prover: proof generation failed")

// SpendProofInputs is everything a Groth16 spend circuit needs as witness
// to prove knowledge of a spendable note without revealing it (§4.4, §4.10).
type SpendProofInputs struct {
	Ask         [32]byte // spend authorizing key, scalar LE bytes
	Nsk         [32]byte // nullifier-deriving key, scalar LE bytes
	Alpha       [32]byte // spend-auth randomizer, scalar LE bytes
	Rcv         [32]byte // value-commitment randomness, scalar LE bytes
	Value       uint64
	Diversifier [11]byte
	Rcm         [32]byte
	AuthPath    [32][32]byte
	Position    uint64
	Anchor      [32]byte
}

// SpendProof is the public material a spend description carries alongside
// its proof (§6): cv and rk are recomputed inside the circuit so the
// builder's own copies are checked implicitly by proof verification.
type SpendProof struct {
	Proof [192]byte
	Cv    [32]byte
	Rk    [32]byte
}

// OutputProofInputs is everything a Groth16 output circuit needs as
// witness to prove a well-formed new note commitment (§4.4, §4.10).
type OutputProofInputs struct {
	Rcv         [32]byte
	Value       uint64
	Diversifier [11]byte
	Pkd         [32]byte
	Rcm         [32]byte
}

// OutputProof is the public material an output description carries
// alongside its proof (§6).
type OutputProof struct {
	Proof [192]byte
	Cv    [32]byte
	Cmu   [32]byte
}

// Prover is the abstract Groth16 oracle the builder calls into; an
// implementation may run locally or delegate to a remote proving service
// (§4.10, §6).
type Prover interface {
	ProveSpend(ctx context.Context, in SpendProofInputs) (*SpendProof, error)
	ProveOutput(ctx context.Context, in OutputProofInputs) (*OutputProof, error)
}
