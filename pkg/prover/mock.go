package prover

import (
	"context"

	"golang.org/x/crypto/blake2b"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/field"
	"github.com/shieldpool/core/pkg/primitives"
)

// MockProver recomputes the same public commitments a real circuit would
// prove knowledge of, and fills the proof bytes with a deterministic
// expansion of the witness instead of running a real constraint system.
// It never opens or leaks the witness on the wire (the expansion is one-way),
// but it also proves nothing: callers must not treat a MockProver's output
// as sound outside tests.
type MockProver struct{}

// ProveSpend implements Prover.
func (MockProver) ProveSpend(_ context.Context, in SpendProofInputs) (*SpendProof, error) {
	rcv := field.ScalarFromLEBytes(in.Rcv[:])
	cv := primitives.ValueCommit(in.Value, rcv)

	ask := field.ScalarFromLEBytes(in.Ask[:])
	alpha := field.ScalarFromLEBytes(in.Alpha[:])
	var randomized field.Scalar
	randomized.Add(ask, alpha)

	var rk curve.Point
	rk.ScalarMul(curve.SpendingKeyBase(), &randomized)

	return &SpendProof{
		Proof: expand192("ShP_MockSpend000", in.Ask[:], in.Nsk[:], in.Alpha[:], in.Rcv[:], in.Anchor[:]),
		Cv:    cv.Compress(),
		Rk:    rk.Compress(),
	}, nil
}

// ProveOutput implements Prover.
func (MockProver) ProveOutput(_ context.Context, in OutputProofInputs) (*OutputProof, error) {
	rcv := field.ScalarFromLEBytes(in.Rcv[:])
	cv := primitives.ValueCommit(in.Value, rcv)

	pkd, err := curve.Decompress(in.Pkd[:])
	if err != nil {
		return nil, err
	}
	rcm := field.ScalarFromLEBytes(in.Rcm[:])
	cmu := primitives.NoteCommit(in.Diversifier, pkd, in.Value, rcm)

	return &OutputProof{
		Proof: expand192("ShP_MockOutput00", in.Rcv[:], in.Rcm[:], in.Pkd[:]),
		Cv:    cv.Compress(),
		Cmu:   cmu,
	}, nil
}

// expand192 derives a deterministic 192-byte blob from the given fields via
// three chained BLAKE2b-512 hashes, the simplest way to fill a fixed-size
// opaque proof slot without a real constraint system.
func expand192(domain string, parts ...[]byte) [192]byte {
	var out [192]byte
	prev := blake2bSum(domain, parts...)
	copy(out[0:64], prev[:])
	prev = blake2bSum(domain, prev[:])
	copy(out[64:128], prev[:])
	prev = blake2bSum(domain, prev[:])
	copy(out[128:192], prev[:])
	return out
}

func blake2bSum(domain string, parts ...[]byte) [64]byte {
	h, _ := blake2b.New512([]byte(domain))
	for _, p := range parts {
		h.Write(p)
	}
	var out [64]byte
	copy(out[:], h.Sum(nil))
	return out
}
