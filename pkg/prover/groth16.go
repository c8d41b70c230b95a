package prover

import (
	"bytes"
	"context"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/field"
	"github.com/shieldpool/core/pkg/primitives"
)

// GnarkProver is the reference Groth16 backend, compiled once per circuit
// and reused across proofs. Setup performs a single-party (non-MPC)
// parameter generation, suitable for this module's own reference
// deployment rather than a production trusted setup (§4.10, §6).
type GnarkProver struct {
	spendCCS  constraint.ConstraintSystem
	spendPK   groth16.ProvingKey
	outputCCS constraint.ConstraintSystem
	outputPK  groth16.ProvingKey
}

// NewGnarkProver compiles both circuits and runs their (non-MPC) Groth16
// setup. This is expensive and meant to run once at process start.
func NewGnarkProver() (*GnarkProver, error) {
	spendCCS, err := frontend.Compile(ecc.BLS12_381.ScalarField(), r1cs.NewBuilder, &spendCircuit{})
	if err != nil {
		return nil, err
	}
	spendPK, _, err := groth16.Setup(spendCCS)
	if err != nil {
		return nil, err
	}

	outputCCS, err := frontend.Compile(ecc.BLS12_381.ScalarField(), r1cs.NewBuilder, &outputCircuit{})
	if err != nil {
		return nil, err
	}
	outputPK, _, err := groth16.Setup(outputCCS)
	if err != nil {
		return nil, err
	}

	return &GnarkProver{spendCCS: spendCCS, spendPK: spendPK, outputCCS: outputCCS, outputPK: outputPK}, nil
}

// ProveSpend implements Prover.
func (p *GnarkProver) ProveSpend(_ context.Context, in SpendProofInputs) (*SpendProof, error) {
	rcv := field.ScalarFromLEBytes(in.Rcv[:])
	cv := primitives.ValueCommit(in.Value, rcv)

	ask := field.ScalarFromLEBytes(in.Ask[:])
	alpha := field.ScalarFromLEBytes(in.Alpha[:])
	var randomized field.Scalar
	randomized.Add(ask, alpha)
	var rk curve.Point
	rk.ScalarMul(curve.SpendingKeyBase(), &randomized)

	assignment := &spendCircuit{
		Anchor:   beToBigInt(in.Anchor[:]),
		Cv:       beToBigInt(cv.Compress()[:]),
		Rk:       beToBigInt(rk.Compress()[:]),
		Value:    new(big.Int).SetUint64(in.Value),
		Rcm:      beToBigInt(in.Rcm[:]),
		Rcv:      beToBigInt(in.Rcv[:]),
		Ask:      beToBigInt(in.Ask[:]),
		Nsk:      beToBigInt(in.Nsk[:]),
		Alpha:    beToBigInt(in.Alpha[:]),
		Position: new(big.Int).SetUint64(in.Position),
	}
	for i := range in.AuthPath {
		assignment.AuthPath[i] = beToBigInt(in.AuthPath[i][:])
	}

	witness, err := frontend.NewWitness(assignment, ecc.BLS12_381.ScalarField())
	if err != nil {
		return nil, err
	}
	proof, err := groth16.Prove(p.spendCCS, p.spendPK, witness)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, err
	}
	var out SpendProof
	copy(out.Proof[:], buf.Bytes())
	out.Cv = cv.Compress()
	out.Rk = rk.Compress()
	return &out, nil
}

// ProveOutput implements Prover.
func (p *GnarkProver) ProveOutput(_ context.Context, in OutputProofInputs) (*OutputProof, error) {
	rcv := field.ScalarFromLEBytes(in.Rcv[:])
	cv := primitives.ValueCommit(in.Value, rcv)

	pkd, err := curve.Decompress(in.Pkd[:])
	if err != nil {
		return nil, err
	}
	rcm := field.ScalarFromLEBytes(in.Rcm[:])
	cmu := primitives.NoteCommit(in.Diversifier, pkd, in.Value, rcm)

	var diversifier [11]byte
	copy(diversifier[:], in.Diversifier[:])

	assignment := &outputCircuit{
		Cv:          beToBigInt(cv.Compress()[:]),
		Cmu:         beToBigInt(cmu[:]),
		Value:       new(big.Int).SetUint64(in.Value),
		Rcm:         beToBigInt(in.Rcm[:]),
		Rcv:         beToBigInt(in.Rcv[:]),
		Diversifier: beToBigInt(diversifier[:]),
		Pkd:         beToBigInt(in.Pkd[:]),
	}

	witness, err := frontend.NewWitness(assignment, ecc.BLS12_381.ScalarField())
	if err != nil {
		return nil, err
	}
	proof, err := groth16.Prove(p.outputCCS, p.outputPK, witness)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, err
	}
	var out OutputProof
	copy(out.Proof[:], buf.Bytes())
	out.Cv = cv.Compress()
	out.Cmu = cmu
	return &out, nil
}

// beToBigInt reads b as a big-endian unsigned integer, the convention
// gnark's frontend.Variable assignment expects for fixed-size fields.
func beToBigInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
