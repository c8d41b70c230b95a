package txbuilder

import (
	"context"
	"crypto/rand"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/encryption"
	"github.com/shieldpool/core/pkg/field"
	"github.com/shieldpool/core/pkg/note"
	"github.com/shieldpool/core/pkg/primitives"
	"github.com/shieldpool/core/pkg/prover"
)

// Builder assembles bundles against a single Prover backend; it holds no
// other state and may be reused across calls to Build.
type Builder struct {
	Prover prover.Prover
}

// New returns a Builder backed by p.
func New(p prover.Prover) *Builder {
	return &Builder{Prover: p}
}

// Params bundles the non-note-specific fields of a transaction (§4.10).
type Params struct {
	Version        uint32
	VersionGroupID uint32
	LockTime       uint32
	ExpiryHeight   uint32
	TransparentIn  []TransparentInput
	TransparentOut []TransparentOutput
}

// Build draws all per-input and per-output randomness, invokes the Prover
// for each spend/output proof, and returns a fully signed Bundle: the
// binding signature is computed here too since bsk never needs to leave
// this call (§4.10, §5: zeroization of bsk).
func (bld *Builder) Build(ctx context.Context, spends []SpendInput, outputs []OutputParams, p Params) (*Bundle, error) {
	bundle := &Bundle{
		Version:        p.Version,
		VersionGroupID: p.VersionGroupID,
		TransparentIn:  p.TransparentIn,
		TransparentOut: p.TransparentOut,
		LockTime:       p.LockTime,
		ExpiryHeight:   p.ExpiryHeight,
		Spends:         make([]SpendDescription, len(spends)),
		Outputs:        make([]OutputDescription, len(outputs)),
	}

	bsk := field.ScalarZero()
	var totalIn, totalOut uint64

	type spendAux struct {
		randomized *field.Scalar
	}
	aux := make([]spendAux, len(spends))

	for i, in := range spends {
		if in.Witness == nil {
			return nil, ErrMissingWitness
		}

		rcv, err := randomScalar()
		if err != nil {
			return nil, err
		}
		alpha, err := randomScalar()
		if err != nil {
			return nil, err
		}

		bsk.Add(bsk, rcv)
		totalIn += in.Note.Value

		cv := primitives.ValueCommit(in.Note.Value, rcv)

		var randomized field.Scalar
		randomized.Add(in.Ask, alpha)
		var rk curve.Point
		rk.ScalarMul(curve.SpendingKeyBase(), &randomized)
		aux[i] = spendAux{randomized: &randomized}

		pos := in.Witness.Position
		n := *in.Note
		n.Position = &pos
		nf := n.Nullifier(in.Nk)

		rcmBytes := n.Rcm().Bytes()
		rcvBytes := rcv.Bytes()
		askBytes := in.Ask.Bytes()
		nskBytes := in.Nsk.Bytes()
		alphaBytes := alpha.Bytes()

		proof, err := bld.Prover.ProveSpend(ctx, prover.SpendProofInputs{
			Ask:         askBytes,
			Nsk:         nskBytes,
			Alpha:       alphaBytes,
			Rcv:         rcvBytes,
			Value:       in.Note.Value,
			Diversifier: in.Note.Diversifier,
			Rcm:         rcmBytes,
			AuthPath:    in.Witness.AuthPath,
			Position:    in.Witness.Position,
			Anchor:      in.Witness.Anchor,
		})
		if err != nil {
			return nil, err
		}

		bundle.Spends[i] = SpendDescription{
			Cv:        cv.Compress(),
			Anchor:    in.Witness.Anchor,
			Nullifier: nf,
			Rk:        rk.Compress(),
			Proof:     proof.Proof,
		}
	}

	for i, op := range outputs {
		n, err := note.New(op.Addr, op.Value, op.Memo)
		if err != nil {
			return nil, err
		}

		rcv, err := randomScalar()
		if err != nil {
			return nil, err
		}
		bsk.Sub(bsk, rcv)
		totalOut += op.Value

		enc, _, err := encryption.Encrypt(n, rcv, op.Ovk)
		if err != nil {
			return nil, err
		}

		var rcvBytes, rcmBytes, pkdBytes [32]byte
		rcvB := rcv.Bytes()
		rcvBytes = rcvB
		rcmB := n.Rcm().Bytes()
		rcmBytes = rcmB
		pkdBytes = op.Addr.Pkd.Compress()

		proof, err := bld.Prover.ProveOutput(ctx, prover.OutputProofInputs{
			Rcv:         rcvBytes,
			Value:       op.Value,
			Diversifier: op.Addr.Diversifier,
			Pkd:         pkdBytes,
			Rcm:         rcmBytes,
		})
		if err != nil {
			return nil, err
		}

		var out OutputDescription
		out.Cv = enc.Cv
		out.Cmu = proof.Cmu
		out.EphemeralKey = enc.EphemeralKey
		out.EncCiphertext = enc.EncCiphertext
		out.OutCiphertext = enc.OutCiphertext
		out.Proof = proof.Proof
		bundle.Outputs[i] = out
	}

	if totalOut > totalIn {
		return nil, ErrValueUnderflow
	}
	bundle.ValueBalance = int64(totalIn) - int64(totalOut)
	bundle.bsk = bsk

	sighash := bundle.Sighash()

	for i := range spends {
		sig := primitives.Sign(curve.SpendingKeyBase(), aux[i].randomized, sighash[:])
		bundle.Spends[i].SpendAuthSig = sig.Bytes()
	}

	bindingSig := primitives.BindingSignature(bsk, sighash[:])
	bundle.BindingSig = bindingSig.Bytes()
	bundle.Zeroize()

	return bundle, nil
}

func randomScalar() (*field.Scalar, error) {
	var buf [64]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, err
	}
	return field.ScalarFromLEBytes(buf[:]), nil
}
