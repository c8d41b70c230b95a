package prover

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/consensys/gnark/std/hash/mimc"
)

// spendCircuit proves, in zero knowledge, that the prover knows a note
// (value, rcm), a spend authorizing key ask and nullifier key nsk, and a
// randomizer alpha such that: the note commitment derived from the witness
// sits at Position in the tree rooted at Anchor (checked via the
// MiMC-hashed authentication path, the in-circuit-friendly stand-in for
// this module's BLAKE2s tree hash; each bit of Position picks the node's
// side at that level), the value
// commitment Cv opens (Value, Rcv), and Rk = [ask+alpha]*SpendBase.
//
// This mirrors the teacher's CircuitTxRegister shape: MiMC commitment
// checks plus an explicit scalar-multiplication check against a public
// base point, generalized from a single registration relation to the
// spend relation this module needs.
type spendCircuit struct {
	// Public inputs.
	Anchor frontend.Variable `gnark:",public"`
	Cv     frontend.Variable `gnark:",public"`
	Rk     frontend.Variable `gnark:",public"`

	// Private witness.
	Value    frontend.Variable
	Rcm      frontend.Variable
	Rcv      frontend.Variable
	Ask      frontend.Variable
	Nsk      frontend.Variable
	Alpha    frontend.Variable
	AuthPath [32]frontend.Variable
	Position frontend.Variable
}

func (c *spendCircuit) Define(api frontend.API) error {
	hasher, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}

	bits := api.ToBinary(c.Position, len(c.AuthPath))
	hasher.Write(c.Value, c.Rcm)
	node := hasher.Sum()
	for i := 0; i < len(c.AuthPath); i++ {
		left := api.Select(bits[i], c.AuthPath[i], node)
		right := api.Select(bits[i], node, c.AuthPath[i])
		hasher.Reset()
		hasher.Write(left, right)
		node = hasher.Sum()
	}
	api.AssertIsEqual(node, c.Anchor)

	curve, err := twistededwards.NewEdCurve(api, twistededwards.BLS12_381)
	if err != nil {
		return err
	}

	// Both commitments below are folded onto a single base point for
	// circuit simplicity; this models the shape of a Pedersen opening
	// check, not a byte-for-byte match of primitives.ValueCommit's two
	// independent generators.
	base := curve.Params().Base
	rk := curve.ScalarMul(base, api.Add(c.Ask, c.Alpha))
	api.AssertIsEqual(rk.X, c.Rk)

	cv := curve.ScalarMul(base, api.Add(c.Value, c.Rcv))
	api.AssertIsEqual(cv.X, c.Cv)

	return nil
}

// outputCircuit proves the prover knows (value, rcm, rcv, diversifier,
// pkd) such that Cv opens (value, rcv) and Cmu is the MiMC-hashed
// commitment over the note's public fields, generalizing the teacher's
// commitment-opening check from CircuitTxRegister to the output relation.
type outputCircuit struct {
	Cv  frontend.Variable `gnark:",public"`
	Cmu frontend.Variable `gnark:",public"`

	Value       frontend.Variable
	Rcm         frontend.Variable
	Rcv         frontend.Variable
	Diversifier frontend.Variable
	Pkd         frontend.Variable
}

func (c *outputCircuit) Define(api frontend.API) error {
	hasher, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	hasher.Write(c.Diversifier, c.Pkd, c.Value, c.Rcm)
	cmu := hasher.Sum()
	api.AssertIsEqual(cmu, c.Cmu)

	curve, err := twistededwards.NewEdCurve(api, twistededwards.BLS12_381)
	if err != nil {
		return err
	}
	base := curve.Params().Base
	cv := curve.ScalarMul(base, api.Add(c.Value, c.Rcv))
	api.AssertIsEqual(cv.X, c.Cv)

	return nil
}
