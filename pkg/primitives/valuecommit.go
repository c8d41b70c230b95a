package primitives

import (
	"math/big"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/field"
)

// ValueCommit computes cv = [value]·ValueCommitValueBase + [rcv]·ValueCommitRandomnessBase,
// the Pedersen value commitment bound into every spend and output
// description (§4.3, §4.10).
func ValueCommit(value uint64, rcv *field.Scalar) *curve.Point {
	valueScalar := field.NewScalarFromBigInt(new(big.Int).SetUint64(value))

	var vTerm curve.Point
	vTerm.ScalarMul(curve.ValueCommitValueBase(), valueScalar)

	var rTerm curve.Point
	rTerm.ScalarMul(curve.ValueCommitRandomnessBase(), rcv)

	var cv curve.Point
	cv.Add(&vTerm, &rTerm)
	return &cv
}
