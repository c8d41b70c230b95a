package curve

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"

	"github.com/shieldpool/core/pkg/field"
)

func TestAdditionCommutative(t *testing.T) {
	a := SpendingKeyBase()
	b := NullifierKeyBase()
	var ab, ba Point
	ab.Add(a, b)
	ba.Add(b, a)
	if !ab.Equal(&ba) {
		t.Fatalf("point addition is not commutative")
	}
}

func TestScalarMulAssociative(t *testing.T) {
	base := SpendingKeyBase()
	x := field.NewScalarFromBigInt(big.NewInt(7))
	y := field.NewScalarFromBigInt(big.NewInt(11))

	var xy field.Scalar
	xy.Mul(x, y)

	var lhs Point
	lhs.ScalarMul(base, &xy)

	var xBase Point
	xBase.ScalarMul(base, x)
	var rhs Point
	rhs.ScalarMul(&xBase, y)

	if !lhs.Equal(&rhs) {
		t.Fatalf("[xy]P != [y]([x]P)")
	}
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	p := SpendingKeyBase()
	enc := p.Compress()
	got, err := Decompress(enc[:])
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !got.Equal(p) {
		t.Fatalf("decompress(compress(p)) != p")
	}
}

func TestScalarMulByOrderIsIdentity(t *testing.T) {
	p := SpendingKeyBase()
	lp := toLib(p)
	var out twistededwards.PointAffine
	out.ScalarMultiplication(&lp, field.ScalarModulus)
	if !fromLib(&out).IsIdentity() {
		t.Fatalf("[r]*P != identity")
	}
}

func TestGroupHashDeterministic(t *testing.T) {
	d := [8]byte{'t', 'e', 's', 't', '_', 'd', 'o', 'm'}
	p1, err := GroupHash(d, []byte("message"))
	if err != nil {
		t.Fatalf("GroupHash: %v", err)
	}
	p2, err := GroupHash(d, []byte("message"))
	if err != nil {
		t.Fatalf("GroupHash: %v", err)
	}
	if !p1.Equal(p2) {
		t.Fatalf("GroupHash is not deterministic")
	}
	if !p1.InSubgroup() {
		t.Fatalf("GroupHash output is not in the prime-order subgroup")
	}
}

func TestGroupHashDomainSeparation(t *testing.T) {
	d1 := [8]byte{'d', 'o', 'm', 'a', 'i', 'n', '_', '1'}
	d2 := [8]byte{'d', 'o', 'm', 'a', 'i', 'n', '_', '2'}
	p1, err := GroupHash(d1, []byte("x"))
	if err != nil {
		t.Fatalf("GroupHash: %v", err)
	}
	p2, err := GroupHash(d2, []byte("x"))
	if err != nil {
		t.Fatalf("GroupHash: %v", err)
	}
	if p1.Equal(p2) {
		t.Fatalf("distinct domains produced the same point")
	}
}
