package curve

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"

	"github.com/shieldpool/core/pkg/field"
)

// ErrInvalidPoint is returned when a byte string does not decode to a
// point on the curve, or does not lie in the prime-order subgroup.
var ErrInvalidPoint = errors.New("curve: invalid point")

// d is the twisted-Edwards curve coefficient: -x^2 + y^2 = 1 + d*x^2*y^2,
// a = -1 (§9 Q3, the canonical Jubjub d). gnark-crypto's twistededwards
// package implements arithmetic over exactly this curve (the embedded
// Edwards curve it ships for BLS12-381), so Add/Double/Neg/ScalarMul below
// delegate to it; d is kept here only for solveX, which GroupHash's
// unchecked decompression path (hash.go) needs to recover a point's
// x-coordinate before a library PointAffine can even be constructed.
var d = field.NewFromBigIntString("19257038036680949359750312669786877991949435402254120286184196891950884077233")

// Point is an affine point on the curve. The zero value is NOT the curve
// identity; use Identity().
type Point struct {
	X, Y field.Element
}

// Identity returns the curve's neutral element (0, 1).
func Identity() *Point {
	p := new(Point)
	p.Y = *field.One()
	return p
}

// IsIdentity reports whether p is the neutral element.
func (p *Point) IsIdentity() bool {
	return p.X.IsZero() && p.Y.Equal(field.One())
}

// Equal reports whether two points are equal as affine coordinates.
func (p *Point) Equal(q *Point) bool {
	return p.X.Equal(&q.X) && p.Y.Equal(&q.Y)
}

// Set copies q into p and returns p.
func (p *Point) Set(q *Point) *Point {
	p.X = q.X
	p.Y = q.Y
	return p
}

// toLib converts p to gnark-crypto's PointAffine representation.
func toLib(p *Point) twistededwards.PointAffine {
	var out twistededwards.PointAffine
	out.X.SetBigInt(p.X.BigInt())
	out.Y.SetBigInt(p.Y.BigInt())
	return out
}

// fromLib converts a gnark-crypto PointAffine back to a Point.
func fromLib(in *twistededwards.PointAffine) *Point {
	var xBig, yBig big.Int
	in.X.BigInt(&xBig)
	in.Y.BigInt(&yBig)
	return &Point{X: *field.NewFromBigInt(&xBig), Y: *field.NewFromBigInt(&yBig)}
}

// Add sets p = a + b using gnark-crypto's complete twisted-Edwards addition
// law and returns p. Doubling is this same formula with a == b (§4.2).
func (p *Point) Add(a, b *Point) *Point {
	la, lb := toLib(a), toLib(b)
	var out twistededwards.PointAffine
	out.Add(&la, &lb)
	*p = *fromLib(&out)
	return p
}

// Double sets p = 2*a and returns p.
func (p *Point) Double(a *Point) *Point {
	la := toLib(a)
	var out twistededwards.PointAffine
	out.Double(&la)
	*p = *fromLib(&out)
	return p
}

// Neg sets p = -a (the twisted-Edwards negation (-x, y)) and returns p.
func (p *Point) Neg(a *Point) *Point {
	la := toLib(a)
	var out twistededwards.PointAffine
	out.Neg(&la)
	*p = *fromLib(&out)
	return p
}

// ScalarMul sets p = [s]*a via gnark-crypto's ScalarMultiplication and
// returns p (§4.2).
func (p *Point) ScalarMul(a *Point, s *field.Scalar) *Point {
	la := toLib(a)
	var out twistededwards.PointAffine
	out.ScalarMultiplication(&la, s.BigInt())
	*p = *fromLib(&out)
	return p
}

// ClearCofactor sets p = [8]*a, the cofactor-clearing multiplication every
// hash-to-curve output must undergo (§4.2).
func (p *Point) ClearCofactor(a *Point) *Point {
	p.Double(a)
	p.Double(p)
	p.Double(p)
	return p
}

// InSubgroup reports whether p lies in the prime-order subgroup, i.e.
// [r]*p == identity.
func (p *Point) InSubgroup() bool {
	// r itself cannot be carried by a field.Scalar (it reduces to 0), so the
	// multiplication goes straight to the library with the full modulus.
	la := toLib(p)
	var check twistededwards.PointAffine
	check.ScalarMultiplication(&la, field.ScalarModulus)
	return fromLib(&check).IsIdentity()
}

// Compress returns the 32-byte little-endian encoding of p: y with the top
// bit of the last byte set iff x's canonical representative is odd (§4.2).
func (p *Point) Compress() [32]byte {
	out := p.Y.Bytes()
	if isOdd(&p.X) {
		out[31] |= 0x80
	} else {
		out[31] &^= 0x80
	}
	return out
}

// Decompress parses a 32-byte compressed point, solving x^2 = (y^2-1)/(1+d*y^2)
// and selecting the root whose parity matches the sign bit, then verifies the
// result is on the curve and in its prime-order subgroup. Returns
// ErrInvalidPoint on any failure (§4.2).
func Decompress(b []byte) (*Point, error) {
	if len(b) != 32 {
		return nil, ErrInvalidPoint
	}
	var raw [32]byte
	copy(raw[:], b)
	sign := raw[31]&0x80 != 0
	raw[31] &^= 0x80

	y, err := field.FromLEBytes(raw[:])
	if err != nil {
		return nil, ErrInvalidPoint
	}
	x, err := solveX(y, sign)
	if err != nil {
		return nil, ErrInvalidPoint
	}

	p := &Point{X: *x, Y: *y}
	lib := toLib(p)
	if !lib.IsOnCurve() {
		return nil, ErrInvalidPoint
	}
	if !p.InSubgroup() {
		return nil, ErrInvalidPoint
	}
	return p, nil
}

// solveX recovers the x-coordinate matching y and the requested sign bit
// from the curve equation x^2 = (y^2-1)/(1+d*y^2).
func solveX(y *field.Element, sign bool) (*field.Element, error) {
	var y2 field.Element
	y2.Mul(y, y)

	var num field.Element
	num.Sub(&y2, field.One())

	var dy2 field.Element
	dy2.Mul(d, &y2)
	var denom field.Element
	denom.Add(field.One(), &dy2)

	var denomInv field.Element
	if _, err := denomInv.Invert(&denom); err != nil {
		return nil, ErrInvalidPoint
	}

	var x2 field.Element
	x2.Mul(&num, &denomInv)

	var x field.Element
	root, ok := x.Sqrt(&x2)
	if !ok {
		return nil, ErrInvalidPoint
	}

	if isOdd(root) != sign {
		root.Neg(root)
	}
	if isOdd(root) != sign {
		// x is zero and sign was requested odd: no such point.
		return nil, ErrInvalidPoint
	}
	return root, nil
}

func isOdd(e *field.Element) bool {
	return e.BigInt().Bit(0) == 1
}
