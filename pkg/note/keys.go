package note

import (
	"crypto/rand"
	"errors"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/field"
)

// ErrInvalidLength is returned when fixed-size input bytes do not match the
// expected length.
var ErrInvalidLength = errors.New("note: invalid byte length")

// FullKeySet holds the spend authorizing key ask, the nullifier-deriving
// secret nsk, the outgoing viewing key ovk, and the derived nullifier key
// nk = [nsk]·NullifierKeyBase (§3).
type FullKeySet struct {
	Ask *field.Scalar
	Nsk *field.Scalar
	Ovk [32]byte
	Nk  *curve.Point
}

// Zeroize overwrites the key material held by k (§5, §9).
func (k *FullKeySet) Zeroize() {
	zeroScalar(k.Ask)
	zeroScalar(k.Nsk)
	for i := range k.Ovk {
		k.Ovk[i] = 0
	}
	if k.Nk != nil {
		k.Nk.X = field.Element{}
		k.Nk.Y = field.Element{}
	}
}

func zeroScalar(s *field.Scalar) {
	if s == nil {
		return
	}
	*s = field.Scalar{}
}

// GenerateFullKeySet draws ask and nsk from the platform CSPRNG, derives nk,
// and draws a fresh ovk.
func GenerateFullKeySet() (*FullKeySet, error) {
	ask, err := randomScalar()
	if err != nil {
		return nil, err
	}
	nsk, err := randomScalar()
	if err != nil {
		return nil, err
	}
	var ovk [32]byte
	if _, err := rand.Read(ovk[:]); err != nil {
		return nil, err
	}
	var nk curve.Point
	nk.ScalarMul(curve.NullifierKeyBase(), nsk)
	return &FullKeySet{Ask: ask, Nsk: nsk, Ovk: ovk, Nk: &nk}, nil
}

func randomScalar() (*field.Scalar, error) {
	var buf [64]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, err
	}
	return field.ScalarFromLEBytes(buf[:]), nil
}

// IncomingViewingKey is the scalar sufficient to derive pk_d for any
// diversifier and to trial-decrypt incoming notes.
type IncomingViewingKey struct {
	Ivk *field.Scalar
}

// Zeroize overwrites the key material held by k.
func (k *IncomingViewingKey) Zeroize() {
	zeroScalar(k.Ivk)
}

// DerivePkd computes pk_d = [ivk]·g_d for the given diversifier's base
// point g_d (§3, §4.4).
func (k *IncomingViewingKey) DerivePkd(gd *curve.Point) *curve.Point {
	var pkd curve.Point
	pkd.ScalarMul(gd, k.Ivk)
	return &pkd
}

// Diversify derives g_d = GroupHash("ShP_divB", diversifier) for an
// 11-byte diversifier (§3, §4.2).
func Diversify(diversifier [11]byte) (*curve.Point, error) {
	return curve.DiversifyBase(diversifier[:])
}
