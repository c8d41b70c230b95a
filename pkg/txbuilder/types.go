package txbuilder

import (
	"errors"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/field"
	"github.com/shieldpool/core/pkg/merkletree"
	"github.com/shieldpool/core/pkg/note"
)

// ErrValueUnderflow is returned when outputs would exceed inputs,
// since value balance must remain representable and honest (§4.10, §7).
var ErrValueUnderflow = errors.New("txbuilder: output value exceeds input value")

// ErrMissingWitness is returned when a spend input's note has no
// authentication path to prove against.
var ErrMissingWitness = errors.New("txbuilder: spend input has no witness")

// SpendInput is everything the builder needs to turn one previously
// scanned, spendable note into a spend description (§4.10).
type SpendInput struct {
	Note    *note.Note
	Witness *merkletree.Witness
	Ask     *field.Scalar
	Nsk     *field.Scalar
	Nk      *curve.Point
}

// OutputParams is everything the builder needs to create one new shielded
// output (§4.10).
type OutputParams struct {
	Addr  *note.PaymentAddress
	Value uint64
	Memo  [note.MemoLen]byte
	Ovk   [32]byte
}

// SpendDescription is the canonical per-input record of a bundle (§6):
// cv(32) || anchor(32) || nullifier(32) || rk(32) || proof(192) ||
// spendAuthSig(64) = 384 bytes serialized.
type SpendDescription struct {
	Cv           [32]byte
	Anchor       [32]byte
	Nullifier    [32]byte
	Rk           [32]byte
	Proof        [192]byte
	SpendAuthSig [64]byte
}

// SpendDescriptionLen is the fixed serialized size of a SpendDescription.
const SpendDescriptionLen = 32 + 32 + 32 + 32 + 192 + 64

// OutputDescription is the canonical per-output record of a bundle (§6):
// cv(32) || cmu(32) || ephemeralKey(32) || encCiphertext(580) ||
// outCiphertext(80) || proof(192) = 948 bytes serialized.
type OutputDescription struct {
	Cv            [32]byte
	Cmu           [32]byte
	EphemeralKey  [32]byte
	EncCiphertext [580]byte
	OutCiphertext [80]byte
	Proof         [192]byte
}

// OutputDescriptionLen is the fixed serialized size of an OutputDescription.
const OutputDescriptionLen = 32 + 32 + 32 + 580 + 80 + 192

// TransparentInput and TransparentOutput are opaque, caller-serialized
// records: the transparent half of the envelope is not part of this
// module's cryptographic core (§1: out of scope), so the builder only
// needs to carry their already-encoded bytes through to the envelope.
type TransparentInput struct {
	Raw []byte
}

// TransparentOutput is the transparent counterpart to TransparentInput.
type TransparentOutput struct {
	Raw []byte
}

// Bundle is an assembled shielded transaction. Builder.Build fills every
// field, including the spend authorization signatures and BindingSig.
type Bundle struct {
	Version        uint32
	VersionGroupID uint32
	TransparentIn  []TransparentInput
	TransparentOut []TransparentOutput
	LockTime       uint32
	ExpiryHeight   uint32
	ValueBalance   int64
	Spends         []SpendDescription
	Outputs        []OutputDescription
	BindingSig     [64]byte

	// bsk is the binding secret accumulated during Build, zeroized once the
	// binding signature has been computed.
	bsk *field.Scalar
}

// Zeroize overwrites the bundle's retained binding secret.
func (b *Bundle) Zeroize() {
	if b.bsk != nil {
		*b.bsk = field.Scalar{}
	}
}
