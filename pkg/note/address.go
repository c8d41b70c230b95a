package note

import (
	"errors"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/shieldpool/core/pkg/curve"
)

// ErrInvalidChecksum is returned when a Bech32-encoded address fails its
// polymod checksum or carries an unrecognized human-readable prefix (§6, §7).
var ErrInvalidChecksum = errors.New("note: invalid bech32 checksum or unknown prefix")

// HRP values recognized for payment addresses (§6).
const (
	HRPMainnet = "zs"
	HRPTestnet = "ztestsapling"
)

// PaymentAddress is (diversifier, pk_d); pk_d = [ivk]·g_d (§3).
type PaymentAddress struct {
	Diversifier [11]byte
	Pkd         *curve.Point
}

// NewPaymentAddress derives the payment address for ivk at diversifier d.
func NewPaymentAddress(ivk *IncomingViewingKey, d [11]byte) (*PaymentAddress, error) {
	gd, err := Diversify(d)
	if err != nil {
		return nil, err
	}
	return &PaymentAddress{Diversifier: d, Pkd: ivk.DerivePkd(gd)}, nil
}

// payload returns the 43-byte diversifier||pk_d payload Bech32-encodes.
func (a *PaymentAddress) payload() [43]byte {
	var out [43]byte
	copy(out[:11], a.Diversifier[:])
	pkd := a.Pkd.Compress()
	copy(out[11:], pkd[:])
	return out
}

// Encode renders the address as HRP + Bech32(diversifier || pk_d) (§6).
func (a *PaymentAddress) Encode(hrp string) (string, error) {
	payload := a.payload()
	data, err := bech32.ConvertBits(payload[:], 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, data)
}

// DecodeAddress parses a Bech32-encoded payment address, rejecting mixed
// case, bad checksums, and unrecognized HRPs (§6, §7: InvalidChecksum).
func DecodeAddress(s string) (hrp string, addr *PaymentAddress, err error) {
	hrp, data, decodeErr := bech32.Decode(s)
	if decodeErr != nil {
		return "", nil, ErrInvalidChecksum
	}
	if hrp != HRPMainnet && hrp != HRPTestnet {
		return "", nil, ErrInvalidChecksum
	}
	payload, convErr := bech32.ConvertBits(data, 5, 8, false)
	if convErr != nil {
		return "", nil, ErrInvalidChecksum
	}
	if len(payload) != 43 {
		return "", nil, ErrInvalidLength
	}
	var diversifier [11]byte
	copy(diversifier[:], payload[:11])
	pkd, decompErr := curve.Decompress(payload[11:])
	if decompErr != nil {
		return "", nil, decompErr
	}
	return hrp, &PaymentAddress{Diversifier: diversifier, Pkd: pkd}, nil
}
