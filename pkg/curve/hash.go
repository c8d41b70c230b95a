package curve

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2s"

	"github.com/shieldpool/core/pkg/field"
)

// urs is a fixed 64-byte uniform random string mixed into every GroupHash
// call, so that finding a preimage for one domain/message pair gives no
// advantage for any other pair. It has no structure beyond being a fixed
// constant baked into this module (§4.2).
var urs = [64]byte{
	0x53, 0x68, 0x69, 0x65, 0x6c, 0x64, 0x5f, 0x50, 0x6f, 0x6f, 0x6c, 0x5f, 0x47, 0x72, 0x6f, 0x75,
	0x70, 0x5f, 0x48, 0x61, 0x73, 0x68, 0x5f, 0x55, 0x6e, 0x69, 0x66, 0x6f, 0x72, 0x6d, 0x5f, 0x52,
	0x61, 0x6e, 0x64, 0x6f, 0x6d, 0x5f, 0x53, 0x74, 0x72, 0x69, 0x6e, 0x67, 0x5f, 0x76, 0x31, 0x2e,
	0x30, 0x2d, 0x64, 0x6f, 0x6d, 0x61, 0x69, 0x6e, 0x2d, 0x73, 0x65, 0x70, 0x61, 0x72, 0x61, 0x74,
}

// maxGroupHashTries bounds the retry counter GroupHash appends to its input;
// exhausting it without finding a subgroup point would indicate a broken
// domain/message pair, not bad luck (the probability is astronomically low).
const maxGroupHashTries = 256

// ErrGroupHashExhausted is returned when no valid point was found within
// maxGroupHashTries attempts.
var ErrGroupHashExhausted = ErrInvalidPoint

// GroupHash deterministically maps a domain separator and message to a
// point in the prime-order subgroup. It hashes domain || message || urs ||
// counter with BLAKE2s-256, attempts to decompress the digest as a
// compressed point, and on failure increments the counter and retries. A
// successful decompression is then cofactor-cleared and rejected if it
// collapses to the identity, guaranteeing the result both lies in, and
// generates, the prime-order subgroup (§4.2).
func GroupHash(domain [8]byte, msg []byte) (*Point, error) {
	for counter := 0; counter < maxGroupHashTries; counter++ {
		h, err := blake2s.New256(nil)
		if err != nil {
			panic(err)
		}
		h.Write(domain[:])
		h.Write(msg)
		h.Write(urs[:])
		var ctr [4]byte
		binary.LittleEndian.PutUint32(ctr[:], uint32(counter))
		h.Write(ctr[:])
		digest := h.Sum(nil)

		candidate, err := decompressUnchecked(digest)
		if err != nil {
			continue
		}
		var cleared Point
		cleared.ClearCofactor(candidate)
		if cleared.IsIdentity() {
			continue
		}
		return &cleared, nil
	}
	return nil, ErrGroupHashExhausted
}

// decompressUnchecked parses a candidate point without requiring subgroup
// membership; GroupHash enforces membership itself via cofactor clearing.
func decompressUnchecked(b []byte) (*Point, error) {
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
	return &Point{X: *x, Y: *y}, nil
}
