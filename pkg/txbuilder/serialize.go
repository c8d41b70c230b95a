package txbuilder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// ErrTruncated is returned when a buffer ends before a fixed-size field has
// been fully read.
var ErrTruncated = errors.New("txbuilder: truncated input")

// Bytes renders a spend description in its canonical 384-byte layout (§6).
func (d *SpendDescription) Bytes() [SpendDescriptionLen]byte {
	var out [SpendDescriptionLen]byte
	off := 0
	off += copy(out[off:], d.Cv[:])
	off += copy(out[off:], d.Anchor[:])
	off += copy(out[off:], d.Nullifier[:])
	off += copy(out[off:], d.Rk[:])
	off += copy(out[off:], d.Proof[:])
	copy(out[off:], d.SpendAuthSig[:])
	return out
}

// bytesWithoutSig renders everything but the spendAuthSig field,
// used when hashing "spend-descs-without-sigs" into the sighash (§4.10).
func (d *SpendDescription) bytesWithoutSig() []byte {
	full := d.Bytes()
	return full[:SpendDescriptionLen-64]
}

// ParseSpendDescription reads a 384-byte spend description.
func ParseSpendDescription(b []byte) (*SpendDescription, error) {
	if len(b) != SpendDescriptionLen {
		return nil, ErrTruncated
	}
	var d SpendDescription
	off := 0
	copy(d.Cv[:], b[off:off+32])
	off += 32
	copy(d.Anchor[:], b[off:off+32])
	off += 32
	copy(d.Nullifier[:], b[off:off+32])
	off += 32
	copy(d.Rk[:], b[off:off+32])
	off += 32
	copy(d.Proof[:], b[off:off+192])
	off += 192
	copy(d.SpendAuthSig[:], b[off:off+64])
	return &d, nil
}

// Bytes renders an output description in its canonical 948-byte layout (§6).
func (d *OutputDescription) Bytes() [OutputDescriptionLen]byte {
	var out [OutputDescriptionLen]byte
	off := 0
	off += copy(out[off:], d.Cv[:])
	off += copy(out[off:], d.Cmu[:])
	off += copy(out[off:], d.EphemeralKey[:])
	off += copy(out[off:], d.EncCiphertext[:])
	off += copy(out[off:], d.OutCiphertext[:])
	copy(out[off:], d.Proof[:])
	return out
}

// ParseOutputDescription reads a 948-byte output description.
func ParseOutputDescription(b []byte) (*OutputDescription, error) {
	if len(b) != OutputDescriptionLen {
		return nil, ErrTruncated
	}
	var d OutputDescription
	off := 0
	copy(d.Cv[:], b[off:off+32])
	off += 32
	copy(d.Cmu[:], b[off:off+32])
	off += 32
	copy(d.EphemeralKey[:], b[off:off+32])
	off += 32
	copy(d.EncCiphertext[:], b[off:off+580])
	off += 580
	copy(d.OutCiphertext[:], b[off:off+80])
	off += 80
	copy(d.Proof[:], b[off:off+192])
	return &d, nil
}

// Serialize renders the full transaction envelope (§6): little-endian
// integers throughout, Bitcoin-style compact size for every count.
func (b *Bundle) Serialize() ([]byte, error) {
	var buf bytes.Buffer

	if err := binary.Write(&buf, binary.LittleEndian, b.Version); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, b.VersionGroupID); err != nil {
		return nil, err
	}

	// Transparent descriptions are opaque to this module (§1: out of
	// scope); each is length-prefixed with its own compact size so the
	// envelope stays self-delimiting regardless of their internal format.
	if err := writeVarInt(&buf, uint64(len(b.TransparentIn))); err != nil {
		return nil, err
	}
	for _, in := range b.TransparentIn {
		if err := writeVarInt(&buf, uint64(len(in.Raw))); err != nil {
			return nil, err
		}
		buf.Write(in.Raw)
	}

	if err := writeVarInt(&buf, uint64(len(b.TransparentOut))); err != nil {
		return nil, err
	}
	for _, out := range b.TransparentOut {
		if err := writeVarInt(&buf, uint64(len(out.Raw))); err != nil {
			return nil, err
		}
		buf.Write(out.Raw)
	}

	if err := binary.Write(&buf, binary.LittleEndian, b.LockTime); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, b.ExpiryHeight); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, b.ValueBalance); err != nil {
		return nil, err
	}

	if err := writeVarInt(&buf, uint64(len(b.Spends))); err != nil {
		return nil, err
	}
	for i := range b.Spends {
		sd := b.Spends[i].Bytes()
		buf.Write(sd[:])
	}

	if err := writeVarInt(&buf, uint64(len(b.Outputs))); err != nil {
		return nil, err
	}
	for i := range b.Outputs {
		od := b.Outputs[i].Bytes()
		buf.Write(od[:])
	}

	buf.Write(b.BindingSig[:])

	return buf.Bytes(), nil
}

// Deserialize parses a transaction envelope previously produced by
// Serialize, round-tripping byte-for-byte (§8 invariant 10).
func Deserialize(data []byte) (*Bundle, error) {
	r := bytes.NewReader(data)
	var b Bundle

	if err := binary.Read(r, binary.LittleEndian, &b.Version); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &b.VersionGroupID); err != nil {
		return nil, err
	}

	nTin, err := readVarInt(r)
	if err != nil {
		return nil, err
	}
	b.TransparentIn = make([]TransparentInput, nTin)
	for i := range b.TransparentIn {
		n, err := readVarInt(r)
		if err != nil {
			return nil, err
		}
		raw := make([]byte, n)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, ErrTruncated
		}
		b.TransparentIn[i].Raw = raw
	}

	nTout, err := readVarInt(r)
	if err != nil {
		return nil, err
	}
	b.TransparentOut = make([]TransparentOutput, nTout)
	for i := range b.TransparentOut {
		n, err := readVarInt(r)
		if err != nil {
			return nil, err
		}
		raw := make([]byte, n)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, ErrTruncated
		}
		b.TransparentOut[i].Raw = raw
	}

	if err := binary.Read(r, binary.LittleEndian, &b.LockTime); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &b.ExpiryHeight); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &b.ValueBalance); err != nil {
		return nil, err
	}

	nSpend, err := readVarInt(r)
	if err != nil {
		return nil, err
	}
	b.Spends = make([]SpendDescription, nSpend)
	for i := range b.Spends {
		var raw [SpendDescriptionLen]byte
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			return nil, ErrTruncated
		}
		sd, err := ParseSpendDescription(raw[:])
		if err != nil {
			return nil, err
		}
		b.Spends[i] = *sd
	}

	nOut, err := readVarInt(r)
	if err != nil {
		return nil, err
	}
	b.Outputs = make([]OutputDescription, nOut)
	for i := range b.Outputs {
		var raw [OutputDescriptionLen]byte
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			return nil, ErrTruncated
		}
		od, err := ParseOutputDescription(raw[:])
		if err != nil {
			return nil, err
		}
		b.Outputs[i] = *od
	}

	if _, err := io.ReadFull(r, b.BindingSig[:]); err != nil {
		return nil, ErrTruncated
	}

	return &b, nil
}
