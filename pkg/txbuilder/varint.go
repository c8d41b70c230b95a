package txbuilder

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrMalformedVarInt is returned when a compact-size prefix does not match
// its canonical minimal encoding or runs past the available bytes.
var ErrMalformedVarInt = errors.New("txbuilder: malformed compact size")

// writeVarInt appends n in Bitcoin-style compact size encoding: values below
// 0xfd are a single byte; 0xfd/0xfe/0xff prefix a little-endian 2/4/8-byte
// value (§6: "Bitcoin-style compact size for counts").
func writeVarInt(w io.Writer, n uint64) error {
	switch {
	case n < 0xfd:
		_, err := w.Write([]byte{byte(n)})
		return err
	case n <= 0xffff:
		buf := make([]byte, 3)
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(n))
		_, err := w.Write(buf)
		return err
	case n <= 0xffffffff:
		buf := make([]byte, 5)
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(n))
		_, err := w.Write(buf)
		return err
	default:
		buf := make([]byte, 9)
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:], n)
		_, err := w.Write(buf)
		return err
	}
}

// readVarInt reads a compact-size-encoded count.
func readVarInt(r io.Reader) (uint64, error) {
	var prefix [1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return 0, err
	}
	switch prefix[0] {
	case 0xfd:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		n := uint64(binary.LittleEndian.Uint16(buf[:]))
		if n < 0xfd {
			return 0, ErrMalformedVarInt
		}
		return n, nil
	case 0xfe:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		n := uint64(binary.LittleEndian.Uint32(buf[:]))
		if n <= 0xffff {
			return 0, ErrMalformedVarInt
		}
		return n, nil
	case 0xff:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		n := binary.LittleEndian.Uint64(buf[:])
		if n <= 0xffffffff {
			return 0, ErrMalformedVarInt
		}
		return n, nil
	default:
		return uint64(prefix[0]), nil
	}
}
