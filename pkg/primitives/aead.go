package primitives

import (
	"errors"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrAuthTagInvalid is returned when AEAD decryption fails authentication;
// in the encryption component this is the normal, silent signal that a
// candidate output does not belong to the trial-decrypting viewer (§4.5, §7).
var ErrAuthTagInvalid = errors.New("primitives: AEAD authentication failed")

// Seal encrypts plaintext with ChaCha20-Poly1305 under key/nonce, returning
// ciphertext || 16-byte tag appended (§4.3).
func Seal(key [32]byte, nonce [12]byte, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce[:], plaintext, nil), nil
}

// Open decrypts and authenticates ciphertext (which includes the trailing
// 16-byte tag). Returns ErrAuthTagInvalid on authentication failure.
func Open(key [32]byte, nonce [12]byte, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, nonce[:], ciphertext, nil)
	if err != nil {
		return nil, ErrAuthTagInvalid
	}
	return pt, nil
}
