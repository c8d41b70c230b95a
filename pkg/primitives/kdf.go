package primitives

import (
	"github.com/shieldpool/core/pkg/curve"
)

// KDF computes K_enc = BLAKE2s-256("Zcash_NoteEncryp", shared_secret || epk),
// the symmetric key note encryption derives from an ECDH shared secret
// (§4.3, §4.5).
func KDF(sharedSecret *curve.Point, epk *curve.Point) [32]byte {
	ss := sharedSecret.Compress()
	ek := epk.Compress()
	return blake2sWithPrefix("Zcash_NoteEncryp", ss[:], ek[:])
}

// PRFOck computes PRF_ock(ovk, cv, cmu, epk) = BLAKE2s-256("Zcash_Derive_ock",
// ovk || cv || cmu || epk), the key used to AEAD-protect the outgoing
// ciphertext (§4.5 addition, §9 resolution).
func PRFOck(ovk [32]byte, cv, cmu, epk [32]byte) [32]byte {
	return blake2sWithPrefix("Zcash_Derive_ock", ovk[:], cv[:], cmu[:], epk[:])
}
