// Package encryption implements note encryption and trial decryption
// (§4.5): the sender-side Encrypt path (ECDH → KDF → AEAD-seal) and the
// receiver-side TrialDecrypt path, plus the outgoing-ciphertext pair a
// sender uses to recover what they sent without keeping a separate copy.
package encryption
