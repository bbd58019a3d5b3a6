// Package cryptox implements the client-side encryption primitives for
// stored values: the storage key-derivation chain, the encrypted value
// envelope and deterministic key-name obfuscation.
package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
)

// ErrDecryptionFailed reports an authentication failure while opening stored
// material: tampering, truncation or a wrong key. Callers match it with
// errors.Is.
var ErrDecryptionFailed = errors.New("decryption failed")

// hmacSHA256 computes a MAC of msg under key.
func hmacSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// hkdfExtract is the HKDF extract step: the salt keys the HMAC and the input
// keying material is the message.
func hkdfExtract(salt, ikm []byte) []byte {
	return hmacSHA256(salt, ikm)
}

// DeriveStorageKeys expands the 32-byte store seed into the value-encryption
// key and the key-obfuscation master key. The chain is frozen: any change
// orphans data stored by earlier builds.
func DeriveStorageKeys(seed []byte) (dataKey, obfuscationKey []byte) {
	prk := hkdfExtract([]byte("pseudo_random_key"), seed)
	dataKey = hkdfExtract([]byte("data_encryption_key"), prk)

	salt := make([]byte, 0, len(dataKey)+len("obfuscation_key"))
	salt = append(salt, dataKey...)
	salt = append(salt, []byte("obfuscation_key")...)
	obfuscationKey = hkdfExtract(salt, prk)

	return dataKey, obfuscationKey
}
