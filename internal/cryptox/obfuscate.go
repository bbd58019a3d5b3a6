package cryptox

import (
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeyObfuscator deterministically encrypts key names so the server never
// sees them in the clear. Determinism matters: the same name must map to the
// same stored key on every call, or lookups would miss.
type KeyObfuscator struct {
	aead       cipher.AEAD
	hashingKey []byte
}

// NewKeyObfuscator derives the obfuscation subkeys from the 32-byte
// obfuscation master key, following the same extract chain as the storage
// keys.
func NewKeyObfuscator(obfuscationKey []byte) (*KeyObfuscator, error) {
	prk := hkdfExtract([]byte("pseudo_random_key"), obfuscationKey)
	encryptionKey := hkdfExtract([]byte("encryption_key"), prk)

	salt := make([]byte, 0, len(encryptionKey)+len("hashing_key"))
	salt = append(salt, encryptionKey...)
	salt = append(salt, []byte("hashing_key")...)
	hashingKey := hkdfExtract(salt, prk)

	aead, err := chacha20poly1305.New(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return &KeyObfuscator{aead: aead, hashingKey: hashingKey}, nil
}

// Obfuscate encrypts a key name. The nonce is an HMAC of the name under an
// independent key (SIV construction), which makes the output deterministic
// without leaking name equality beyond what a key-value store shows anyway.
func (o *KeyObfuscator) Obfuscate(key string) string {
	mac := hmacSHA256(o.hashingKey, []byte(key))
	nonce := mac[:chacha20poly1305.NonceSize]

	sealed := o.aead.Seal(nil, nonce, []byte(key), nil)

	out := make([]byte, 0, len(nonce)+len(sealed))
	out = append(out, nonce...)
	out = append(out, sealed...)
	return base64.RawURLEncoding.EncodeToString(out)
}

// Deobfuscate reverses Obfuscate, failing with ErrDecryptionFailed on
// malformed input, tampering or a wrong key.
func (o *KeyObfuscator) Deobfuscate(obfuscated string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(obfuscated)
	if err != nil {
		return "", fmt.Errorf("malformed obfuscated key: %w", ErrDecryptionFailed)
	}
	if len(raw) < chacha20poly1305.NonceSize+chacha20poly1305.Overhead {
		return "", fmt.Errorf("obfuscated key too short: %w", ErrDecryptionFailed)
	}

	nonce := raw[:chacha20poly1305.NonceSize]
	sealed := raw[chacha20poly1305.NonceSize:]

	plain, err := o.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plain), nil
}
