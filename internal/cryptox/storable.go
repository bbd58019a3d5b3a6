package cryptox

import (
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/dmitrijs2005/vssclient/internal/proto"
	"github.com/dmitrijs2005/vssclient/internal/shared"
)

// CipherFormat identifies the AEAD used by the Storable envelope. The string
// travels inside EncryptionMetadata, so it is part of the stored format.
const CipherFormat = "ChaCha20Poly1305"

// StorableBuilder seals values into Storable envelopes and opens them again.
// The plaintext carries the item version alongside the value, so a response
// cannot splice an old ciphertext under a new version unnoticed.
type StorableBuilder struct {
	aead cipher.AEAD
}

// NewStorableBuilder builds a StorableBuilder over a 32-byte data key.
func NewStorableBuilder(dataKey []byte) (*StorableBuilder, error) {
	aead, err := chacha20poly1305.New(dataKey)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return &StorableBuilder{aead: aead}, nil
}

// Build seals value and version into a marshaled Storable envelope with a
// fresh random nonce.
func (sb *StorableBuilder) Build(value []byte, version int64) []byte {
	plaintext := (&proto.PlaintextBlob{Value: value, Version: version}).Marshal()

	nonce := shared.GenerateRandByteArray(chacha20poly1305.NonceSize)
	sealed := sb.aead.Seal(nil, nonce, plaintext, nil)

	split := len(sealed) - chacha20poly1305.Overhead
	storable := &proto.Storable{
		Data: sealed[:split],
		EncryptionMetadata: &proto.EncryptionMetadata{
			CipherFormat: CipherFormat,
			Nonce:        nonce,
			Tag:          sealed[split:],
		},
	}
	return storable.Marshal()
}

// Deconstruct opens a marshaled Storable envelope and returns the value and
// the version it was sealed with. It fails closed with ErrDecryptionFailed
// on any tampering, truncation or metadata mismatch.
func (sb *StorableBuilder) Deconstruct(blob []byte) ([]byte, int64, error) {
	storable, err := proto.UnmarshalStorable(blob)
	if err != nil {
		return nil, 0, fmt.Errorf("malformed envelope: %w", ErrDecryptionFailed)
	}

	md := storable.EncryptionMetadata
	if md == nil || md.CipherFormat != CipherFormat ||
		len(md.Nonce) != chacha20poly1305.NonceSize ||
		len(md.Tag) != chacha20poly1305.Overhead {
		return nil, 0, fmt.Errorf("unsupported envelope metadata: %w", ErrDecryptionFailed)
	}

	sealed := make([]byte, 0, len(storable.Data)+len(md.Tag))
	sealed = append(sealed, storable.Data...)
	sealed = append(sealed, md.Tag...)

	plaintext, err := sb.aead.Open(nil, md.Nonce, sealed, nil)
	if err != nil {
		return nil, 0, ErrDecryptionFailed
	}

	pb, err := proto.UnmarshalPlaintextBlob(plaintext)
	if err != nil {
		return nil, 0, fmt.Errorf("malformed plaintext blob: %w", ErrDecryptionFailed)
	}
	return pb.Value, pb.Version, nil
}
