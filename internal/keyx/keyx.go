// Package keyx derives the client's store identity from a BIP39 mnemonic:
// the store id, the storage-encryption seed and the LNURL-auth parent key.
package keyx

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	bip39 "github.com/tyler-smith/go-bip39"

	"github.com/dmitrijs2005/vssclient/internal/shared"
)

// ErrInvalidMnemonic reports a phrase that is not a valid 12- or 24-word
// BIP39 mnemonic.
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// Hardened derivation indices under the BIP32 master. Frozen: changing them
// changes every derived store identity.
const (
	storeKeyIndex     = 877
	lnurlAuthKeyIndex = 138
)

// Identity is the key material derived from one (mnemonic, passphrase) pair.
// StoreSeed keys the storage encryption chain; LnurlAuthKey is the parent for
// per-domain LNURL-auth linking keys. Never persisted.
type Identity struct {
	storeSeed   []byte
	storePubKey []byte

	lnurlAuthKey *hdkeychain.ExtendedKey
}

// normalizeMnemonic collapses whitespace and enforces the 12/24 word shape
// before the BIP39 checksum runs.
func normalizeMnemonic(mnemonic string) (string, error) {
	words := strings.Fields(strings.ToLower(mnemonic))
	if len(words) != 12 && len(words) != 24 {
		return "", fmt.Errorf("expected 12 or 24 words, got %d: %w", len(words), ErrInvalidMnemonic)
	}
	return strings.Join(words, " "), nil
}

// DeriveIdentity validates the mnemonic and derives the store identity.
//
// The BIP39 seed is truncated to its first 32 bytes before the BIP32 master
// is built. The truncation is part of the frozen identity scheme; removing it
// would silently re-key every existing store.
func DeriveIdentity(mnemonic, passphrase string) (*Identity, error) {
	normalized, err := normalizeMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}

	seed, err := bip39.NewSeedWithErrorChecking(normalized, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	defer shared.WipeByteArray(seed)

	master, err := hdkeychain.NewMaster(seed[:32], &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}

	storeKey, err := master.Derive(hdkeychain.HardenedKeyStart + storeKeyIndex)
	if err != nil {
		return nil, fmt.Errorf("derive store key: %w", err)
	}

	lnurlKey, err := storeKey.Derive(hdkeychain.HardenedKeyStart + lnurlAuthKeyIndex)
	if err != nil {
		return nil, fmt.Errorf("derive lnurl auth key: %w", err)
	}

	priv, err := storeKey.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("extract store private key: %w", err)
	}

	return &Identity{
		storeSeed:    priv.Serialize(),
		storePubKey:  priv.PubKey().SerializeCompressed(),
		lnurlAuthKey: lnurlKey,
	}, nil
}

// StoreSeed returns the 32-byte secret keying the storage encryption chain.
// The slice is owned by the Identity; callers must not retain it past Wipe.
func (id *Identity) StoreSeed() []byte {
	return id.storeSeed
}

// LnurlAuthKey returns the extended parent key for LNURL-auth linking keys.
func (id *Identity) LnurlAuthKey() *hdkeychain.ExtendedKey {
	return id.lnurlAuthKey
}

// StoreID namespaces the derived identity under prefix: the prefix is
// concatenated with 16 bytes of the SHA-256 of the store public key, hex
// encoded. Deterministic and collision-resistant across identities.
func (id *Identity) StoreID(prefix string) string {
	sum := sha256.Sum256(id.storePubKey)
	return prefix + hex.EncodeToString(sum[:16])
}

// Wipe zeroes the secret seed. The Identity is unusable afterwards.
func (id *Identity) Wipe() {
	shared.WipeByteArray(id.storeSeed)
	if id.lnurlAuthKey != nil {
		id.lnurlAuthKey.Zero()
	}
}

// DeriveStoreID is the one-shot form used when only the identifier is
// needed, e.g. by callers that query a store they do not plan to open.
func DeriveStoreID(prefix, mnemonic, passphrase string) (string, error) {
	id, err := DeriveIdentity(mnemonic, passphrase)
	if err != nil {
		return "", err
	}
	defer id.Wipe()
	return id.StoreID(prefix), nil
}
