// Package lnurlauth implements the LNURL-auth challenge/response flow and
// manages the resulting bearer-token session.
//
// The flow: fetch a bech32-encoded LNURL from the auth server, decode it into
// a callback URL carrying a one-time k1 challenge, sign k1 with a linking key
// derived per callback domain, then exchange the signature for a JWT.
package lnurlauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// k1 challenges are 32-byte values; the signature covers them directly as a
// message digest.
const k1Length = 32

// parseChallenge decodes a bech32 LNURL into its callback URL and the k1
// challenge embedded in the query string.
func parseChallenge(lnurl string) (*url.URL, []byte, error) {
	hrp, data, err := bech32.DecodeNoLimit(strings.ToLower(strings.TrimSpace(lnurl)))
	if err != nil {
		return nil, nil, fmt.Errorf("decode lnurl: %w", err)
	}
	if hrp != "lnurl" {
		return nil, nil, fmt.Errorf("unexpected bech32 prefix %q", hrp)
	}

	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, nil, fmt.Errorf("decode lnurl payload: %w", err)
	}

	callback, err := url.Parse(string(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("parse callback url: %w", err)
	}

	k1, err := hex.DecodeString(callback.Query().Get("k1"))
	if err != nil || len(k1) != k1Length {
		return nil, nil, fmt.Errorf("callback is missing a %d-byte k1 challenge", k1Length)
	}

	return callback, k1, nil
}

// linkingKey derives the domain-scoped signing key: the hashing key is the
// parent's first child, and HMAC-SHA256(hashing key, domain) supplies four
// big-endian u32 path elements under the parent. Same parent plus same domain
// always yields the same key, so the server can pin the client identity.
func linkingKey(parent *hdkeychain.ExtendedKey, domain string) (*btcec.PrivateKey, error) {
	hashing, err := parent.Derive(0)
	if err != nil {
		return nil, fmt.Errorf("derive hashing key: %w", err)
	}
	hashingPriv, err := hashing.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("derive hashing key: %w", err)
	}

	mac := hmac.New(sha256.New, hashingPriv.Serialize())
	mac.Write([]byte(domain))
	sum := mac.Sum(nil)

	key := parent
	for i := 0; i < 4; i++ {
		idx := binary.BigEndian.Uint32(sum[i*4 : (i+1)*4])
		if key, err = key.Derive(idx); err != nil {
			return nil, fmt.Errorf("derive linking key: %w", err)
		}
	}
	return key.ECPrivKey()
}

// signedCallback signs k1 with the linking key and appends the proof to the
// callback URL as `sig` (DER, hex) and `key` (compressed pubkey, hex).
func signedCallback(callback *url.URL, k1 []byte, key *btcec.PrivateKey) string {
	sig := ecdsa.Sign(key, k1)

	q := callback.Query()
	q.Set("sig", hex.EncodeToString(sig.Serialize()))
	q.Set("key", hex.EncodeToString(key.PubKey().SerializeCompressed()))

	signed := *callback
	signed.RawQuery = q.Encode()
	return signed.String()
}
