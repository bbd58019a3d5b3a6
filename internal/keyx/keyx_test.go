package keyx

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestDeriveIdentity_KnownVector(t *testing.T) {
	id, err := DeriveIdentity(testMnemonic, "")
	require.NoError(t, err)
	defer id.Wipe()

	require.Equal(t, "1c27d45e6c6310ff8c231e81a68e2081e3b23e83499bb4082054eb1e57438245",
		hex.EncodeToString(id.StoreSeed()))
	require.Equal(t, "bitkitv1regtest16a68cb1567e8e77d0508b596b9d66fe",
		id.StoreID("bitkitv1regtest"))

	priv, err := id.LnurlAuthKey().ECPrivKey()
	require.NoError(t, err)
	require.Equal(t, "8ea3e4721fe7f84354f16a59fc98c3c1ec274a17fa7f504264d7cfa69ed481e5",
		hex.EncodeToString(priv.Serialize()))
}

func TestDeriveIdentity_PassphraseChangesIdentity(t *testing.T) {
	id, err := DeriveIdentity(testMnemonic, "TREZOR")
	require.NoError(t, err)
	defer id.Wipe()

	require.Equal(t, "8c3d1795f7e0181389cb56cff604c354db1016370589c607c6c14d1f45c1fc5d",
		hex.EncodeToString(id.StoreSeed()))
	require.Equal(t, "bitkitv1e9cc5c71a8e85e73e320e8afdce8681a", id.StoreID("bitkitv1"))
}

func TestDeriveIdentity_Deterministic(t *testing.T) {
	a, err := DeriveIdentity(testMnemonic, "pass")
	require.NoError(t, err)
	b, err := DeriveIdentity(testMnemonic, "pass")
	require.NoError(t, err)

	require.Equal(t, a.StoreSeed(), b.StoreSeed())
	require.Equal(t, a.StoreID("p"), b.StoreID("p"))
}

func TestDeriveIdentity_NormalizesWhitespaceAndCase(t *testing.T) {
	messy := "  Abandon abandon ABANDON abandon abandon abandon\tabandon abandon abandon abandon abandon   about "

	a, err := DeriveIdentity(testMnemonic, "")
	require.NoError(t, err)
	b, err := DeriveIdentity(messy, "")
	require.NoError(t, err)

	require.Equal(t, a.StoreID("x"), b.StoreID("x"))
}

func TestDeriveIdentity_InvalidMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
	}{
		{"empty", ""},
		{"wrong word count", "abandon abandon abandon"},
		{"bad checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"},
		{"unknown words", "zzzz yyyy xxxx wwww vvvv uuuu tttt ssss rrrr qqqq pppp oooo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveIdentity(tt.mnemonic, "")
			require.ErrorIs(t, err, ErrInvalidMnemonic)
		})
	}
}

func TestStoreID_PrefixNamespaces(t *testing.T) {
	id, err := DeriveIdentity(testMnemonic, "")
	require.NoError(t, err)
	defer id.Wipe()

	a := id.StoreID("bitkitv1")
	b := id.StoreID("bitkitv1regtest")
	require.NotEqual(t, a, b)
	require.Equal(t, a[len("bitkitv1"):], b[len("bitkitv1regtest"):])
}

func TestDeriveStoreID(t *testing.T) {
	got, err := DeriveStoreID("bitkitv1regtest", testMnemonic, "")
	require.NoError(t, err)
	require.Equal(t, "bitkitv1regtest16a68cb1567e8e77d0508b596b9d66fe", got)

	_, err = DeriveStoreID("p", "not a mnemonic", "")
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestIdentity_Wipe(t *testing.T) {
	id, err := DeriveIdentity(testMnemonic, "")
	require.NoError(t, err)

	seed := id.StoreSeed()
	require.NotEqual(t, bytes.Repeat([]byte{0}, 32), seed)

	id.Wipe()
	require.Equal(t, bytes.Repeat([]byte{0}, 32), seed)
}
