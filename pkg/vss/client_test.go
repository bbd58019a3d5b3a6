package vss

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vssclient/internal/cryptox"
	"github.com/dmitrijs2005/vssclient/internal/logging"
	"github.com/dmitrijs2005/vssclient/internal/proto"
	"github.com/dmitrijs2005/vssclient/internal/transport"
)

// fakeTransport implements transporter with per-endpoint functions and
// records every request and token it sees.
type fakeTransport struct {
	mu       sync.Mutex
	puts     []*proto.PutObjectRequest
	gets     []*proto.GetObjectRequest
	deletes  []*proto.DeleteObjectRequest
	listKVs  []*proto.ListKeyVersionsRequest
	listObjs []*proto.ListObjectsRequest
	tokens   []string

	getFn     func(req *proto.GetObjectRequest, token string) (*proto.GetObjectResponse, error)
	putFn     func(req *proto.PutObjectRequest, token string) (*proto.PutObjectResponse, error)
	deleteFn  func(req *proto.DeleteObjectRequest, token string) (*proto.DeleteObjectResponse, error)
	listKVFn  func(req *proto.ListKeyVersionsRequest, token string) (*proto.ListKeyVersionsResponse, error)
	listObjFn func(req *proto.ListObjectsRequest, token string) (*proto.ListObjectsResponse, error)
}

func (f *fakeTransport) GetObject(ctx context.Context, req *proto.GetObjectRequest, token string) (*proto.GetObjectResponse, error) {
	f.mu.Lock()
	f.gets = append(f.gets, req)
	f.tokens = append(f.tokens, token)
	f.mu.Unlock()
	if f.getFn == nil {
		return &proto.GetObjectResponse{}, nil
	}
	return f.getFn(req, token)
}

func (f *fakeTransport) PutObjects(ctx context.Context, req *proto.PutObjectRequest, token string) (*proto.PutObjectResponse, error) {
	f.mu.Lock()
	f.puts = append(f.puts, req)
	f.tokens = append(f.tokens, token)
	f.mu.Unlock()
	if f.putFn == nil {
		return &proto.PutObjectResponse{}, nil
	}
	return f.putFn(req, token)
}

func (f *fakeTransport) DeleteObject(ctx context.Context, req *proto.DeleteObjectRequest, token string) (*proto.DeleteObjectResponse, error) {
	f.mu.Lock()
	f.deletes = append(f.deletes, req)
	f.tokens = append(f.tokens, token)
	f.mu.Unlock()
	if f.deleteFn == nil {
		return &proto.DeleteObjectResponse{}, nil
	}
	return f.deleteFn(req, token)
}

func (f *fakeTransport) ListKeyVersions(ctx context.Context, req *proto.ListKeyVersionsRequest, token string) (*proto.ListKeyVersionsResponse, error) {
	f.mu.Lock()
	f.listKVs = append(f.listKVs, req)
	f.tokens = append(f.tokens, token)
	f.mu.Unlock()
	if f.listKVFn == nil {
		return &proto.ListKeyVersionsResponse{}, nil
	}
	return f.listKVFn(req, token)
}

func (f *fakeTransport) ListObjects(ctx context.Context, req *proto.ListObjectsRequest, token string) (*proto.ListObjectsResponse, error) {
	f.mu.Lock()
	f.listObjs = append(f.listObjs, req)
	f.tokens = append(f.tokens, token)
	f.mu.Unlock()
	if f.listObjFn == nil {
		return &proto.ListObjectsResponse{}, nil
	}
	return f.listObjFn(req, token)
}

type tokenResult struct {
	token string
	err   error
}

// fakeTokenSource hands out scripted tokens and records invalidations.
type fakeTokenSource struct {
	mu          sync.Mutex
	results     []tokenResult
	calls       int
	invalidated []string
}

func (f *fakeTokenSource) Token(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.results) == 0 {
		return "tok", nil
	}
	r := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return r.token, r.err
}

func (f *fakeTokenSource) Invalidate(oldToken string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, oldToken)
}

func statusErr(status int, code proto.ErrorCode, msg string) error {
	return &transport.StatusError{HTTPStatus: status, Code: code, Message: msg}
}

func newPlainClient(ft transporter) *Client {
	return &Client{storeID: "s1", logger: logging.Nop(), transport: ft}
}

func newAuthedClient(t *testing.T, ft transporter, ts tokenSource) *Client {
	t.Helper()
	dataKey, obfuscationKey := cryptox.DeriveStorageKeys(bytes.Repeat([]byte{9}, 32))
	sb, err := cryptox.NewStorableBuilder(dataKey)
	require.NoError(t, err)
	ob, err := cryptox.NewKeyObfuscator(obfuscationKey)
	require.NoError(t, err)
	return &Client{
		storeID:    "s1",
		logger:     logging.Nop(),
		transport:  ft,
		auth:       ts,
		storable:   sb,
		obfuscator: ob,
	}
}

func TestStore_ReturnsServerVersion(t *testing.T) {
	ft := &fakeTransport{
		putFn: func(req *proto.PutObjectRequest, token string) (*proto.PutObjectResponse, error) {
			return &proto.PutObjectResponse{
				Items: []*proto.KeyValue{{Key: req.TransactionItems[0].Key, Version: 1}},
			}, nil
		},
	}
	c := newPlainClient(ft)

	item, err := c.Store(context.Background(), "k", []byte("v1"))
	require.NoError(t, err)
	require.Equal(t, &Item{Key: "k", Value: []byte("v1"), Version: 1}, item)

	require.Len(t, ft.puts, 1)
	sent := ft.puts[0]
	require.Equal(t, "s1", sent.StoreID)
	require.Len(t, sent.TransactionItems, 1)
	require.Equal(t, "k", sent.TransactionItems[0].Key)
	require.Equal(t, []byte("v1"), sent.TransactionItems[0].Value)
	require.Equal(t, int64(-1), sent.TransactionItems[0].Version)
	require.Empty(t, ft.tokens[0])
}

func TestStore_EmptyKey(t *testing.T) {
	ft := &fakeTransport{}
	c := newPlainClient(ft)

	_, err := c.Store(context.Background(), "", []byte("v"))
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Empty(t, ft.puts)
}

func TestStore_ConflictSurfacesWithoutRetry(t *testing.T) {
	ft := &fakeTransport{
		putFn: func(req *proto.PutObjectRequest, token string) (*proto.PutObjectResponse, error) {
			return nil, statusErr(http.StatusConflict, proto.CodeConflict, "newer version exists")
		},
	}
	c := newPlainClient(ft)

	_, err := c.Store(context.Background(), "k", []byte("v"))
	require.ErrorIs(t, err, ErrVersionConflict)

	var se *transport.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusConflict, se.HTTPStatus)
	require.Len(t, ft.puts, 1)
}

func TestStore_UnclassifiedServerErrorPassesThrough(t *testing.T) {
	ft := &fakeTransport{
		putFn: func(req *proto.PutObjectRequest, token string) (*proto.PutObjectResponse, error) {
			return nil, statusErr(http.StatusInternalServerError, proto.CodeInternal, "boom")
		},
	}
	c := newPlainClient(ft)

	_, err := c.Store(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrVersionConflict)
	require.NotErrorIs(t, err, ErrNotFound)

	var se *transport.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusInternalServerError, se.HTTPStatus)
}

func TestGet_Hit(t *testing.T) {
	ft := &fakeTransport{
		getFn: func(req *proto.GetObjectRequest, token string) (*proto.GetObjectResponse, error) {
			return &proto.GetObjectResponse{
				Value: &proto.KeyValue{Key: req.Key, Version: 3, Value: []byte("v")},
			}, nil
		},
	}
	c := newPlainClient(ft)

	item, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, &Item{Key: "k", Value: []byte("v"), Version: 3}, item)
}

func TestGet_MissReturnsNil(t *testing.T) {
	tests := []struct {
		name  string
		getFn func(req *proto.GetObjectRequest, token string) (*proto.GetObjectResponse, error)
	}{
		{
			"no-such-key error",
			func(req *proto.GetObjectRequest, token string) (*proto.GetObjectResponse, error) {
				return nil, statusErr(http.StatusNotFound, proto.CodeNoSuchKey, "no such key")
			},
		},
		{
			"empty response",
			func(req *proto.GetObjectRequest, token string) (*proto.GetObjectResponse, error) {
				return &proto.GetObjectResponse{}, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newPlainClient(&fakeTransport{getFn: tt.getFn})
			item, err := c.Get(context.Background(), "k")
			require.NoError(t, err)
			require.Nil(t, item)
		})
	}
}

func TestGet_EmptyKey(t *testing.T) {
	c := newPlainClient(&fakeTransport{})
	_, err := c.Get(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthMode_StoreSealsValueAndObfuscatesKey(t *testing.T) {
	ft := &fakeTransport{}
	c := newAuthedClient(t, ft, &fakeTokenSource{})

	_, err := c.Store(context.Background(), "secret/key", []byte("payload"))
	require.NoError(t, err)

	require.Len(t, ft.puts, 1)
	sent := ft.puts[0].TransactionItems[0]

	require.NotEqual(t, "secret/key", sent.Key)
	recovered, err := c.obfuscator.Deobfuscate(sent.Key)
	require.NoError(t, err)
	require.Equal(t, "secret/key", recovered)

	require.NotContains(t, string(sent.Value), "payload")
	plain, version, err := c.storable.Deconstruct(sent.Value)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), plain)
	require.Equal(t, int64(-1), version)

	require.Equal(t, "tok", ft.tokens[0])
}

func TestAuthMode_GetDecrypts(t *testing.T) {
	ft := &fakeTransport{}
	c := newAuthedClient(t, ft, &fakeTokenSource{})

	sealed := c.storable.Build([]byte("plain"), noVersion)
	ft.getFn = func(req *proto.GetObjectRequest, token string) (*proto.GetObjectResponse, error) {
		return &proto.GetObjectResponse{
			Value: &proto.KeyValue{Key: req.Key, Version: 5, Value: sealed},
		}, nil
	}

	item, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, []byte("plain"), item.Value)
	require.Equal(t, int64(5), item.Version)

	require.Equal(t, c.obfuscator.Obfuscate("k"), ft.gets[0].Key)
}

func TestAuthMode_GetTamperedValueFailsClosed(t *testing.T) {
	ft := &fakeTransport{}
	c := newAuthedClient(t, ft, &fakeTokenSource{})

	sealed := c.storable.Build([]byte("plain"), noVersion)
	sealed[len(sealed)-1] ^= 0x01
	ft.getFn = func(req *proto.GetObjectRequest, token string) (*proto.GetObjectResponse, error) {
		return &proto.GetObjectResponse{
			Value: &proto.KeyValue{Key: req.Key, Version: 5, Value: sealed},
		}, nil
	}

	_, err := c.Get(context.Background(), "k")
	require.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestList_PlaintextSendsPrefixToServer(t *testing.T) {
	ft := &fakeTransport{
		listObjFn: func(req *proto.ListObjectsRequest, token string) (*proto.ListObjectsResponse, error) {
			return &proto.ListObjectsResponse{
				Objects: []*proto.KeyValue{
					{Key: "app/a", Version: 1, Value: []byte("va")},
					{Key: "app/b", Version: 2, Value: []byte("vb")},
				},
			}, nil
		},
	}
	c := newPlainClient(ft)

	items, err := c.List(context.Background(), "app/")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "app/a", items[0].Key)
	require.Equal(t, "app/b", items[1].Key)
	require.Equal(t, "app/", ft.listObjs[0].KeyPrefix)
}

func TestList_AuthModeFiltersClientSide(t *testing.T) {
	ft := &fakeTransport{}
	c := newAuthedClient(t, ft, &fakeTokenSource{})

	obj := func(key, value string) *proto.KeyValue {
		return &proto.KeyValue{
			Key:     c.obfuscator.Obfuscate(key),
			Version: 1,
			Value:   c.storable.Build([]byte(value), noVersion),
		}
	}
	ft.listObjFn = func(req *proto.ListObjectsRequest, token string) (*proto.ListObjectsResponse, error) {
		return &proto.ListObjectsResponse{
			Objects: []*proto.KeyValue{
				obj("app/a", "va"),
				{Key: "written-by-someone-else", Version: 9, Value: []byte("junk")},
				obj("zzz/c", "vc"),
				obj("app/b", "vb"),
			},
		}, nil
	}

	items, err := c.List(context.Background(), "app/")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "app/a", items[0].Key)
	require.Equal(t, []byte("va"), items[0].Value)
	require.Equal(t, "app/b", items[1].Key)

	// Obfuscation destroys prefix structure, so the server query is
	// unfiltered.
	require.Empty(t, ft.listObjs[0].KeyPrefix)
}

func TestList_Paginates(t *testing.T) {
	ft := &fakeTransport{}
	ft.listObjFn = func(req *proto.ListObjectsRequest, token string) (*proto.ListObjectsResponse, error) {
		if req.PageToken == "" {
			return &proto.ListObjectsResponse{
				Objects:       []*proto.KeyValue{{Key: "a", Version: 1, Value: []byte("va")}},
				NextPageToken: "p2",
			}, nil
		}
		return &proto.ListObjectsResponse{
			Objects: []*proto.KeyValue{{Key: "b", Version: 2, Value: []byte("vb")}},
		}, nil
	}
	c := newPlainClient(ft)

	items, err := c.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].Key)
	require.Equal(t, "b", items[1].Key)

	require.Len(t, ft.listObjs, 2)
	require.Equal(t, "p2", ft.listObjs[1].PageToken)
}

func TestListKeys_AuthModeDeobfuscates(t *testing.T) {
	ft := &fakeTransport{}
	c := newAuthedClient(t, ft, &fakeTokenSource{})

	ft.listKVFn = func(req *proto.ListKeyVersionsRequest, token string) (*proto.ListKeyVersionsResponse, error) {
		return &proto.ListKeyVersionsResponse{
			KeyVersions: []*proto.KeyValue{
				{Key: c.obfuscator.Obfuscate("app/a"), Version: 3},
				{Key: "foreign-key", Version: 1},
				{Key: c.obfuscator.Obfuscate("other/b"), Version: 2},
			},
		}, nil
	}

	keys, err := c.ListKeys(context.Background(), "app/")
	require.NoError(t, err)
	require.Equal(t, []*KeyVersion{{Key: "app/a", Version: 3}}, keys)
	require.Empty(t, ft.listKVs[0].KeyPrefix)
}

func TestListKeys_Plaintext(t *testing.T) {
	ft := &fakeTransport{
		listKVFn: func(req *proto.ListKeyVersionsRequest, token string) (*proto.ListKeyVersionsResponse, error) {
			return &proto.ListKeyVersionsResponse{
				KeyVersions: []*proto.KeyValue{{Key: "app/a", Version: 3}},
			}, nil
		},
	}
	c := newPlainClient(ft)

	keys, err := c.ListKeys(context.Background(), "app/")
	require.NoError(t, err)
	require.Equal(t, []*KeyVersion{{Key: "app/a", Version: 3}}, keys)
	require.Equal(t, "app/", ft.listKVs[0].KeyPrefix)
}

func TestPutWithKeyPrefix_Success(t *testing.T) {
	ft := &fakeTransport{
		putFn: func(req *proto.PutObjectRequest, token string) (*proto.PutObjectResponse, error) {
			resp := &proto.PutObjectResponse{}
			for i, it := range req.TransactionItems {
				resp.Items = append(resp.Items, &proto.KeyValue{Key: it.Key, Version: int64(i) + 1})
			}
			return resp, nil
		},
	}
	c := newPlainClient(ft)

	items, err := c.PutWithKeyPrefix(context.Background(), []KeyValue{
		{Key: "a", Value: []byte("va")},
		{Key: "b", Value: []byte("vb")},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, &Item{Key: "a", Value: []byte("va"), Version: 1}, items[0])
	require.Equal(t, &Item{Key: "b", Value: []byte("vb"), Version: 2}, items[1])

	require.Len(t, ft.puts, 1)
	require.Len(t, ft.puts[0].TransactionItems, 2)
}

func TestPutWithKeyPrefix_AtomicFailure(t *testing.T) {
	ft := &fakeTransport{
		putFn: func(req *proto.PutObjectRequest, token string) (*proto.PutObjectResponse, error) {
			return nil, statusErr(http.StatusConflict, proto.CodeConflict, "item 2 version mismatch")
		},
	}
	c := newPlainClient(ft)

	items, err := c.PutWithKeyPrefix(context.Background(), []KeyValue{
		{Key: "a", Value: []byte("va")},
		{Key: "b", Value: []byte("vb")},
	})
	require.ErrorIs(t, err, ErrVersionConflict)
	require.Nil(t, items)
	require.Len(t, ft.puts, 1)
}

func TestPutWithKeyPrefix_InputValidation(t *testing.T) {
	ft := &fakeTransport{}
	c := newPlainClient(ft)

	items, err := c.PutWithKeyPrefix(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, items)

	_, err = c.PutWithKeyPrefix(context.Background(), []KeyValue{{Key: "", Value: []byte("v")}})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Empty(t, ft.puts)
}

func TestDelete(t *testing.T) {
	t.Run("existing key", func(t *testing.T) {
		ft := &fakeTransport{}
		c := newPlainClient(ft)

		deleted, err := c.Delete(context.Background(), "k")
		require.NoError(t, err)
		require.True(t, deleted)
		require.Equal(t, "k", ft.deletes[0].KeyValue.Key)
		require.Equal(t, int64(-1), ft.deletes[0].KeyValue.Version)
	})

	t.Run("absent key", func(t *testing.T) {
		ft := &fakeTransport{
			deleteFn: func(req *proto.DeleteObjectRequest, token string) (*proto.DeleteObjectResponse, error) {
				return nil, statusErr(http.StatusNotFound, proto.CodeNoSuchKey, "no such key")
			},
		}
		c := newPlainClient(ft)

		deleted, err := c.Delete(context.Background(), "k")
		require.NoError(t, err)
		require.False(t, deleted)
	})

	t.Run("server error", func(t *testing.T) {
		ft := &fakeTransport{
			deleteFn: func(req *proto.DeleteObjectRequest, token string) (*proto.DeleteObjectResponse, error) {
				return nil, statusErr(http.StatusInternalServerError, proto.CodeInternal, "boom")
			},
		}
		c := newPlainClient(ft)

		_, err := c.Delete(context.Background(), "k")
		require.Error(t, err)
	})

	t.Run("empty key", func(t *testing.T) {
		c := newPlainClient(&fakeTransport{})
		_, err := c.Delete(context.Background(), "")
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestWithToken_RenewsOnceOnRejection(t *testing.T) {
	ts := &fakeTokenSource{results: []tokenResult{{token: "stale"}, {token: "fresh"}}}
	ft := &fakeTransport{
		putFn: func(req *proto.PutObjectRequest, token string) (*proto.PutObjectResponse, error) {
			if token == "stale" {
				return nil, statusErr(http.StatusUnauthorized, proto.CodeAuth, "token expired")
			}
			return &proto.PutObjectResponse{
				Items: []*proto.KeyValue{{Key: req.TransactionItems[0].Key, Version: 1}},
			}, nil
		},
	}
	c := newAuthedClient(t, ft, ts)

	item, err := c.Store(context.Background(), "k", []byte("v"))
	require.NoError(t, err)
	require.Equal(t, int64(1), item.Version)

	require.Len(t, ft.puts, 2)
	require.Equal(t, []string{"stale", "fresh"}, ft.tokens)
	require.Equal(t, []string{"stale"}, ts.invalidated)
	require.Equal(t, 2, ts.calls)
}

func TestWithToken_SecondRejectionSurfaces(t *testing.T) {
	ts := &fakeTokenSource{results: []tokenResult{{token: "t1"}, {token: "t2"}}}
	ft := &fakeTransport{
		putFn: func(req *proto.PutObjectRequest, token string) (*proto.PutObjectResponse, error) {
			return nil, statusErr(http.StatusUnauthorized, proto.CodeAuth, "rejected")
		},
	}
	c := newAuthedClient(t, ft, ts)

	_, err := c.Store(context.Background(), "k", []byte("v"))
	require.ErrorIs(t, err, ErrAuthenticationFailed)

	// One renewal, one replay, no third attempt.
	require.Len(t, ft.puts, 2)
	require.Equal(t, 2, ts.calls)
}

func TestWithToken_RenewalFailureSurfaces(t *testing.T) {
	renewErr := fmt.Errorf("%w: challenge rejected", ErrAuthenticationFailed)
	ts := &fakeTokenSource{results: []tokenResult{{token: "stale"}, {err: renewErr}}}
	ft := &fakeTransport{
		putFn: func(req *proto.PutObjectRequest, token string) (*proto.PutObjectResponse, error) {
			return nil, statusErr(http.StatusForbidden, proto.CodeAuth, "rejected")
		},
	}
	c := newAuthedClient(t, ft, ts)

	_, err := c.Store(context.Background(), "k", []byte("v"))
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	require.Len(t, ft.puts, 1)
}

func TestUnauthenticatedClient_AuthRejectionSurfaces(t *testing.T) {
	ft := &fakeTransport{
		putFn: func(req *proto.PutObjectRequest, token string) (*proto.PutObjectResponse, error) {
			return nil, statusErr(http.StatusUnauthorized, proto.CodeAuth, "store requires auth")
		},
	}
	c := newPlainClient(ft)

	_, err := c.Store(context.Background(), "k", []byte("v"))
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	require.Len(t, ft.puts, 1)
}

func TestClosedClient(t *testing.T) {
	c := newPlainClient(&fakeTransport{})
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err := c.Store(context.Background(), "k", []byte("v"))
	require.ErrorIs(t, err, ErrClientClosed)
	_, err = c.Get(context.Background(), "k")
	require.ErrorIs(t, err, ErrClientClosed)
	_, err = c.List(context.Background(), "")
	require.ErrorIs(t, err, ErrClientClosed)
	_, err = c.ListKeys(context.Background(), "")
	require.ErrorIs(t, err, ErrClientClosed)
	_, err = c.PutWithKeyPrefix(context.Background(), []KeyValue{{Key: "k"}})
	require.ErrorIs(t, err, ErrClientClosed)
	_, err = c.Delete(context.Background(), "k")
	require.ErrorIs(t, err, ErrClientClosed)
}

func TestNew_Validation(t *testing.T) {
	_, err := New("http://vss.example.com", "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = New("://bad", "s1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidInput)
}

func TestNewWithLnurlAuth_InvalidMnemonic(t *testing.T) {
	_, err := NewWithLnurlAuth("http://vss.example.com", "s1", "not a mnemonic", "", "http://auth.example.com")
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestMapServerError_NonStatusErrorsPassThrough(t *testing.T) {
	cause := errors.New("connection refused")
	require.ErrorIs(t, mapServerError(cause), cause)
	require.NoError(t, mapServerError(nil))
}

func TestDeriveStoreID(t *testing.T) {
	const mnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	id, err := DeriveStoreID("bitkitv1regtest", mnemonic, "")
	require.NoError(t, err)
	require.Equal(t, "bitkitv1regtest16a68cb1567e8e77d0508b596b9d66fe", id)

	again, err := DeriveStoreID("bitkitv1regtest", mnemonic, "")
	require.NoError(t, err)
	require.Equal(t, id, again)

	other, err := DeriveStoreID("bitkitv1regtest", mnemonic, "different")
	require.NoError(t, err)
	require.NotEqual(t, id, other)

	_, err = DeriveStoreID("p", "gibberish", "")
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}
