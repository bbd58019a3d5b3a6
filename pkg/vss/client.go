package vss

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/vssclient/internal/cryptox"
	"github.com/dmitrijs2005/vssclient/internal/keyx"
	"github.com/dmitrijs2005/vssclient/internal/lnurlauth"
	"github.com/dmitrijs2005/vssclient/internal/logging"
	"github.com/dmitrijs2005/vssclient/internal/proto"
	"github.com/dmitrijs2005/vssclient/internal/shared"
	"github.com/dmitrijs2005/vssclient/internal/transport"
)

// noVersion submits a write without an optimistic-concurrency check; the
// server assigns the next version itself.
const noVersion = int64(-1)

// transporter is the wire surface the client drives. *transport.Client is
// the production implementation.
type transporter interface {
	GetObject(ctx context.Context, req *proto.GetObjectRequest, token string) (*proto.GetObjectResponse, error)
	PutObjects(ctx context.Context, req *proto.PutObjectRequest, token string) (*proto.PutObjectResponse, error)
	DeleteObject(ctx context.Context, req *proto.DeleteObjectRequest, token string) (*proto.DeleteObjectResponse, error)
	ListKeyVersions(ctx context.Context, req *proto.ListKeyVersionsRequest, token string) (*proto.ListKeyVersionsResponse, error)
	ListObjects(ctx context.Context, req *proto.ListObjectsRequest, token string) (*proto.ListObjectsResponse, error)
}

// tokenSource supplies bearer tokens. *lnurlauth.Provider is the production
// implementation; a nil source means unauthenticated mode.
type tokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate(oldToken string)
}

// Client is a handle to one store on one VSS server. It is safe for
// concurrent use.
type Client struct {
	storeID string
	logger  logging.Logger
	timeout time.Duration

	transport transporter
	auth      tokenSource

	storable   *cryptox.StorableBuilder
	obfuscator *cryptox.KeyObfuscator
	identity   *keyx.Identity

	closed atomic.Bool
}

// New builds an unauthenticated Client. Values are stored as given and no
// credentials are attached; mixing this mode with authenticated access to
// the same store is a caller error the client cannot detect.
func New(baseURL, storeID string, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if storeID == "" {
		return nil, fmt.Errorf("%w: empty store id", ErrInvalidInput)
	}

	tr, err := transport.New(baseURL, o.httpClient, o.logger)
	if err != nil {
		return nil, err
	}

	return &Client{
		storeID:   storeID,
		logger:    o.logger,
		timeout:   o.timeout,
		transport: tr,
	}, nil
}

// NewWithLnurlAuth builds an authenticated Client. The mnemonic and
// passphrase derive the key material for LNURL-auth signing, value
// encryption and key-name obfuscation; storeID is usually the matching
// DeriveStoreID output.
func NewWithLnurlAuth(baseURL, storeID, mnemonic, passphrase, lnurlAuthServerURL string, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if storeID == "" {
		return nil, fmt.Errorf("%w: empty store id", ErrInvalidInput)
	}

	identity, err := keyx.DeriveIdentity(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}

	dataKey, obfuscationKey := cryptox.DeriveStorageKeys(identity.StoreSeed())
	defer shared.WipeByteArray(dataKey)
	defer shared.WipeByteArray(obfuscationKey)

	storable, err := cryptox.NewStorableBuilder(dataKey)
	if err != nil {
		identity.Wipe()
		return nil, fmt.Errorf("init value encryption: %w", err)
	}
	obfuscator, err := cryptox.NewKeyObfuscator(obfuscationKey)
	if err != nil {
		identity.Wipe()
		return nil, fmt.Errorf("init key obfuscation: %w", err)
	}

	auth, err := lnurlauth.NewProvider(identity.LnurlAuthKey(), lnurlAuthServerURL, o.httpClient, o.logger)
	if err != nil {
		identity.Wipe()
		return nil, err
	}

	tr, err := transport.New(baseURL, o.httpClient, o.logger)
	if err != nil {
		identity.Wipe()
		return nil, err
	}

	return &Client{
		storeID:    storeID,
		logger:     o.logger,
		timeout:    o.timeout,
		transport:  tr,
		auth:       auth,
		storable:   storable,
		obfuscator: obfuscator,
		identity:   identity,
	}, nil
}

// StoreID returns the store identifier this handle operates on.
func (c *Client) StoreID() string { return c.storeID }

// Close wipes the handle's key material. In-flight operations are allowed
// to finish; operations started afterwards fail with ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if c.identity != nil {
		c.identity.Wipe()
	}
	return nil
}

// Store writes value under key and returns the stored item with its
// server-assigned version. No prior state is read: the server increments the
// version atomically, and a concurrent-write rejection surfaces as
// ErrVersionConflict without retry.
func (c *Client) Store(ctx context.Context, key string, value []byte) (*Item, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidInput)
	}
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	req := &proto.PutObjectRequest{
		StoreID: c.storeID,
		TransactionItems: []*proto.KeyValue{{
			Key:     c.storageKey(key),
			Version: noVersion,
			Value:   c.sealValue(value, noVersion),
		}},
	}

	var resp *proto.PutObjectResponse
	err := c.withToken(ctx, func(token string) error {
		var callErr error
		resp, callErr = c.transport.PutObjects(ctx, req, token)
		return callErr
	})
	if err != nil {
		return nil, mapServerError(err)
	}

	item := &Item{Key: key, Value: value, Version: noVersion}
	if len(resp.Items) > 0 {
		item.Version = resp.Items[0].Version
	}
	return item, nil
}

// Get fetches the item stored under key, or nil when the key is absent.
func (c *Client) Get(ctx context.Context, key string) (*Item, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidInput)
	}
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	req := &proto.GetObjectRequest{StoreID: c.storeID, Key: c.storageKey(key)}

	var resp *proto.GetObjectResponse
	err := c.withToken(ctx, func(token string) error {
		var callErr error
		resp, callErr = c.transport.GetObject(ctx, req, token)
		return callErr
	})
	if err != nil {
		if err = mapServerError(err); errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if resp.Value == nil {
		return nil, nil
	}

	value, err := c.openValue(resp.Value.Value)
	if err != nil {
		return nil, err
	}
	return &Item{Key: key, Value: value, Version: resp.Value.Version}, nil
}

// List returns every item whose key starts with prefix, values included,
// fully materialized in the order the server yields pages. An empty prefix
// lists the whole store.
//
// Obfuscated storage keys do not preserve prefixes, so in authenticated mode
// the server is queried unfiltered and the prefix is applied after key names
// are recovered. Entries that cannot be recovered, such as items written by
// a different identity, are skipped with a warning rather than failing the
// listing.
func (c *Client) List(ctx context.Context, prefix string) ([]*Item, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	var items []*Item
	pageToken := ""
	for {
		req := &proto.ListObjectsRequest{
			StoreID:   c.storeID,
			KeyPrefix: c.serverPrefix(prefix),
			PageToken: pageToken,
		}

		var resp *proto.ListObjectsResponse
		err := c.withToken(ctx, func(token string) error {
			var callErr error
			resp, callErr = c.transport.ListObjects(ctx, req, token)
			return callErr
		})
		if err != nil {
			return nil, mapServerError(err)
		}

		for _, obj := range resp.Objects {
			if item, ok := c.decodeObject(ctx, obj, prefix); ok {
				items = append(items, item)
			}
		}

		if resp.NextPageToken == "" {
			return items, nil
		}
		pageToken = resp.NextPageToken
	}
}

// ListKeys returns the keys and versions under prefix without transferring
// values. Same prefix semantics as List.
func (c *Client) ListKeys(ctx context.Context, prefix string) ([]*KeyVersion, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	var keys []*KeyVersion
	pageToken := ""
	for {
		req := &proto.ListKeyVersionsRequest{
			StoreID:   c.storeID,
			KeyPrefix: c.serverPrefix(prefix),
			PageToken: pageToken,
		}

		var resp *proto.ListKeyVersionsResponse
		err := c.withToken(ctx, func(token string) error {
			var callErr error
			resp, callErr = c.transport.ListKeyVersions(ctx, req, token)
			return callErr
		})
		if err != nil {
			return nil, mapServerError(err)
		}

		for _, kv := range resp.KeyVersions {
			key, err := c.originalKey(kv.Key)
			if err != nil {
				c.logger.Warn(ctx, "skipping undecodable key in listing", "error", err)
				continue
			}
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			keys = append(keys, &KeyVersion{Key: key, Version: kv.Version})
		}

		if resp.NextPageToken == "" {
			return keys, nil
		}
		pageToken = resp.NextPageToken
	}
}

// PutWithKeyPrefix writes items as one atomic transaction: either every item
// is stored with a server-assigned version, or none are and a single error
// is returned. Returned items are in input order.
func (c *Client) PutWithKeyPrefix(ctx context.Context, items []KeyValue) ([]*Item, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	if len(items) == 0 {
		return nil, nil
	}
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	txItems := make([]*proto.KeyValue, 0, len(items))
	for _, it := range items {
		if it.Key == "" {
			return nil, fmt.Errorf("%w: empty key in batch", ErrInvalidInput)
		}
		txItems = append(txItems, &proto.KeyValue{
			Key:     c.storageKey(it.Key),
			Version: noVersion,
			Value:   c.sealValue(it.Value, noVersion),
		})
	}

	req := &proto.PutObjectRequest{StoreID: c.storeID, TransactionItems: txItems}

	var resp *proto.PutObjectResponse
	err := c.withToken(ctx, func(token string) error {
		var callErr error
		resp, callErr = c.transport.PutObjects(ctx, req, token)
		return callErr
	})
	if err != nil {
		return nil, mapServerError(err)
	}

	out := make([]*Item, len(items))
	for i, it := range items {
		out[i] = &Item{Key: it.Key, Value: it.Value, Version: noVersion}
		if i < len(resp.Items) {
			out[i].Version = resp.Items[i].Version
		}
	}
	return out, nil
}

// Delete removes key and reports whether a prior item existed. Deleting an
// absent key returns false without error.
func (c *Client) Delete(ctx context.Context, key string) (bool, error) {
	if c.closed.Load() {
		return false, ErrClientClosed
	}
	if key == "" {
		return false, fmt.Errorf("%w: empty key", ErrInvalidInput)
	}
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	req := &proto.DeleteObjectRequest{
		StoreID:  c.storeID,
		KeyValue: &proto.KeyValue{Key: c.storageKey(key), Version: noVersion},
	}

	err := c.withToken(ctx, func(token string) error {
		_, callErr := c.transport.DeleteObject(ctx, req, token)
		return callErr
	})
	if err != nil {
		if err = mapServerError(err); errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeriveStoreID derives the deterministic store identifier for a mnemonic
// without constructing a client: prefix plus a 32-hex-character digest of
// the identity's public key.
func DeriveStoreID(prefix, mnemonic, passphrase string) (string, error) {
	return keyx.DeriveStoreID(prefix, mnemonic, passphrase)
}

// withToken runs call with the current bearer token. When the server rejects
// the credential, the token is invalidated and renewed exactly once and the
// call replayed; a second rejection is returned to the caller. In
// unauthenticated mode call runs once with an empty token.
func (c *Client) withToken(ctx context.Context, call func(token string) error) error {
	if c.auth == nil {
		return call("")
	}

	token, err := c.auth.Token(ctx)
	if err != nil {
		return err
	}

	err = call(token)
	if err == nil || !isAuthFailure(err) {
		return err
	}

	c.logger.Debug(ctx, "bearer token rejected, renewing")
	c.auth.Invalidate(token)
	fresh, err := c.auth.Token(ctx)
	if err != nil {
		return err
	}
	return call(fresh)
}

// opContext applies the configured per-operation timeout.
func (c *Client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// storageKey maps a caller key to its on-server form.
func (c *Client) storageKey(key string) string {
	if c.obfuscator == nil {
		return key
	}
	return c.obfuscator.Obfuscate(key)
}

// originalKey recovers a caller key from its on-server form.
func (c *Client) originalKey(storageKey string) (string, error) {
	if c.obfuscator == nil {
		return storageKey, nil
	}
	return c.obfuscator.Deobfuscate(storageKey)
}

// serverPrefix is the prefix filter sent to the server. Authenticated mode
// filters client-side instead, since obfuscation destroys prefix structure.
func (c *Client) serverPrefix(prefix string) string {
	if c.obfuscator != nil {
		return ""
	}
	return prefix
}

// sealValue runs a value through the encryption envelope in authenticated
// mode and passes it through unchanged otherwise.
func (c *Client) sealValue(value []byte, version int64) []byte {
	if c.storable == nil {
		return value
	}
	return c.storable.Build(value, version)
}

// openValue reverses sealValue.
func (c *Client) openValue(value []byte) ([]byte, error) {
	if c.storable == nil {
		return value, nil
	}
	plain, _, err := c.storable.Deconstruct(value)
	return plain, err
}

// decodeObject recovers one listed object. ok is false for entries that do
// not belong to the caller: foreign key names, prefix misses after
// deobfuscation, or values sealed under a different key.
func (c *Client) decodeObject(ctx context.Context, obj *proto.KeyValue, prefix string) (*Item, bool) {
	key, err := c.originalKey(obj.Key)
	if err != nil {
		c.logger.Warn(ctx, "skipping undecodable key in listing", "error", err)
		return nil, false
	}
	if !strings.HasPrefix(key, prefix) {
		return nil, false
	}

	value, err := c.openValue(obj.Value)
	if err != nil {
		c.logger.Warn(ctx, "skipping undecryptable value in listing", "key", key, "error", err)
		return nil, false
	}
	return &Item{Key: key, Value: value, Version: obj.Version}, true
}
