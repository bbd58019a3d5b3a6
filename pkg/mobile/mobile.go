// Package mobile exposes a process-wide singleton over vss.Client for
// foreign-language callers that cannot hold a handle. The core client keeps
// no global state; this adapter is the only place a singleton lives.
//
// Operations run against the most recently initialized client.
// Initialization replaces a prior instance wholesale, closing it and
// discarding its session state.
package mobile

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/vssclient/pkg/vss"
)

// ErrClientNotInitialized reports an operation invoked before NewClient or
// after ShutdownClient.
var ErrClientNotInitialized = errors.New("client not initialized")

var (
	mu     sync.RWMutex
	client *vss.Client
)

// NewClient initializes the global client in unauthenticated mode,
// replacing any prior instance.
func NewClient(baseURL, storeID string) error {
	c, err := vss.New(baseURL, storeID)
	if err != nil {
		return err
	}
	install(c)
	return nil
}

// NewClientWithLnurlAuth initializes the global client in authenticated,
// encrypted mode, replacing any prior instance.
func NewClientWithLnurlAuth(baseURL, storeID, mnemonic, passphrase, lnurlAuthServerURL string) error {
	c, err := vss.NewWithLnurlAuth(baseURL, storeID, mnemonic, passphrase, lnurlAuthServerURL)
	if err != nil {
		return err
	}
	install(c)
	return nil
}

// ShutdownClient clears the global client and wipes its key material. Safe
// to call at any time, including twice in a row.
func ShutdownClient() {
	mu.Lock()
	old := client
	client = nil
	mu.Unlock()
	if old != nil {
		old.Close()
	}
}

// DeriveStoreID derives the deterministic store identifier for a mnemonic.
// It needs no initialized client.
func DeriveStoreID(prefix, mnemonic, passphrase string) (string, error) {
	return vss.DeriveStoreID(prefix, mnemonic, passphrase)
}

// Store writes value under key and returns the stored item.
func Store(key string, value []byte) (*vss.Item, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	return c.Store(context.Background(), key, value)
}

// Get fetches the item stored under key, or nil when absent.
func Get(key string) (*vss.Item, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	return c.Get(context.Background(), key)
}

// List returns every item whose key starts with prefix.
func List(prefix string) ([]*vss.Item, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	return c.List(context.Background(), prefix)
}

// ListKeys returns keys and versions under prefix, without values.
func ListKeys(prefix string) ([]*vss.KeyVersion, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	return c.ListKeys(context.Background(), prefix)
}

// PutWithKeyPrefix writes items as one atomic batch.
func PutWithKeyPrefix(items []vss.KeyValue) ([]*vss.Item, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	return c.PutWithKeyPrefix(context.Background(), items)
}

// Delete removes key, reporting whether a prior item existed.
func Delete(key string) (bool, error) {
	c, err := active()
	if err != nil {
		return false, err
	}
	return c.Delete(context.Background(), key)
}

func install(c *vss.Client) {
	mu.Lock()
	old := client
	client = c
	mu.Unlock()
	if old != nil {
		old.Close()
	}
}

func active() (*vss.Client, error) {
	mu.RLock()
	defer mu.RUnlock()
	if client == nil {
		return nil, ErrClientNotInitialized
	}
	return client, nil
}
