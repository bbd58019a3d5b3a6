package cli

import (
	"bufio"
	"context"
	"errors"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/vssclient/internal/config"
	"github.com/dmitrijs2005/vssclient/internal/logging"
	"github.com/dmitrijs2005/vssclient/internal/shared"
	"github.com/dmitrijs2005/vssclient/pkg/vss"
)

// Mode reflects how the app talks to the store.
type Mode string

const (
	// ModePlaintext sends keys and values as-is under an explicit store id.
	ModePlaintext Mode = "plaintext"
	// ModeAuthenticated encrypts values, obfuscates keys, and attaches a
	// bearer token obtained via LNURL-auth.
	ModeAuthenticated Mode = "authenticated"
)

// storeClient is the slice of the vss.Client surface the CLI drives.
// Tests substitute a fake.
type storeClient interface {
	StoreID() string
	Store(ctx context.Context, key string, value []byte) (*vss.Item, error)
	Get(ctx context.Context, key string) (*vss.Item, error)
	List(ctx context.Context, prefix string) ([]*vss.Item, error)
	ListKeys(ctx context.Context, prefix string) ([]*vss.KeyVersion, error)
	PutWithKeyPrefix(ctx context.Context, items []vss.KeyValue) ([]*vss.Item, error)
	Delete(ctx context.Context, key string) (bool, error)
	Close() error
}

type App struct {
	config *config.Config
	client storeClient
	Mode   Mode
	reader *bufio.Reader
	logger logging.Logger
}

func NewApp(c *config.Config) (*App, error) {
	if c == nil {
		return nil, errors.New("nil config")
	}
	return &App{
		config: c,
		reader: bufio.NewReader(os.Stdin),
		logger: logging.NewTextLogger(os.Stderr, slog.LevelWarn),
	}, nil
}

func (a *App) isConnected() bool {
	return a.client != nil
}

// Connect builds the store client according to the configuration. In
// authenticated mode a missing mnemonic is collected interactively and a
// missing store id is derived from it.
func (a *App) Connect(ctx context.Context) error {
	cfg := a.config
	opts := []vss.Option{vss.WithTimeout(cfg.Timeout), vss.WithLogger(a.logger)}

	if cfg.LnurlAuthServerURL == "" {
		if cfg.StoreID == "" {
			entered, err := getSimpleText(a.reader, "Enter store id", os.Stdout)
			if err != nil {
				return err
			}
			if entered == "" {
				return errors.New("plaintext mode requires a store id (-store or VSS_STORE_ID)")
			}
			cfg.StoreID = entered
		}
		c, err := vss.New(cfg.ServerURL, cfg.StoreID, opts...)
		if err != nil {
			return err
		}
		a.client = c
		a.Mode = ModePlaintext
		return nil
	}

	mnemonic := cfg.Mnemonic
	if mnemonic == "" {
		b, err := getSecret("Enter mnemonic", os.Stdout)
		if err != nil {
			return err
		}
		mnemonic = string(b)
		shared.WipeByteArray(b)
	}

	storeID := cfg.StoreID
	if storeID == "" {
		derived, err := vss.DeriveStoreID(cfg.StoreIDPrefix, mnemonic, cfg.Passphrase)
		if err != nil {
			return err
		}
		storeID = derived
	}

	c, err := vss.NewWithLnurlAuth(cfg.ServerURL, storeID, mnemonic, cfg.Passphrase, cfg.LnurlAuthServerURL, opts...)
	if err != nil {
		return err
	}
	a.client = c
	a.Mode = ModeAuthenticated
	return nil
}

func (a *App) Run(ctx context.Context) {
	defer a.closeClient()
	a.Root(ctx)
}

func (a *App) closeClient() {
	if a.client == nil {
		return
	}
	if err := a.client.Close(); err != nil {
		log.Printf("error closing client: %s", err.Error())
	}
}
