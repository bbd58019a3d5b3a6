package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/vssclient/internal/shared"
	"github.com/dmitrijs2005/vssclient/pkg/vss"
)

// getSecret and getSimpleText are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSecret = GetSecret
var getSimpleText = GetSimpleText

// Derive prompts for a mnemonic and passphrase (both without echo) and
// prints the store id they derive to under the configured prefix. Works
// without a connection.
func (a *App) Derive(ctx context.Context) error {
	mnemonic, err := getSecret("Enter mnemonic", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer shared.WipeByteArray(mnemonic)

	passphrase, err := getSecret("Enter passphrase (Enter for none)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer shared.WipeByteArray(passphrase)

	id, err := vss.DeriveStoreID(a.config.StoreIDPrefix, string(mnemonic), string(passphrase))
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println(id)
	return nil
}
