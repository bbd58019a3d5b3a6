package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vssclient/internal/flagx"
	"github.com/dmitrijs2005/vssclient/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "30s" or as integer nanoseconds. After parsing, values are
// copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerURL          string         `json:"server_url"`
	LnurlAuthServerURL string         `json:"lnurl_auth_url"`
	StoreID            string         `json:"store_id"`
	StoreIDPrefix      string         `json:"store_id_prefix"`
	Mnemonic           string         `json:"mnemonic"`
	Passphrase         string         `json:"passphrase"`
	Timeout            timex.Duration `json:"timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies fields present in the JSON (non-zero) into the provided Config,
//     leaving earlier values in place for absent fields.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseEnv -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.LnurlAuthServerURL != "" {
		cfg.LnurlAuthServerURL = jc.LnurlAuthServerURL
	}
	if jc.StoreID != "" {
		cfg.StoreID = jc.StoreID
	}
	if jc.StoreIDPrefix != "" {
		cfg.StoreIDPrefix = jc.StoreIDPrefix
	}
	if jc.Mnemonic != "" {
		cfg.Mnemonic = jc.Mnemonic
	}
	if jc.Passphrase != "" {
		cfg.Passphrase = jc.Passphrase
	}
	if jc.Timeout.Duration != 0 {
		cfg.Timeout = jc.Timeout.Duration
	}
}
