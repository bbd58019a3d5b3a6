package config

import "time"

// Config holds runtime settings for the VSS CLI.
//
// Fields:
//   - ServerURL: base URL of the VSS HTTP endpoint.
//   - LnurlAuthServerURL: URL of the LNURL-auth challenge endpoint. Empty
//     disables authenticated mode.
//   - StoreID: explicit store id. Empty means "derive from the mnemonic".
//   - StoreIDPrefix: prefix prepended during store id derivation.
//   - Mnemonic / Passphrase: BIP39 inputs for authenticated mode. Usually
//     left empty here and collected interactively.
//   - Timeout: per-operation deadline applied by the client.
type Config struct {
	ServerURL          string
	LnurlAuthServerURL string
	StoreID            string
	StoreIDPrefix      string
	Mnemonic           string
	Passphrase         string
	Timeout            time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.StoreIDPrefix = "vssv1"
	c.Timeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
