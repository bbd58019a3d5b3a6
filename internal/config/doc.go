// Package config loads runtime configuration for the VSS CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. A .env file and the process environment (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string       base URL of the VSS HTTP endpoint
//	-auth string    URL of the LNURL-auth challenge endpoint
//	-store string   store id (omit to derive one from the mnemonic)
//	-prefix string  store id prefix used by derivation
//	-t int          per-operation timeout (seconds)
//
// The mnemonic and passphrase are never accepted as flags; supply them via
// the environment, the JSON file, or the interactive prompt in the CLI.
//
// # Environment variables
//
//	VSS_SERVER_URL, VSS_LNURL_AUTH_URL, VSS_STORE_ID, VSS_STORE_ID_PREFIX,
//	VSS_MNEMONIC, VSS_PASSPHRASE, VSS_TIMEOUT
//
// A .env file in the working directory is loaded first; variables already
// present in the process environment win over the file.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "server_url": "https://vss.example.org",
//	  "lnurl_auth_url": "https://auth.example.org/v1/auth",
//	  "store_id_prefix": "vssv1",
//	  "timeout": "30s"
//	}
//
// Primary API
//
//   - type Config                     — holds connection, identity and timing settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, env, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
