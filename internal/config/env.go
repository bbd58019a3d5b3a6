package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment.
//
// A .env file in the working directory is loaded first, if present;
// variables already set in the process environment win over the file
// (godotenv.Load never overrides existing variables).
//
// Recognized variables:
//
//	VSS_SERVER_URL, VSS_LNURL_AUTH_URL, VSS_STORE_ID, VSS_STORE_ID_PREFIX,
//	VSS_MNEMONIC, VSS_PASSPHRASE, VSS_TIMEOUT
//
// VSS_TIMEOUT accepts time.ParseDuration syntax ("30s", "1m"). An invalid
// duration panics, matching the JSON layer's strictness.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(".env")

	if v, ok := os.LookupEnv("VSS_SERVER_URL"); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv("VSS_LNURL_AUTH_URL"); ok && v != "" {
		cfg.LnurlAuthServerURL = v
	}
	if v, ok := os.LookupEnv("VSS_STORE_ID"); ok && v != "" {
		cfg.StoreID = v
	}
	if v, ok := os.LookupEnv("VSS_STORE_ID_PREFIX"); ok && v != "" {
		cfg.StoreIDPrefix = v
	}
	if v, ok := os.LookupEnv("VSS_MNEMONIC"); ok && v != "" {
		cfg.Mnemonic = v
	}
	if v, ok := os.LookupEnv("VSS_PASSPHRASE"); ok {
		cfg.Passphrase = v
	}
	if v, ok := os.LookupEnv("VSS_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.Timeout = d
	}
}
