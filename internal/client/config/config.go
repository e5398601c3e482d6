// Package config handles configuration for the audit CLI,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the audit CLI.
//
// Fields:
//   - NATSURL: URL of the NATS server carrying the audit API subjects.
//   - RequestTimeout: per-request deadline for API calls.
//   - SecretKey: HMAC secret the dev setup signs access tokens with.
//   - TokenValidity: lifetime of a generated access token.
//   - Passphrase / KeySalt: inputs of the sealing key derivation. These must
//     match the engine's parameters or submitted blobs can never be opened.
type Config struct {
	NATSURL        string
	RequestTimeout time.Duration
	SecretKey      string
	TokenValidity  time.Duration
	Passphrase     string
	KeySalt        string
}

// LoadDefaults populates c with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.NATSURL = "nats://127.0.0.1:4222"
	c.RequestTimeout = 10 * time.Second
	c.SecretKey = "secretKey"
	c.TokenValidity = 15 * time.Minute
	c.Passphrase = "dev-passphrase"
	c.KeySalt = "dev-salt"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
