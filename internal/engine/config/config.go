// Package config handles configuration for the decryption engine,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the engine daemon.
//
// Fields:
//   - NATSURL: URL of the NATS server carrying the oracle subjects.
//   - Passphrase / KeySalt: inputs of the blob-opening key derivation.
//   - ProofKey: HMAC key for signing callback proofs, shared with the server.
//   - CallbackDelay: artificial latency before a callback is published.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
type Config struct {
	NATSURL        string
	Passphrase     string
	KeySalt        string
	ProofKey       string
	CallbackDelay  time.Duration
	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.NATSURL = "nats://127.0.0.1:4222"
	c.Passphrase = "dev-passphrase"
	c.KeySalt = "dev-salt"
	c.ProofKey = "proofKey"
	c.CallbackDelay = 2 * time.Second
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "audit"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
