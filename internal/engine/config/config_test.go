package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.NATSURL, "nats://127.0.0.1:4222")
	assert.Equal(t, c.Passphrase, "dev-passphrase")
	assert.Equal(t, c.KeySalt, "dev-salt")
	assert.Equal(t, c.ProofKey, "proofKey")
	assert.Equal(t, c.CallbackDelay, 2*time.Second)
	assert.Equal(t, c.S3Bucket, "audit")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Equal(t, c.NATSURL, "nats://127.0.0.1:4222")
	assert.Equal(t, c.CallbackDelay, 2*time.Second)
}
