package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/hashaudit/internal/flagx"
	"github.com/dmitrijs2005/hashaudit/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// Duration fields accept both strings like "2s" and integer nanoseconds.
type JsonConfig struct {
	NATSURL        string         `json:"nats_url"`
	Passphrase     string         `json:"passphrase"`
	KeySalt        string         `json:"key_salt"`
	ProofKey       string         `json:"proof_key"`
	CallbackDelay  timex.Duration `json:"callback_delay"`
	S3RootUser     string         `json:"s3_root_user"`
	S3RootPassword string         `json:"s3_root_password"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags, if any. Invalid files panic, matching the other
// components' startup behavior.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.NATSURL = c.NATSURL
	config.Passphrase = c.Passphrase
	config.KeySalt = c.KeySalt
	config.ProofKey = c.ProofKey
	config.CallbackDelay = time.Duration(c.CallbackDelay.Duration)
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
