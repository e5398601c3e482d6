package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/hashaudit/internal/flagx"
	"github.com/dmitrijs2005/hashaudit/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// Duration fields accept both strings like "10s" and integer nanoseconds.
type JsonConfig struct {
	NATSURL        string         `json:"nats_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	SecretKey      string         `json:"secret_key"`
	TokenValidity  timex.Duration `json:"token_validity"`
	Passphrase     string         `json:"passphrase"`
	KeySalt        string         `json:"key_salt"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags, if any. Invalid files panic.
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
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
	config.SecretKey = c.SecretKey
	config.TokenValidity = time.Duration(c.TokenValidity.Duration)
	config.Passphrase = c.Passphrase
	config.KeySalt = c.KeySalt
}
