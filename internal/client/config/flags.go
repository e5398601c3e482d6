package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/hashaudit/internal/flagx"
)

// parseFlags populates selected CLI Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   NATS server URL
//	-r int      request timeout, seconds
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-w string   sealing key passphrase
//	-l string   sealing key salt
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r", "-s", "-t", "-w", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.NATSURL, "a", config.NATSURL, "NATS server URL")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.Passphrase, "w", config.Passphrase, "sealing key passphrase")
	fs.StringVar(&config.KeySalt, "l", config.KeySalt, "sealing key salt")

	requestTimeout := fs.Int("r", int(config.RequestTimeout.Seconds()), "request_timeout (in seconds)")
	tokenValidity := fs.Int("t", int(config.TokenValidity.Minutes()), "token_validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	config.TokenValidity = time.Duration(*tokenValidity) * time.Minute
}
