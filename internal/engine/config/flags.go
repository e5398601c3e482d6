package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/hashaudit/internal/flagx"
)

// parseFlags populates selected engine Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   NATS server URL
//	-w string   blob key passphrase
//	-l string   blob key salt
//	-k string   callback proof HMAC key
//	-y int      callback delay, seconds
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-l", "-k", "-y", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.NATSURL, "a", config.NATSURL, "NATS server URL")
	fs.StringVar(&config.Passphrase, "w", config.Passphrase, "blob key passphrase")
	fs.StringVar(&config.KeySalt, "l", config.KeySalt, "blob key salt")
	fs.StringVar(&config.ProofKey, "k", config.ProofKey, "callback proof key")

	callbackDelay := fs.Int("y", int(config.CallbackDelay.Seconds()), "callback_delay (in seconds)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CallbackDelay = time.Duration(*callbackDelay) * time.Second
}
