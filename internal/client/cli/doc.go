// Package cli provides the interactive audit command-line client.
//
// It wires configuration, the NATS API client, and an interactive REPL.
// Typical flow: prompt for the submitter name, seal values locally, and
// execute user commands against the audit server.
//
// Key features:
//   - Submit password hashes and guesses (sealed client-side)
//   - Request one-time reveals and guess verifications
//   - Show records and list guesses
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
