// Package common defines shared constants and sentinel errors used across
// client and server layers of HashAudit. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Record lifecycle errors. A terminal transition can never be applied
	// again; these guards are what makes callback application exactly-once.
	ErrorUnknownTarget             = errors.New("unknown target hash record")
	ErrorAlreadyRevealed           = errors.New("hash already revealed")
	ErrorAlreadyVerified           = errors.New("guess already verified")
	ErrorRequestAlreadyOutstanding = errors.New("decryption request already outstanding")

	// Pending-request ledger errors. Both indicate a protocol-level bug
	// (engine reusing ids, or a callback for a request that was never
	// registered) and must be logged, never silently ignored.
	ErrorDuplicateRequestID = errors.New("duplicate request id")
	ErrorUnknownRequest     = errors.New("unknown request id")

	// Callback validation errors. Neither may mutate records or consume the
	// ledger entry: a corrupted callback is rejected while the legitimate
	// pending request stays intact.
	ErrorInvalidProof     = errors.New("invalid decryption proof")
	ErrorMalformedPayload = errors.New("malformed cleartext payload")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

var sentinels = []error{
	ErrorNotFound,
	ErrorInternal,
	ErrorUnauthorized,
	ErrorUnknownTarget,
	ErrorAlreadyRevealed,
	ErrorAlreadyVerified,
	ErrorRequestAlreadyOutstanding,
	ErrorDuplicateRequestID,
	ErrorUnknownRequest,
	ErrorInvalidProof,
	ErrorMalformedPayload,
	ErrInvalidToken,
	ErrTokenExpired,
}

// FromMessage maps a sentinel's message back to the sentinel value. API
// responses carry errors as strings; the client uses this so errors.Is keeps
// working across the wire. Unknown messages come back as plain errors.
func FromMessage(msg string) error {
	for _, s := range sentinels {
		if s.Error() == msg {
			return s
		}
	}
	return errors.New(msg)
}
