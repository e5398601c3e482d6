package protocol

import (
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Response is the envelope every API reply is wrapped in. On failure Error
// carries one of the sentinel error strings and Body is empty.
type Response struct {
	Error string          `cbor:"error,omitempty"`
	Body  cbor.RawMessage `cbor:"body,omitempty"`
}

// OK wraps a successful result into a Response.
func OK(body any) (*Response, error) {
	raw, err := cbor.Marshal(body)
	if err != nil {
		return nil, err
	}
	return &Response{Body: raw}, nil
}

// Fail wraps an error into a Response.
func Fail(err error) *Response {
	return &Response{Error: err.Error()}
}

// SubmitHashRequest registers a new encrypted password hash. Ciphertext is
// the sealed blob produced by the engine's encryption parameters; the server
// stores it in the blob store and keeps only the opaque handle.
type SubmitHashRequest struct {
	Ciphertext []byte `cbor:"ciphertext"`
}

type SubmitHashResponse struct {
	ID int64 `cbor:"id"`
}

// SubmitGuessRequest registers an encrypted guess against a target hash.
type SubmitGuessRequest struct {
	TargetHashID int64  `cbor:"target_hash_id"`
	Ciphertext   []byte `cbor:"ciphertext"`
}

type SubmitGuessResponse struct {
	ID int64 `cbor:"id"`
}

// RevealRequest asks for the one-time decryption of a hash record. Only the
// original submitter is authorized.
type RevealRequest struct {
	HashID int64 `cbor:"hash_id"`
}

// VerifyRequest asks for the encrypted equality check of a guess against its
// target. Only the guess owner is authorized.
type VerifyRequest struct {
	GuessID int64 `cbor:"guess_id"`
}

type GetHashRequest struct {
	ID int64 `cbor:"id"`
}

type GetHashResponse struct {
	ID          int64     `cbor:"id"`
	State       string    `cbor:"state"`
	Revealed    bool      `cbor:"revealed"`
	Hash        string    `cbor:"hash,omitempty"`
	SubmittedAt time.Time `cbor:"submitted_at"`
}

type GetGuessRequest struct {
	ID int64 `cbor:"id"`
}

type GetGuessResponse struct {
	ID           int64     `cbor:"id"`
	TargetHashID int64     `cbor:"target_hash_id"`
	State        string    `cbor:"state"`
	SubmittedAt  time.Time `cbor:"submitted_at"`
}

type ListGuessesRequest struct {
	TargetHashID int64 `cbor:"target_hash_id"`
}

type ListGuessesResponse struct {
	Guesses []GetGuessResponse `cbor:"guesses"`
}
