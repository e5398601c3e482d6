// Package engine implements the development decryption oracle. It holds the
// only key that can open submitted blobs: the audit server stores ciphertexts
// and handles but can never decrypt them itself.
//
// The engine accepts a request synchronously, assigns it an id, and later
// publishes a single signed callback with the result.
package engine

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/hashaudit/internal/blobstore"
	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/cryptox"
	"github.com/dmitrijs2005/hashaudit/internal/protocol"
)

type Engine struct {
	blobs    blobstore.Store
	key      []byte
	proofKey []byte
}

// NewEngine constructs an engine with the blob-opening key and the callback
// proof key. The server side must hold the same proof key and must not hold
// the blob key.
func NewEngine(blobs blobstore.Store, key, proofKey []byte) *Engine {
	return &Engine{blobs: blobs, key: key, proofKey: proofKey}
}

// Accept validates a request and assigns it a fresh request id. The actual
// evaluation happens later; the id is what ties the eventual callback to the
// caller's ledger entry.
func (e *Engine) Accept(req *protocol.DecryptionRequest) (string, error) {
	switch req.Op {
	case protocol.OpDecrypt:
		if len(req.Handles) != 1 {
			return "", fmt.Errorf("decrypt takes exactly one handle, got %d", len(req.Handles))
		}
	case protocol.OpEquality:
		if len(req.Handles) != 2 {
			return "", fmt.Errorf("equality takes exactly two handles, got %d", len(req.Handles))
		}
	default:
		return "", fmt.Errorf("unknown operation %q", req.Op)
	}
	return uuid.NewString(), nil
}

// Evaluate performs the requested operation and returns the encoded cleartext
// payload. For OpEquality only the boolean leaves the engine; the decrypted
// operands never do.
func (e *Engine) Evaluate(ctx context.Context, req *protocol.DecryptionRequest) ([]byte, error) {
	switch req.Op {
	case protocol.OpDecrypt:
		plaintext, err := e.open(ctx, req.Handles[0])
		if err != nil {
			return nil, err
		}
		return protocol.EncodeStringPayload(string(plaintext))

	case protocol.OpEquality:
		a, err := e.open(ctx, req.Handles[0])
		if err != nil {
			return nil, err
		}
		b, err := e.open(ctx, req.Handles[1])
		if err != nil {
			return nil, err
		}
		equal := bytes.Equal(a, b)
		common.WipeByteArray(a)
		common.WipeByteArray(b)
		return protocol.EncodeBoolPayload(equal)

	default:
		return nil, fmt.Errorf("unknown operation %q", req.Op)
	}
}

// BuildCallback wraps an evaluated payload into a signed callback message.
func (e *Engine) BuildCallback(requestID string, payload []byte) *protocol.DecryptionCallback {
	return &protocol.DecryptionCallback{
		RequestID:        requestID,
		CleartextPayload: payload,
		Proof:            cryptox.SignProof(e.proofKey, requestID, payload),
	}
}

func (e *Engine) open(ctx context.Context, handle string) ([]byte, error) {
	blob, err := e.blobs.Get(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("error fetching blob %s: %w", handle, err)
	}
	plaintext, err := cryptox.Open(blob, e.key)
	if err != nil {
		return nil, fmt.Errorf("error opening blob %s: %w", handle, err)
	}
	return plaintext, nil
}
