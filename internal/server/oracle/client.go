// Package oracle implements the server-side client of the decryption oracle:
// it submits encrypted handles to the external engine and validates the
// asynchronous callbacks that carry the results.
//
// The client only proves and decodes. It never touches the record store;
// applying a validated result to a record is the orchestration layer's job.
package oracle

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/cryptox"
	"github.com/dmitrijs2005/hashaudit/internal/protocol"
	"github.com/dmitrijs2005/hashaudit/internal/server/ledger"
	"github.com/dmitrijs2005/hashaudit/internal/server/models"
)

// Submitter delivers a decryption request to the external engine and returns
// the engine-assigned request id. The NATS-backed implementation lives in the
// transport layer; tests use fakes.
type Submitter interface {
	Submit(ctx context.Context, req *protocol.DecryptionRequest) (string, error)
}

// Result is a validated, decoded callback ready for application.
type Result struct {
	TargetRecordID int64
	Kind           models.RecordKind

	// RevealedHash is set for hash results, IsMatch for guess results.
	RevealedHash string
	IsMatch      bool
}

type Client struct {
	submitter Submitter
	ledger    ledger.Ledger
	proofKey  []byte
}

// NewClient constructs an oracle client. The ledger must be the same
// instance the orchestration layer registers pending requests in.
func NewClient(submitter Submitter, l ledger.Ledger, proofKey []byte) *Client {
	return &Client{submitter: submitter, ledger: l, proofKey: proofKey}
}

// RequestDecryption submits handles to the engine and returns the request id.
// The submission itself is the only side effect; the caller must register the
// id in the ledger before the callback can legally arrive.
func (c *Client) RequestDecryption(ctx context.Context, op protocol.Operation, handles []models.EncryptedValueHandle) (string, error) {
	req := &protocol.DecryptionRequest{Op: op, Handles: make([]string, 0, len(handles))}
	for _, h := range handles {
		req.Handles = append(req.Handles, string(h))
	}

	requestID, err := c.submitter.Submit(ctx, req)
	if err != nil {
		return "", fmt.Errorf("error submitting decryption request: %w", err)
	}
	return requestID, nil
}

// OnCallback validates a callback and consumes its ledger entry.
//
// The order matters: the proof is checked first, then the payload is decoded
// for the kind the ledger recorded, and only after both succeed is the entry
// resolved. An invalid proof or malformed payload therefore leaves the
// pending request intact so a correct retry by the oracle can still land.
func (c *Client) OnCallback(ctx context.Context, cb *protocol.DecryptionCallback) (*Result, error) {
	if !cryptox.VerifyProof(c.proofKey, cb.RequestID, cb.CleartextPayload, cb.Proof) {
		return nil, common.ErrorInvalidProof
	}

	pending, err := c.ledger.Lookup(ctx, cb.RequestID)
	if err != nil {
		return nil, err
	}

	result := &Result{TargetRecordID: pending.TargetRecordID, Kind: pending.Kind}
	switch pending.Kind {
	case models.RecordKindHash:
		plaintext, err := protocol.DecodeStringPayload(cb.CleartextPayload)
		if err != nil {
			return nil, common.ErrorMalformedPayload
		}
		result.RevealedHash = plaintext
	case models.RecordKindGuess:
		isMatch, err := protocol.DecodeBoolPayload(cb.CleartextPayload)
		if err != nil {
			return nil, common.ErrorMalformedPayload
		}
		result.IsMatch = isMatch
	default:
		return nil, common.ErrorMalformedPayload
	}

	// Single consumption point: of two concurrent callbacks for the same id,
	// only the one that wins this resolve gets applied.
	if _, err := c.ledger.Resolve(ctx, cb.RequestID); err != nil {
		return nil, err
	}

	return result, nil
}
