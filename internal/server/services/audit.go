// Package services contains the server-side business logic. This file
// implements AuditService, the orchestration layer of the encrypted-record
// lifecycle: it composes the record store, the pending-request ledger and the
// decryption-oracle client into the public audit operations.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/logging"
	"github.com/dmitrijs2005/hashaudit/internal/protocol"
	"github.com/dmitrijs2005/hashaudit/internal/server/ledger"
	"github.com/dmitrijs2005/hashaudit/internal/server/models"
	"github.com/dmitrijs2005/hashaudit/internal/server/oracle"
)

// RecordStore is the slice of the record store the audit service needs.
// Implemented by records.Store.
type RecordStore interface {
	CreateHashRecord(ctx context.Context, owner string, encryptedHash models.EncryptedValueHandle) (int64, error)
	CreateGuessRecord(ctx context.Context, targetHashID int64, owner string, encryptedGuess models.EncryptedValueHandle) (int64, error)
	MarkDecryptionRequested(ctx context.Context, hashID int64) error
	RollbackDecryptionRequested(ctx context.Context, hashID int64) error
	ApplyRevealedHash(ctx context.Context, hashID int64, plaintext string) error
	ApplyGuessResult(ctx context.Context, guessID int64, isMatch bool) error
	GetHash(ctx context.Context, id int64) (*models.HashRecord, error)
	GetGuess(ctx context.Context, id int64) (*models.GuessRecord, error)
	ListGuesses(ctx context.Context, targetHashID int64, owner string) ([]*models.GuessRecord, error)
}

// OracleClient is the slice of the decryption-oracle client the audit
// service needs. Implemented by oracle.Client.
type OracleClient interface {
	RequestDecryption(ctx context.Context, op protocol.Operation, handles []models.EncryptedValueHandle) (string, error)
	OnCallback(ctx context.Context, cb *protocol.DecryptionCallback) (*oracle.Result, error)
}

type AuditService struct {
	store  RecordStore
	ledger ledger.Ledger
	oracle OracleClient
	events Sink
	logger logging.Logger
}

// NewAuditService wires the audit orchestration. The ledger must be the same
// instance the oracle client resolves callbacks against.
func NewAuditService(store RecordStore, l ledger.Ledger, oc OracleClient, events Sink, logger logging.Logger) *AuditService {
	return &AuditService{
		store:  store,
		ledger: l,
		oracle: oc,
		events: events,
		logger: logger.With("module", "audit_service"),
	}
}

// SubmitHash registers a new encrypted password hash for the given owner.
func (s *AuditService) SubmitHash(ctx context.Context, owner string, encryptedHash models.EncryptedValueHandle) (int64, error) {
	if owner == "" {
		return 0, common.ErrorUnauthorized
	}

	id, err := s.store.CreateHashRecord(ctx, owner, encryptedHash)
	if err != nil {
		return 0, err
	}

	s.events.Publish(ctx, Event{Name: EventHashSubmitted, HashID: id})
	return id, nil
}

// SubmitGuess registers an encrypted guess against an existing hash record.
// It propagates ErrorUnknownTarget when the target does not exist; in that
// case no guess record is created.
func (s *AuditService) SubmitGuess(ctx context.Context, targetHashID int64, owner string, encryptedGuess models.EncryptedValueHandle) (int64, error) {
	if owner == "" {
		return 0, common.ErrorUnauthorized
	}

	id, err := s.store.CreateGuessRecord(ctx, targetHashID, owner, encryptedGuess)
	if err != nil {
		return 0, err
	}

	s.events.Publish(ctx, Event{Name: EventGuessSubmitted, GuessID: id, HashID: targetHashID})
	return id, nil
}

// RequestHashReveal asks the oracle for the one-time decryption of a hash
// record. Only the original submitter may request it.
//
// The local Sealed → DecryptionRequested transition happens first, then the
// oracle submission, then the ledger registration. A failure after the
// transition rolls the record back to Sealed, so a record is never left in
// DecryptionRequested without a matching ledger entry.
func (s *AuditService) RequestHashReveal(ctx context.Context, hashID int64, requester string) error {
	rec, err := s.store.GetHash(ctx, hashID)
	if err != nil {
		return err
	}
	if rec.Owner != requester {
		return common.ErrorUnauthorized
	}

	if err := s.store.MarkDecryptionRequested(ctx, hashID); err != nil {
		return err
	}

	requestID, err := s.oracle.RequestDecryption(ctx, protocol.OpDecrypt,
		[]models.EncryptedValueHandle{rec.EncryptedHash})
	if err != nil {
		return s.rollbackReveal(ctx, hashID, err)
	}

	if err := s.ledger.Register(ctx, &models.PendingRequest{
		RequestID:      requestID,
		TargetRecordID: hashID,
		Kind:           models.RecordKindHash,
	}); err != nil {
		// Duplicate ids are an engine protocol bug; undo the local transition
		// so the record is not stranded.
		s.logger.Error(ctx, "failed to register decryption request", "request_id", requestID, "error", err.Error())
		return s.rollbackReveal(ctx, hashID, err)
	}

	s.events.Publish(ctx, Event{Name: EventDecryptionRequested, HashID: hashID})
	return nil
}

func (s *AuditService) rollbackReveal(ctx context.Context, hashID int64, cause error) error {
	if rbErr := s.store.RollbackDecryptionRequested(ctx, hashID); rbErr != nil {
		s.logger.Error(ctx, "failed to roll back decryption request", "hash_id", hashID, "error", rbErr.Error())
		return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, cause)
	}
	return cause
}

// RequestGuessVerification asks the oracle to evaluate the encrypted
// equality of a guess and its target hash and to decrypt only the boolean
// outcome. Only the guess owner may request it.
func (s *AuditService) RequestGuessVerification(ctx context.Context, guessID int64, requester string) error {
	guess, err := s.store.GetGuess(ctx, guessID)
	if err != nil {
		return err
	}
	if guess.Owner != requester {
		return common.ErrorUnauthorized
	}
	if guess.Verified() {
		return common.ErrorAlreadyVerified
	}

	target, err := s.store.GetHash(ctx, guess.TargetHashID)
	if err != nil {
		return err
	}

	requestID, err := s.oracle.RequestDecryption(ctx, protocol.OpEquality,
		[]models.EncryptedValueHandle{guess.EncryptedGuess, target.EncryptedHash})
	if err != nil {
		return err
	}

	if err := s.ledger.Register(ctx, &models.PendingRequest{
		RequestID:      requestID,
		TargetRecordID: guessID,
		Kind:           models.RecordKindGuess,
	}); err != nil {
		s.logger.Error(ctx, "failed to register verification request", "request_id", requestID, "error", err.Error())
		return err
	}

	return nil
}

// HandleOracleCallback processes an inbound oracle callback: the client
// proves and decodes it, then the result is applied to the target record
// exactly once and the terminal event is emitted.
//
// An already-resolved record here is a hard error (duplicate callback), not
// a silent skip.
func (s *AuditService) HandleOracleCallback(ctx context.Context, cb *protocol.DecryptionCallback) error {
	res, err := s.oracle.OnCallback(ctx, cb)
	if err != nil {
		return err
	}

	switch res.Kind {
	case models.RecordKindHash:
		if err := s.store.ApplyRevealedHash(ctx, res.TargetRecordID, res.RevealedHash); err != nil {
			return err
		}
		s.events.Publish(ctx, Event{Name: EventHashRevealed, HashID: res.TargetRecordID})
	case models.RecordKindGuess:
		if err := s.store.ApplyGuessResult(ctx, res.TargetRecordID, res.IsMatch); err != nil {
			return err
		}
		s.events.Publish(ctx, Event{Name: EventGuessVerified, GuessID: res.TargetRecordID, IsMatch: res.IsMatch})
	default:
		return common.ErrorInternal
	}

	return nil
}

// GetHash returns a hash record, readable by anyone. The plaintext field is
// populated only after a successful reveal.
func (s *AuditService) GetHash(ctx context.Context, id int64) (*models.HashRecord, error) {
	return s.store.GetHash(ctx, id)
}

// GetGuess returns a guess record, readable by anyone.
func (s *AuditService) GetGuess(ctx context.Context, id int64) (*models.GuessRecord, error) {
	return s.store.GetGuess(ctx, id)
}

// ListGuesses returns the requester's guesses against a target hash.
func (s *AuditService) ListGuesses(ctx context.Context, targetHashID int64, requester string) ([]*models.GuessRecord, error) {
	if requester == "" {
		return nil, common.ErrorUnauthorized
	}
	return s.store.ListGuesses(ctx, targetHashID, requester)
}
