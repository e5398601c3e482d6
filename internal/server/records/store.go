// Package records implements the record store: it owns the lifecycle of
// password-hash and guess records and enforces their state machines.
//
// Hash records move Sealed → DecryptionRequested → Revealed and never
// backward; guesses move Pending → {Correct | Incorrect}. Every transition is
// a compare-and-set in the repository, so applying a result twice is
// impossible regardless of how the callbacks interleave.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/dbx"
	"github.com/dmitrijs2005/hashaudit/internal/server/models"
	"github.com/dmitrijs2005/hashaudit/internal/server/repositories/repomanager"
)

type Store struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewStore constructs a record store over the given database handle and
// repository manager.
func NewStore(db *sql.DB, m repomanager.RepositoryManager) *Store {
	return &Store{db: db, repomanager: m}
}

// CreateHashRecord stores a new encrypted hash in the Sealed state and
// returns its id. Ids are strictly increasing and never reused.
func (s *Store) CreateHashRecord(ctx context.Context, owner string, encryptedHash models.EncryptedValueHandle) (int64, error) {
	repo := s.repomanager.Hashes(s.db)

	id, err := repo.Create(ctx, &models.HashRecord{Owner: owner, EncryptedHash: encryptedHash})
	if err != nil {
		return 0, fmt.Errorf("error creating hash record: %w", err)
	}
	return id, nil
}

// CreateGuessRecord stores a new guess in the Pending state. It fails with
// common.ErrorUnknownTarget when the target hash record does not exist; the
// existence check and the insert run in one transaction so no guess can ever
// reference a missing target.
func (s *Store) CreateGuessRecord(ctx context.Context, targetHashID int64, owner string, encryptedGuess models.EncryptedValueHandle) (int64, error) {
	var id int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		hashRepo := s.repomanager.Hashes(tx)
		guessRepo := s.repomanager.Guesses(tx)

		exists, err := hashRepo.Exists(ctx, targetHashID)
		if err != nil {
			return err
		}
		if !exists {
			return common.ErrorUnknownTarget
		}

		id, err = guessRepo.Create(ctx, &models.GuessRecord{
			TargetHashID:   targetHashID,
			Owner:          owner,
			EncryptedGuess: encryptedGuess,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorUnknownTarget) {
			return 0, err
		}
		return 0, fmt.Errorf("error creating guess record: %w", err)
	}

	return id, nil
}

// MarkDecryptionRequested moves a hash record from Sealed to
// DecryptionRequested. At most one decryption request may be outstanding per
// record: a record already in DecryptionRequested yields
// ErrorRequestAlreadyOutstanding, a revealed one ErrorAlreadyRevealed.
func (s *Store) MarkDecryptionRequested(ctx context.Context, hashID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Hashes(tx)

		ok, err := repo.UpdateState(ctx, hashID, models.RevealStateSealed, models.RevealStateRequested)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		state, err := repo.GetState(ctx, hashID)
		if err != nil {
			return err
		}
		switch state {
		case models.RevealStateRequested:
			return common.ErrorRequestAlreadyOutstanding
		case models.RevealStateRevealed:
			return common.ErrorAlreadyRevealed
		default:
			return common.ErrorInternal
		}
	})
}

// RollbackDecryptionRequested undoes MarkDecryptionRequested when the oracle
// submission that should follow it failed, so the record is never left in
// DecryptionRequested without a matching ledger entry.
func (s *Store) RollbackDecryptionRequested(ctx context.Context, hashID int64) error {
	repo := s.repomanager.Hashes(s.db)

	ok, err := repo.UpdateState(ctx, hashID, models.RevealStateRequested, models.RevealStateSealed)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorInternal
	}
	return nil
}

// ApplyRevealedHash performs the one-time DecryptionRequested → Revealed
// transition and stores the plaintext. Any record not in DecryptionRequested
// (including one already revealed by an earlier callback) yields
// ErrorAlreadyRevealed.
func (s *Store) ApplyRevealedHash(ctx context.Context, hashID int64, plaintext string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Hashes(tx)

		ok, err := repo.Reveal(ctx, hashID, plaintext)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		if _, err := repo.GetState(ctx, hashID); err != nil {
			return err
		}
		return common.ErrorAlreadyRevealed
	})
}

// ApplyGuessResult performs the one-time Pending → {Correct | Incorrect}
// transition. A guess that already reached a terminal state yields
// ErrorAlreadyVerified.
func (s *Store) ApplyGuessResult(ctx context.Context, guessID int64, isMatch bool) error {
	to := models.VerificationStateIncorrect
	if isMatch {
		to = models.VerificationStateCorrect
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Guesses(tx)

		ok, err := repo.Apply(ctx, guessID, to)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		if _, err := repo.GetState(ctx, guessID); err != nil {
			return err
		}
		return common.ErrorAlreadyVerified
	})
}

// GetHash returns a hash record. Pure read, no side effects.
func (s *Store) GetHash(ctx context.Context, id int64) (*models.HashRecord, error) {
	return s.repomanager.Hashes(s.db).Get(ctx, id)
}

// GetGuess returns a guess record. Pure read, no side effects.
func (s *Store) GetGuess(ctx context.Context, id int64) (*models.GuessRecord, error) {
	return s.repomanager.Guesses(s.db).Get(ctx, id)
}

// ListGuesses returns the guesses an owner submitted against a target hash.
func (s *Store) ListGuesses(ctx context.Context, targetHashID int64, owner string) ([]*models.GuessRecord, error) {
	return s.repomanager.Guesses(s.db).ListByTarget(ctx, targetHashID, owner)
}
