// Package guesses provides PostgreSQL-backed persistence for guess records.
package guesses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/dbx"
	"github.com/dmitrijs2005/hashaudit/internal/server/models"
)

// PostgresRepository implements guess-record storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new guess in the Pending state and returns the assigned id.
func (r *PostgresRepository) Create(ctx context.Context, rec *models.GuessRecord) (int64, error) {
	query := `
		INSERT INTO guesses (target_hash_id, owner, encrypted_guess, verification_state)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		rec.TargetHashID, rec.Owner, string(rec.EncryptedGuess), string(models.VerificationStatePending)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// Get returns the full record or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.GuessRecord, error) {
	query := `
		SELECT id, target_hash_id, owner, encrypted_guess, verification_state, submitted_at
		FROM guesses
		WHERE id = $1
	`
	rec := &models.GuessRecord{}
	var handle, state string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.TargetHashID, &rec.Owner, &handle, &state, &rec.SubmittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	rec.EncryptedGuess = models.EncryptedValueHandle(handle)
	rec.State = models.VerificationState(state)
	return rec, nil
}

// GetState returns only the verification state, or common.ErrorNotFound.
func (r *PostgresRepository) GetState(ctx context.Context, id int64) (models.VerificationState, error) {
	query := `SELECT verification_state FROM guesses WHERE id = $1`

	var state string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return models.VerificationState(state), nil
}

// Apply performs the single Pending → terminal transition. It returns false
// when the guess was not Pending anymore, so a duplicate verification result
// can never apply twice.
func (r *PostgresRepository) Apply(ctx context.Context, id int64, to models.VerificationState) (bool, error) {
	query := `
		UPDATE guesses SET verification_state = $1
		WHERE id = $2 AND verification_state = $3
	`
	res, err := r.db.ExecContext(ctx, query,
		string(to), id, string(models.VerificationStatePending))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

// ListByTarget returns the guesses one owner has submitted against a target
// hash record, newest first.
func (r *PostgresRepository) ListByTarget(ctx context.Context, targetHashID int64, owner string) ([]*models.GuessRecord, error) {
	query := `
		SELECT id, target_hash_id, owner, encrypted_guess, verification_state, submitted_at
		FROM guesses
		WHERE target_hash_id = $1 AND owner = $2
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, targetHashID, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select guesses: %w", err)
	}
	defer rows.Close()

	var result []*models.GuessRecord
	for rows.Next() {
		var item models.GuessRecord
		var handle, state string
		if err := rows.Scan(
			&item.ID, &item.TargetHashID, &item.Owner, &handle, &state, &item.SubmittedAt,
		); err != nil {
			return nil, err
		}
		item.EncryptedGuess = models.EncryptedValueHandle(handle)
		item.State = models.VerificationState(state)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
