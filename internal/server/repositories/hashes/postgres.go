// Package hashes provides PostgreSQL-backed persistence for password-hash
// records.
package hashes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/dbx"
	"github.com/dmitrijs2005/hashaudit/internal/server/models"
)

// PostgresRepository implements hash-record storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new record in the Sealed state and returns the assigned
// id. Ids come from a sequence, so they are strictly increasing and never
// reused.
func (r *PostgresRepository) Create(ctx context.Context, rec *models.HashRecord) (int64, error) {
	query := `
		INSERT INTO password_hashes (owner, encrypted_hash, reveal_state)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		rec.Owner, string(rec.EncryptedHash), string(models.RevealStateSealed)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// Get returns the full record or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.HashRecord, error) {
	query := `
		SELECT id, owner, encrypted_hash, reveal_state, revealed_hash, submitted_at
		FROM password_hashes
		WHERE id = $1
	`
	rec := &models.HashRecord{}
	var handle, state string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.Owner, &handle, &state, &rec.RevealedHash, &rec.SubmittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	rec.EncryptedHash = models.EncryptedValueHandle(handle)
	rec.State = models.RevealState(state)
	return rec, nil
}

// GetState returns only the reveal state, or common.ErrorNotFound.
func (r *PostgresRepository) GetState(ctx context.Context, id int64) (models.RevealState, error) {
	query := `SELECT reveal_state FROM password_hashes WHERE id = $1`

	var state string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return models.RevealState(state), nil
}

// Exists reports whether a record with the given id exists.
func (r *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM password_hashes WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// UpdateState performs a compare-and-set on the reveal state. It returns
// false when no row was in the expected state, which the caller translates
// into the appropriate lifecycle error.
func (r *PostgresRepository) UpdateState(ctx context.Context, id int64, from, to models.RevealState) (bool, error) {
	query := `
		UPDATE password_hashes SET reveal_state = $1
		WHERE id = $2 AND reveal_state = $3
	`
	res, err := r.db.ExecContext(ctx, query, string(to), id, string(from))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

// Reveal stores the plaintext and flips the state to Revealed in a single
// conditional statement, so a duplicate callback can never apply twice.
func (r *PostgresRepository) Reveal(ctx context.Context, id int64, plaintext string) (bool, error) {
	query := `
		UPDATE password_hashes SET reveal_state = $1, revealed_hash = $2
		WHERE id = $3 AND reveal_state = $4
	`
	res, err := r.db.ExecContext(ctx, query,
		string(models.RevealStateRevealed), plaintext, id, string(models.RevealStateRequested))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}
