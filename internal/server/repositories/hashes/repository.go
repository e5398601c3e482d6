package hashes

import (
	"context"

	"github.com/dmitrijs2005/hashaudit/internal/server/models"
)

// Repository persists password-hash records. State-changing operations are
// conditional: they report false when the record was not in the expected
// state, leaving the row untouched. The caller maps that onto the lifecycle
// error taxonomy.
type Repository interface {
	Create(ctx context.Context, rec *models.HashRecord) (int64, error)
	Get(ctx context.Context, id int64) (*models.HashRecord, error)
	GetState(ctx context.Context, id int64) (models.RevealState, error)
	Exists(ctx context.Context, id int64) (bool, error)

	// UpdateState moves the record from one reveal state to another.
	UpdateState(ctx context.Context, id int64, from, to models.RevealState) (bool, error)

	// Reveal moves a record from DecryptionRequested to Revealed and stores
	// the plaintext hash in the same statement.
	Reveal(ctx context.Context, id int64, plaintext string) (bool, error)
}
