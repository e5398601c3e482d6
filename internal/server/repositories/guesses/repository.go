package guesses

import (
	"context"

	"github.com/dmitrijs2005/hashaudit/internal/server/models"
)

// Repository persists guess records. Apply is conditional on the record still
// being Pending; it reports false when the guess already reached a terminal
// state.
type Repository interface {
	Create(ctx context.Context, rec *models.GuessRecord) (int64, error)
	Get(ctx context.Context, id int64) (*models.GuessRecord, error)
	GetState(ctx context.Context, id int64) (models.VerificationState, error)
	Apply(ctx context.Context, id int64, to models.VerificationState) (bool, error)
	ListByTarget(ctx context.Context, targetHashID int64, owner string) ([]*models.GuessRecord, error)
}
