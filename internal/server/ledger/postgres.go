package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/dbx"
	"github.com/dmitrijs2005/hashaudit/internal/server/models"
)

// PostgresLedger is a durable Ledger over the pending_requests table, so
// outstanding requests survive a server restart. Atomicity comes from the
// statements themselves: a conditional insert for Register and
// DELETE ... RETURNING for Resolve.
type PostgresLedger struct {
	db dbx.DBTX
}

// NewPostgresLedger constructs a ledger bound to the given DBTX.
func NewPostgresLedger(db dbx.DBTX) *PostgresLedger {
	return &PostgresLedger{db: db}
}

func (l *PostgresLedger) Register(ctx context.Context, req *models.PendingRequest) error {
	query := `
		INSERT INTO pending_requests (request_id, target_record_id, record_kind)
		VALUES ($1, $2, $3)
		ON CONFLICT (request_id) DO NOTHING
	`
	res, err := l.db.ExecContext(ctx, query,
		req.RequestID, req.TargetRecordID, string(req.Kind))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorDuplicateRequestID
	}
	return nil
}

func (l *PostgresLedger) Lookup(ctx context.Context, requestID string) (*models.PendingRequest, error) {
	query := `
		SELECT request_id, target_record_id, record_kind
		FROM pending_requests
		WHERE request_id = $1
	`
	return l.scanOne(l.db.QueryRowContext(ctx, query, requestID))
}

func (l *PostgresLedger) Resolve(ctx context.Context, requestID string) (*models.PendingRequest, error) {
	query := `
		DELETE FROM pending_requests
		WHERE request_id = $1
		RETURNING request_id, target_record_id, record_kind
	`
	return l.scanOne(l.db.QueryRowContext(ctx, query, requestID))
}

func (l *PostgresLedger) scanOne(row *sql.Row) (*models.PendingRequest, error) {
	req := &models.PendingRequest{}
	var kind string
	if err := row.Scan(&req.RequestID, &req.TargetRecordID, &kind); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorUnknownRequest
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	req.Kind = models.RecordKind(kind)
	return req, nil
}
