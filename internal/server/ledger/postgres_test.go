package ledger

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/server/models"
)

func newLedgerWithMock(t *testing.T) (*PostgresLedger, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresLedger(db), mock, db
}

func TestPostgresLedger_Register(t *testing.T) {
	l, mock, db := newLedgerWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+pending_requests`).
		WithArgs("req-1", int64(7), "hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := l.Register(context.Background(), &models.PendingRequest{RequestID: "req-1", TargetRecordID: 7, Kind: models.RecordKindHash})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
}

func TestPostgresLedger_RegisterDuplicate(t *testing.T) {
	l, mock, db := newLedgerWithMock(t)
	defer db.Close()

	// ON CONFLICT DO NOTHING reports zero rows affected on a duplicate.
	mock.ExpectExec(`INSERT\s+INTO\s+pending_requests`).
		WithArgs("req-1", int64(7), "hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := l.Register(context.Background(), &models.PendingRequest{RequestID: "req-1", TargetRecordID: 7, Kind: models.RecordKindHash})
	if !errors.Is(err, common.ErrorDuplicateRequestID) {
		t.Fatalf("want ErrorDuplicateRequestID, got %v", err)
	}
}

func TestPostgresLedger_ResolveConsumes(t *testing.T) {
	l, mock, db := newLedgerWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"request_id", "target_record_id", "record_kind"}).
		AddRow("req-1", int64(7), "guess")
	mock.ExpectQuery(`DELETE\s+FROM\s+pending_requests.*RETURNING`).
		WithArgs("req-1").
		WillReturnRows(rows)
	mock.ExpectQuery(`DELETE\s+FROM\s+pending_requests.*RETURNING`).
		WithArgs("req-1").
		WillReturnError(sql.ErrNoRows)

	got, err := l.Resolve(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.TargetRecordID != 7 || got.Kind != models.RecordKindGuess {
		t.Fatalf("unexpected entry: %+v", got)
	}

	_, err = l.Resolve(context.Background(), "req-1")
	if !errors.Is(err, common.ErrorUnknownRequest) {
		t.Fatalf("want ErrorUnknownRequest on second resolve, got %v", err)
	}
}

func TestPostgresLedger_LookupUnknown(t *testing.T) {
	l, mock, db := newLedgerWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+request_id,\s*target_record_id`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := l.Lookup(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorUnknownRequest) {
		t.Fatalf("want ErrorUnknownRequest, got %v", err)
	}
}
