package hashes

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+password_hashes\s*\(owner,\s*encrypted_hash,\s*reveal_state\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id\s*$`

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(1))
	mock.ExpectQuery(q).
		WithArgs("alice", "blob/ct-1", "sealed").
		WillReturnRows(rows)

	rec := &models.HashRecord{Owner: "alice", EncryptedHash: "blob/ct-1"}
	id, err := repo.Create(context.Background(), rec)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if id != 1 {
		t.Fatalf("unexpected id: %d", id)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+password_hashes`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.HashRecord{Owner: "alice", EncryptedHash: "k"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	submitted := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "owner", "encrypted_hash", "reveal_state", "revealed_hash", "submitted_at"}).
		AddRow(int64(7), "alice", "blob/ct-7", "revealed", "abc123", submitted)
	mock.ExpectQuery(`SELECT\s+id,\s*owner,\s*encrypted_hash`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != 7 || got.State != models.RevealStateRevealed || got.RevealedHash != "abc123" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !got.Revealed() {
		t.Fatal("record should report revealed")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*owner,\s*encrypted_hash`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetState(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"reveal_state"}).AddRow("decryption_requested")
	mock.ExpectQuery(`SELECT\s+reveal_state\s+FROM\s+password_hashes`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	state, err := repo.GetState(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetState error: %v", err)
	}
	if state != models.RevealStateRequested {
		t.Fatalf("unexpected state: %s", state)
	}
}

func TestUpdateState_Applied(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+password_hashes\s+SET\s+reveal_state\s*=\s*\$1`).
		WithArgs("decryption_requested", int64(3), "sealed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.UpdateState(context.Background(), 3, models.RevealStateSealed, models.RevealStateRequested)
	if err != nil {
		t.Fatalf("UpdateState error: %v", err)
	}
	if !ok {
		t.Fatal("expected the transition to apply")
	}
}

func TestUpdateState_WrongState(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+password_hashes\s+SET\s+reveal_state\s*=\s*\$1`).
		WithArgs("decryption_requested", int64(3), "sealed").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.UpdateState(context.Background(), 3, models.RevealStateSealed, models.RevealStateRequested)
	if err != nil {
		t.Fatalf("UpdateState error: %v", err)
	}
	if ok {
		t.Fatal("transition must not apply when the record is not in the expected state")
	}
}

func TestReveal_AppliesOnce(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `UPDATE\s+password_hashes\s+SET\s+reveal_state\s*=\s*\$1,\s*revealed_hash\s*=\s*\$2`

	mock.ExpectExec(q).
		WithArgs("revealed", "abc123", int64(3), "decryption_requested").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).
		WithArgs("revealed", "abc123", int64(3), "decryption_requested").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Reveal(context.Background(), 3, "abc123")
	if err != nil || !ok {
		t.Fatalf("first Reveal should apply: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Reveal(context.Background(), 3, "abc123")
	if err != nil {
		t.Fatalf("second Reveal error: %v", err)
	}
	if ok {
		t.Fatal("second Reveal must not apply")
	}
}

func TestExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
	mock.ExpectQuery(`SELECT\s+EXISTS`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	ok, err := repo.Exists(context.Background(), 5)
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if !ok {
		t.Fatal("expected record to exist")
	}
}
