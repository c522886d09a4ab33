package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"classicmatch"
)

func TestCodesUpsertUsesOnConflict(t *testing.T) {
	db, mock := newMockDB(t)
	codes := NewCodes(db)

	accountID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO "one_time_codes" .* ON CONFLICT \("account_id","purpose"\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))

	err := codes.Upsert(context.Background(), classicmatch.CodeRecord{
		AccountID: accountID.String(),
		Email:     "pilot@example.com",
		Purpose:   classicmatch.PurposeConfirmation,
		CodeHash:  "salt:key",
		IssuedAt:  now,
		ExpiresAt: now.Add(30 * time.Minute),
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	expectationsMet(t, mock)
}

func TestCodesGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	codes := NewCodes(db)

	accountID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "one_time_codes" WHERE account_id = \$1 AND purpose = \$2`).
		WithArgs(accountID, "reset", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := codes.Get(context.Background(), accountID.String(), classicmatch.PurposeReset)
	if !errors.Is(err, classicmatch.ErrCodeNotFound) {
		t.Fatalf("err = %v, want ErrCodeNotFound", err)
	}
	expectationsMet(t, mock)
}

func TestCodesGetRoundTrip(t *testing.T) {
	db, mock := newMockDB(t)
	codes := NewCodes(db)

	accountID := uuid.New()
	issued := time.Now().Truncate(time.Second)
	expires := issued.Add(15 * time.Minute)

	mock.ExpectQuery(`SELECT \* FROM "one_time_codes" WHERE account_id = \$1 AND purpose = \$2`).
		WithArgs(accountID, "reset", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "purpose", "email", "code_hash", "issued_at", "expires_at", "consumed"}).
			AddRow(uuid.New(), accountID, "reset", "pilot@example.com", "salt:key", issued, expires, false))

	rec, err := codes.Get(context.Background(), accountID.String(), classicmatch.PurposeReset)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Purpose != classicmatch.PurposeReset || rec.Consumed || !rec.ExpiresAt.Equal(expires) {
		t.Fatalf("record = %+v", rec)
	}
	expectationsMet(t, mock)
}

func TestCodesMarkConsumedMissing(t *testing.T) {
	db, mock := newMockDB(t)
	codes := NewCodes(db)

	mock.ExpectExec(`UPDATE "one_time_codes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := codes.MarkConsumed(context.Background(), uuid.NewString(), classicmatch.PurposeConfirmation)
	if !errors.Is(err, classicmatch.ErrCodeNotFound) {
		t.Fatalf("err = %v, want ErrCodeNotFound", err)
	}
	expectationsMet(t, mock)
}

func TestCodesMalformedAccountID(t *testing.T) {
	db, _ := newMockDB(t)
	codes := NewCodes(db)

	if _, err := codes.Get(context.Background(), "nope", classicmatch.PurposeReset); !errors.Is(err, classicmatch.ErrCodeNotFound) {
		t.Fatalf("Get err = %v", err)
	}
	if err := codes.MarkConsumed(context.Background(), "nope", classicmatch.PurposeReset); !errors.Is(err, classicmatch.ErrCodeNotFound) {
		t.Fatalf("MarkConsumed err = %v", err)
	}
}
