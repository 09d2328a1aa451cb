package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/types"
)

func testRecord() *types.SignedArtifactRecord {
	return &types.SignedArtifactRecord{
		ContractID:      "CX-2024-0042",
		AuthorityTxnID:  "txn-0001",
		SignerID:        "900101-14-5678",
		SignedAt:        time.Now().UTC(),
		AuthorityStatus: "000",
		ArtifactPath:    "/var/cosign/artifacts/CX-2024-0042_signed.pdf",
		ContentHash:     "2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae",
		SizeBytes:       52431,
		Status:          types.ArtifactAuthoritySigned,
	}
}

func TestUpsert_Validation(t *testing.T) {
	db := &fakeQuerier{}
	repo := NewLedgerRepo(db)

	record := testRecord()
	record.ContractID = ""
	if err := repo.Upsert(context.Background(), record); err == nil {
		t.Fatal("expected error on missing contract id")
	}

	record = testRecord()
	record.ArtifactPath = ""
	if err := repo.Upsert(context.Background(), record); err == nil {
		t.Fatal("expected error on missing artifact path")
	}

	if db.execCalls != 0 {
		t.Errorf("expected no statement on validation failure, got %d", db.execCalls)
	}
}

func TestUpsert_BindsEveryColumn(t *testing.T) {
	db := &fakeQuerier{}
	repo := NewLedgerRepo(db)

	record := testRecord()
	if err := repo.Upsert(context.Background(), record); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if len(db.execArgs) != 9 {
		t.Fatalf("expected 9 bound args, got %d", len(db.execArgs))
	}
	if db.execArgs[0] != record.ContractID {
		t.Errorf("expected contract id first, got %v", db.execArgs[0])
	}
	if db.execArgs[8] != string(types.ArtifactAuthoritySigned) {
		t.Errorf("expected status bound as string, got %v", db.execArgs[8])
	}
}

func TestGet_NotFound(t *testing.T) {
	db := &fakeQuerier{row: &fakeRow{scanErr: pgx.ErrNoRows}}
	repo := NewLedgerRepo(db)

	_, err := repo.Get(context.Background(), "CX-unknown")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGet_QueryFailure(t *testing.T) {
	scanErr := errors.New("connection reset")
	db := &fakeQuerier{row: &fakeRow{scanErr: scanErr}}
	repo := NewLedgerRepo(db)

	_, err := repo.Get(context.Background(), "CX-2024-0042")
	if !errors.Is(err, scanErr) {
		t.Fatalf("expected wrapped scan error, got %v", err)
	}
}

func TestPing_Failure(t *testing.T) {
	pingErr := errors.New("no reachable servers")
	repo := NewLedgerRepo(&fakeQuerier{pingErr: pingErr})

	if err := repo.Ping(context.Background()); !errors.Is(err, pingErr) {
		t.Fatalf("expected wrapped ping error, got %v", err)
	}
}

type fakeQuerier struct {
	execCalls int
	execSQL   string
	execArgs  []any
	execErr   error
	row       *fakeRow
	pingErr   error
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execCalls++
	f.execSQL = sql
	f.execArgs = args
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return f.row
}

func (f *fakeQuerier) Ping(ctx context.Context) error {
	return f.pingErr
}

type fakeRow struct {
	scanErr error
}

func (r *fakeRow) Scan(dest ...any) error {
	return r.scanErr
}
