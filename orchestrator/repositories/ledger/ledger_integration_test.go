package ledger_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/repositories/ledger"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/types"
)

// startPostgres16 starts a Postgres 16 container and returns a DSN. If
// COSIGN_TEST_PG_DSN is set, it reuses that database instead.
func startPostgres16(ctx context.Context, t *testing.T) string {
	t.Helper()

	if dsn := os.Getenv("COSIGN_TEST_PG_DSN"); dsn != "" {
		return dsn
	}

	pgC, err := postgres.Run(ctx,
		"postgres:16",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = pgC.Terminate(context.Background())
	})

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to resolve connection string: %v", err)
	}

	return dsn
}

func connect(ctx context.Context, t *testing.T, dsn string) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	// The container may accept connections a moment after the DSN resolves.
	deadline := time.Now().Add(30 * time.Second)
	for {
		if err = pool.Ping(ctx); err == nil {
			return pool
		}
		if time.Now().After(deadline) {
			t.Fatalf("postgres never became reachable: %v", err)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func TestLedgerRepo_UpsertKeepsOneRowPerContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping ledger integration test in short mode")
	}

	ctx := context.Background()
	pool := connect(ctx, t, startPostgres16(ctx, t))

	repo := ledger.NewLedgerRepo(pool)
	if err := repo.Bootstrap(ctx); err != nil {
		t.Fatalf("failed to bootstrap schema: %v", err)
	}

	first := &types.SignedArtifactRecord{
		ContractID:      "CX-2024-0042",
		AuthorityTxnID:  "txn-0001",
		SignerID:        "900101-14-5678",
		SignedAt:        time.Now().UTC().Truncate(time.Microsecond),
		AuthorityStatus: "000",
		ArtifactPath:    "/var/cosign/artifacts/CX-2024-0042_signed.pdf",
		ContentHash:     "aaaa",
		SizeBytes:       1000,
		Status:          types.ArtifactAuthoritySigned,
	}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second := *first
	second.AuthorityTxnID = "txn-0002"
	second.SignerID = "851212-10-4321"
	second.ContentHash = "bbbb"
	second.SizeBytes = 2000
	if err := repo.Upsert(ctx, &second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM signed_artifacts WHERE contract_id = $1`, first.ContractID).Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one row per contract, got %d", count)
	}

	stored, err := repo.Get(ctx, first.ContractID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.AuthorityTxnID != "txn-0002" {
		t.Errorf("expected latest txn id, got %s", stored.AuthorityTxnID)
	}
	if stored.ContentHash != "bbbb" {
		t.Errorf("expected latest content hash, got %s", stored.ContentHash)
	}
	if stored.SizeBytes != 2000 {
		t.Errorf("expected latest size, got %d", stored.SizeBytes)
	}
	if stored.Status != types.ArtifactAuthoritySigned {
		t.Errorf("expected authority_signed status, got %s", stored.Status)
	}
}

func TestLedgerRepo_GetMissingContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping ledger integration test in short mode")
	}

	ctx := context.Background()
	pool := connect(ctx, t, startPostgres16(ctx, t))

	repo := ledger.NewLedgerRepo(pool)
	if err := repo.Bootstrap(ctx); err != nil {
		t.Fatalf("failed to bootstrap schema: %v", err)
	}

	_, err := repo.Get(ctx, "CX-missing")
	if !errors.Is(err, ledger.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
