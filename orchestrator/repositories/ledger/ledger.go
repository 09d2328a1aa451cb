package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/types"
)

// ErrRecordNotFound is returned when no ledger row exists for the contract.
var ErrRecordNotFound = errors.New("ledger: record not found")

// Querier abstracts pgxpool.Pool for testability.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type LedgerRepo interface {
	Upsert(ctx context.Context, record *types.SignedArtifactRecord) error
	Get(ctx context.Context, contractID string) (*types.SignedArtifactRecord, error)
	Ping(ctx context.Context) error
}

// BaseLedgerRepo persists the authoritative record of signed artifacts.
// One row per contract; every signature replaces the row, so the ledger
// always points at the latest layered artifact.
type BaseLedgerRepo struct {
	db Querier
}

func NewLedgerRepo(db Querier) *BaseLedgerRepo {
	return &BaseLedgerRepo{db: db}
}

const bootstrapSQL = `
CREATE TABLE IF NOT EXISTS signed_artifacts (
    contract_id      TEXT PRIMARY KEY,
    authority_txn_id TEXT NOT NULL DEFAULT '',
    signer_id        TEXT NOT NULL,
    signed_at        TIMESTAMPTZ NOT NULL,
    authority_status TEXT NOT NULL DEFAULT '',
    artifact_path    TEXT NOT NULL,
    content_hash     TEXT NOT NULL,
    size_bytes       BIGINT NOT NULL DEFAULT 0,
    status           TEXT NOT NULL DEFAULT 'unsigned'
);
`

// Bootstrap creates the ledger table when it does not exist yet.
func (r *BaseLedgerRepo) Bootstrap(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, bootstrapSQL); err != nil {
		return fmt.Errorf("ledger: bootstrap schema: %w", err)
	}

	return nil
}

const upsertSQL = `
INSERT INTO signed_artifacts
    (contract_id, authority_txn_id, signer_id, signed_at, authority_status,
     artifact_path, content_hash, size_bytes, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (contract_id) DO UPDATE SET
    authority_txn_id = EXCLUDED.authority_txn_id,
    signer_id        = EXCLUDED.signer_id,
    signed_at        = EXCLUDED.signed_at,
    authority_status = EXCLUDED.authority_status,
    artifact_path    = EXCLUDED.artifact_path,
    content_hash     = EXCLUDED.content_hash,
    size_bytes       = EXCLUDED.size_bytes,
    status           = EXCLUDED.status;
`

func (r *BaseLedgerRepo) Upsert(ctx context.Context, record *types.SignedArtifactRecord) error {
	if record.ContractID == "" {
		return fmt.Errorf("ledger: missing contract id")
	}
	if record.ArtifactPath == "" {
		return fmt.Errorf("ledger: missing artifact path")
	}

	_, err := r.db.Exec(ctx, upsertSQL,
		record.ContractID,
		record.AuthorityTxnID,
		record.SignerID,
		record.SignedAt,
		record.AuthorityStatus,
		record.ArtifactPath,
		record.ContentHash,
		record.SizeBytes,
		string(record.Status),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return fmt.Errorf("ledger: upsert contract %s: %s: %w", record.ContractID, pgErr.Code, err)
		}
		return fmt.Errorf("ledger: upsert contract %s: %w", record.ContractID, err)
	}

	return nil
}

const getSQL = `
SELECT contract_id, authority_txn_id, signer_id, signed_at, authority_status,
       artifact_path, content_hash, size_bytes, status
FROM signed_artifacts
WHERE contract_id = $1;
`

func (r *BaseLedgerRepo) Get(ctx context.Context, contractID string) (*types.SignedArtifactRecord, error) {
	if contractID == "" {
		return nil, fmt.Errorf("ledger: missing contract id")
	}

	var (
		record types.SignedArtifactRecord
		status string
	)

	err := r.db.QueryRow(ctx, getSQL, contractID).Scan(
		&record.ContractID,
		&record.AuthorityTxnID,
		&record.SignerID,
		&record.SignedAt,
		&record.AuthorityStatus,
		&record.ArtifactPath,
		&record.ContentHash,
		&record.SizeBytes,
		&status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("ledger: get contract %s: %w", contractID, err)
	}

	record.Status = types.ArtifactStatus(status)

	return &record, nil
}

func (r *BaseLedgerRepo) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("ledger: ping: %w", err)
	}

	return nil
}
