package session_test

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/fsm/state_machines/signatory_fsm"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/state"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/repositories/session"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, dbPath string) *session.BaseSessionRepo {
	t.Helper()

	stg, err := state.NewLevelDBState(dbPath, "test_namespace")
	require.NoError(t, err)

	repo, err := session.NewSessionRepo(stg, "test_namespace")
	require.NoError(t, err)

	return repo
}

func newTestSession(batchID string) *types.SigningSession {
	now := time.Now().UTC()
	return &types.SigningSession{
		ID:         uuid.New().String(),
		BatchID:    batchID,
		TemplateID: "loan-agreement-v3",
		ContractID: "CX-2024-0042",
		Signatories: []types.Signatory{
			{
				Role:     types.RolePrimaryBorrower,
				FullName: "Aminah binti Rahim",
				Contact:  "aminah@example.com",
				SignerID: "900101-14-5678",
				Status:   signatory_fsm.StatePending,
			},
			{
				Role:     types.RoleWitness,
				FullName: "Tan Wei Ming",
				Contact:  "weiming@example.com",
				SignerID: "851212-10-4321",
				Status:   signatory_fsm.StatePending,
			},
		},
		Total:     2,
		Status:    types.SessionInProgress,
		CreatedAt: now,
		ExpiresAt: now.Add(72 * time.Hour),
	}
}

func TestBaseSessionRepo_GetOrCreate(t *testing.T) {
	var (
		req    = require.New(t)
		dbPath = "/tmp/cosign_test_session_GetOrCreate"
	)
	defer os.RemoveAll(dbPath)

	repo := newTestRepo(t, dbPath)

	fresh := newTestSession("batch_1")

	stored, created, err := repo.GetOrCreate(fresh)
	req.NoError(err)
	req.True(created)
	req.Equal(fresh.ID, stored.ID)

	// Second delivery for the same batch resolves to the stored session.
	duplicate := newTestSession("batch_1")
	stored, created, err = repo.GetOrCreate(duplicate)
	req.NoError(err)
	req.False(created)
	req.Equal(fresh.ID, stored.ID)

	sessions, err := repo.List()
	req.NoError(err)
	req.Len(sessions, 1)
}

func TestBaseSessionRepo_GetOrCreate_Concurrent(t *testing.T) {
	var (
		req    = require.New(t)
		dbPath = "/tmp/cosign_test_session_GetOrCreate_Concurrent"
	)
	defer os.RemoveAll(dbPath)

	repo := newTestRepo(t, dbPath)

	const deliveries = 16

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		creates int
	)

	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := repo.GetOrCreate(newTestSession("batch_1"))
			require.NoError(t, err)
			if created {
				mu.Lock()
				creates++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	req.Equal(1, creates)

	sessions, err := repo.List()
	req.NoError(err)
	req.Len(sessions, 1)
}

func TestBaseSessionRepo_SaveGet(t *testing.T) {
	var (
		req    = require.New(t)
		dbPath = "/tmp/cosign_test_session_SaveGet"
	)
	defer os.RemoveAll(dbPath)

	repo := newTestRepo(t, dbPath)

	fresh := newTestSession("batch_1")
	_, _, err := repo.GetOrCreate(fresh)
	req.NoError(err)

	fresh.Signatories[0].Status = signatory_fsm.StateIntercepted
	fresh.CurrentArtifact = "/var/cosign/artifacts/CX-2024-0042_signed.pdf"
	req.NoError(repo.Save(fresh))

	stored, err := repo.Get("batch_1")
	req.NoError(err)
	req.Equal(signatory_fsm.StateIntercepted, stored.Signatories[0].Status)
	req.Equal(fresh.CurrentArtifact, stored.CurrentArtifact)
}

func TestBaseSessionRepo_Get_NotFound(t *testing.T) {
	var (
		req    = require.New(t)
		dbPath = "/tmp/cosign_test_session_Get_NotFound"
	)
	defer os.RemoveAll(dbPath)

	repo := newTestRepo(t, dbPath)

	_, err := repo.Get("batch_missing")
	req.ErrorIs(err, types.ErrSessionNotFound)
}

func TestBaseSessionRepo_Delete(t *testing.T) {
	var (
		req    = require.New(t)
		dbPath = "/tmp/cosign_test_session_Delete"
	)
	defer os.RemoveAll(dbPath)

	repo := newTestRepo(t, dbPath)

	_, _, err := repo.GetOrCreate(newTestSession("batch_1"))
	req.NoError(err)

	req.NoError(repo.Delete("batch_1"))

	_, err = repo.Get("batch_1")
	req.ErrorIs(err, types.ErrSessionNotFound)

	req.ErrorIs(repo.Delete("batch_1"), types.ErrSessionNotFound)
}

func TestBaseSessionRepo_DeleteExpired(t *testing.T) {
	var (
		req    = require.New(t)
		dbPath = "/tmp/cosign_test_session_DeleteExpired"
	)
	defer os.RemoveAll(dbPath)

	repo := newTestRepo(t, dbPath)

	live := newTestSession("batch_live")
	_, _, err := repo.GetOrCreate(live)
	req.NoError(err)

	expired := newTestSession("batch_expired")
	expired.ExpiresAt = time.Now().UTC().Add(-time.Hour)
	_, _, err = repo.GetOrCreate(expired)
	req.NoError(err)

	deleted, err := repo.DeleteExpired(time.Now().UTC())
	req.NoError(err)
	req.Equal(1, deleted)

	_, err = repo.Get("batch_expired")
	req.ErrorIs(err, types.ErrSessionNotFound)

	_, err = repo.Get("batch_live")
	req.NoError(err)
}

func TestBaseSessionRepo_SurvivesReopen(t *testing.T) {
	var (
		req    = require.New(t)
		dbPath = "/tmp/cosign_test_session_SurvivesReopen"
	)
	defer os.RemoveAll(dbPath)

	stg, err := state.NewLevelDBState(dbPath, "test_namespace")
	req.NoError(err)

	repo, err := session.NewSessionRepo(stg, "test_namespace")
	req.NoError(err)

	_, _, err = repo.GetOrCreate(newTestSession("batch_1"))
	req.NoError(err)

	// A second repo over the same state must not wipe live sessions.
	repo2, err := session.NewSessionRepo(stg, "test_namespace")
	req.NoError(err)

	stored, err := repo2.Get("batch_1")
	req.NoError(err)
	req.Equal("batch_1", stored.BatchID)
}
