package session

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/state"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/types"
)

const (
	SessionsKey = "signing_sessions"
)

type SessionRepo interface {
	GetOrCreate(fresh *types.SigningSession) (*types.SigningSession, bool, error)
	Get(batchID string) (*types.SigningSession, error)
	Save(session *types.SigningSession) error
	Delete(batchID string) error
	List() ([]*types.SigningSession, error)
	DeleteExpired(now time.Time) (int, error)
}

// BaseSessionRepo keeps every session in one JSON map under a composite key.
// All mutations are read-modify-write, so the repo serializes them under its
// own mutex; the engine relies on that to keep concurrent webhook deliveries
// for one batch from creating two sessions.
type BaseSessionRepo struct {
	sync.Mutex
	state                state.State
	sessionsCompositeKey string
}

func NewSessionRepo(s state.State, namespace string) (*BaseSessionRepo, error) {
	sessionsCompositeKey := state.MakeCompositeKeyString(namespace, SessionsKey)

	repo := &BaseSessionRepo{
		state:                s,
		sessionsCompositeKey: sessionsCompositeKey,
	}

	if err := s.InitKey(sessionsCompositeKey, []byte("{}")); err != nil {
		return nil, fmt.Errorf("failed to init %s storage: %w", sessionsCompositeKey, err)
	}

	return repo, nil
}

// GetOrCreate returns the stored session for the batch, or persists the
// fresh one when none exists yet. The lookup and the insert share one
// critical section, two racing callers get the same session back and the
// second return value tells the winner apart.
func (r *BaseSessionRepo) GetOrCreate(fresh *types.SigningSession) (*types.SigningSession, bool, error) {
	r.Lock()
	defer r.Unlock()

	sessions, err := r.getSessions()
	if err != nil {
		return nil, false, fmt.Errorf("failed to getSessions: %w", err)
	}

	if existing, ok := sessions[fresh.BatchID]; ok {
		return existing, false, nil
	}

	sessions[fresh.BatchID] = fresh
	if err := r.putSessions(sessions); err != nil {
		return nil, false, fmt.Errorf("failed to put sessions: %w", err)
	}

	return fresh, true, nil
}

func (r *BaseSessionRepo) Get(batchID string) (*types.SigningSession, error) {
	r.Lock()
	defer r.Unlock()

	sessions, err := r.getSessions()
	if err != nil {
		return nil, fmt.Errorf("failed to getSessions: %w", err)
	}

	session, ok := sessions[batchID]
	if !ok {
		return nil, types.ErrSessionNotFound
	}

	return session, nil
}

func (r *BaseSessionRepo) Save(session *types.SigningSession) error {
	r.Lock()
	defer r.Unlock()

	sessions, err := r.getSessions()
	if err != nil {
		return fmt.Errorf("failed to getSessions: %w", err)
	}

	sessions[session.BatchID] = session
	if err := r.putSessions(sessions); err != nil {
		return fmt.Errorf("failed to put sessions: %w", err)
	}

	return nil
}

func (r *BaseSessionRepo) Delete(batchID string) error {
	r.Lock()
	defer r.Unlock()

	sessions, err := r.getSessions()
	if err != nil {
		return fmt.Errorf("failed to getSessions: %w", err)
	}

	if _, ok := sessions[batchID]; !ok {
		return types.ErrSessionNotFound
	}

	delete(sessions, batchID)
	if err := r.putSessions(sessions); err != nil {
		return fmt.Errorf("failed to put sessions: %w", err)
	}

	return nil
}

// List returns all sessions ordered by creation time.
func (r *BaseSessionRepo) List() ([]*types.SigningSession, error) {
	r.Lock()
	defer r.Unlock()

	sessions, err := r.getSessions()
	if err != nil {
		return nil, fmt.Errorf("failed to getSessions: %w", err)
	}

	result := make([]*types.SigningSession, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, session)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// DeleteExpired drops every session past its expiry and reports how many
// went. Run by the janitor sweep in the daemon.
func (r *BaseSessionRepo) DeleteExpired(now time.Time) (int, error) {
	r.Lock()
	defer r.Unlock()

	sessions, err := r.getSessions()
	if err != nil {
		return 0, fmt.Errorf("failed to getSessions: %w", err)
	}

	var deleted int
	for batchID, session := range sessions {
		if session.Expired(now) {
			delete(sessions, batchID)
			deleted++
		}
	}

	if deleted > 0 {
		if err := r.putSessions(sessions); err != nil {
			return 0, fmt.Errorf("failed to put sessions: %w", err)
		}
	}

	return deleted, nil
}

func (r *BaseSessionRepo) getSessions() (map[string]*types.SigningSession, error) {
	bz, err := r.state.Get(r.sessionsCompositeKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions (key: %s): %w", r.sessionsCompositeKey, err)
	}

	if bz == nil {
		return make(map[string]*types.SigningSession), nil
	}

	var sessions map[string]*types.SigningSession
	if err := json.Unmarshal(bz, &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sessions: %w", err)
	}

	return sessions, nil
}

func (r *BaseSessionRepo) putSessions(sessions map[string]*types.SigningSession) error {
	sessionsJSON, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}

	if err := r.state.Set(r.sessionsCompositeKey, sessionsJSON); err != nil {
		return fmt.Errorf("failed to set sessions: %w", err)
	}

	return nil
}
