package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
)

const (
	SessionsKey = "signing_sessions"
)

// State is the orchestrator's durable key-value store. Sessions survive
// restarts here, so nothing in this package may wipe a key that already
// holds data.
type State interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	InitKey(key string, value []byte) error
	Reset(stateDbPath string) (string, error)
}

type LevelDBState struct {
	sync.Mutex
	stateDb     *leveldb.DB
	namespace   string
	stateDbPath string
}

func NewLevelDBState(stateDbPath string, namespace string) (*LevelDBState, error) {
	db, err := leveldb.OpenFile(stateDbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open stateDB: %w", err)
	}

	state := &LevelDBState{
		stateDb:     db,
		namespace:   namespace,
		stateDbPath: stateDbPath,
	}

	return state, nil
}

// Reset leaves the current storage behind and opens a fresh one. With an
// empty path the replacement opens at the old path plus a unix-timestamp
// suffix; the abandoned data stays at the original path for manual recovery.
func (s *LevelDBState) Reset(stateDbPath string) (string, error) {
	s.Lock()
	defer s.Unlock()

	if len(stateDbPath) < 1 {
		stateDbPath = fmt.Sprintf("%s_%d", s.stateDbPath, time.Now().Unix())
	}

	newstate, err := NewLevelDBState(stateDbPath, s.namespace)
	if err != nil {
		return stateDbPath, fmt.Errorf("failed to open stateDB: %w", err)
	}
	s.stateDb = newstate.stateDb
	s.stateDbPath = stateDbPath

	return stateDbPath, err
}

func (s *LevelDBState) Get(key string) ([]byte, error) {
	s.Lock()
	defer s.Unlock()
	var (
		value []byte
		err   error
	)
	if value, err = s.stateDb.Get([]byte(key), nil); err != nil && !errors.Is(leveldb.ErrNotFound, err) {
		return nil, fmt.Errorf("failed to get value with key {%s} from leveldb storage: %w", key, err)
	}
	return value, nil
}

func (s *LevelDBState) Set(key string, value []byte) error {
	s.Lock()
	defer s.Unlock()
	if err := s.stateDb.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("failed to save value with key %s: %w", key, err)
	}
	return nil
}

func (s *LevelDBState) Delete(key string) error {
	s.Lock()
	defer s.Unlock()

	err := s.stateDb.Delete([]byte(key), nil)
	if err != nil && !errors.Is(err, leveldb.ErrNotFound) {
		return fmt.Errorf("failed to delete value with key {%s}: %w", key, err)
	}
	return nil
}

// InitKey writes the value only when the key holds nothing yet.
func (s *LevelDBState) InitKey(key string, value []byte) error {
	s.Lock()
	defer s.Unlock()

	if _, err := s.stateDb.Get([]byte(key), nil); err == nil {
		return nil
	} else if !errors.Is(err, leveldb.ErrNotFound) {
		return fmt.Errorf("failed to probe key {%s}: %w", key, err)
	}

	if err := s.stateDb.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("failed to init key {%s}: %w", key, err)
	}
	return nil
}

func MakeCompositeKey(prefix, key string) []byte {
	return []byte(fmt.Sprintf("%s_%s", prefix, key))
}

func MakeCompositeKeyString(prefix, key string) string {
	return fmt.Sprintf("%s_%s", prefix, key)
}
