package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionStableName is the progressive-chaining path for a contract. Every
// signatory overwrites the same name so the next lookup finds the layered
// document.
func SessionStableName(contractID string) string {
	return fmt.Sprintf("%s_signed.pdf", contractID)
}

// OneShotName names a verification export that must never be overwritten.
func OneShotName(batchID, signerID string, t time.Time) string {
	return fmt.Sprintf("%d_%s_%s.pdf", t.Unix(), batchID, signerID)
}

// StoredArtifact describes bytes the store has durably written. Hash is the
// sha256 hex of exactly those bytes and is what the ledger records.
type StoredArtifact struct {
	Path string
	Hash string
	Size int64
}

type Store interface {
	Write(name string, data []byte) (*StoredArtifact, error)
	Read(name string) ([]byte, error)
	Stat(name string) (bool, error)
	List(prefix string) ([]string, error)
	Health() error
}

type BaseStore struct {
	dir string
}

func NewStore(dir string) (*BaseStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("artifacts directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifacts directory: %w", err)
	}
	return &BaseStore{dir: dir}, nil
}

func (s *BaseStore) Write(name string, data []byte) (*StoredArtifact, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0666); err != nil {
		return nil, fmt.Errorf("failed to write artifact %s: %w", name, err)
	}

	return &StoredArtifact{
		Path: path,
		Hash: hex.EncodeToString(sum[:]),
		Size: int64(len(data)),
	}, nil
}

func (s *BaseStore) Read(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", name, err)
	}
	return data, nil
}

func (s *BaseStore) Stat(name string) (bool, error) {
	if err := checkName(name); err != nil {
		return false, err
	}

	if _, err := os.Stat(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat artifact %s: %w", name, err)
	}
	return true, nil
}

// List returns artifact names starting with prefix, sorted by name. One-shot
// names start with their Unix timestamp, so a prefix-free listing comes out
// in write order.
func (s *BaseStore) List(prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if prefix == "" || strings.HasPrefix(entry.Name(), prefix) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Health proves the store can still take writes before a signing step
// depends on it.
func (s *BaseStore) Health() error {
	probe := filepath.Join(s.dir, fmt.Sprintf(".probe_%s", uuid.New().String()))
	if err := os.WriteFile(probe, []byte("ok"), 0666); err != nil {
		return fmt.Errorf("artifacts directory is not writable: %w", err)
	}
	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("failed to remove probe file: %w", err)
	}
	return nil
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("artifact name cannot be empty")
	}
	if filepath.Base(name) != name {
		return fmt.Errorf("artifact name \"%s\" must not contain path separators", name)
	}
	return nil
}
