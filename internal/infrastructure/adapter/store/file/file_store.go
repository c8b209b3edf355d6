package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/persistence"
)

const backend = "file"

// Store keeps the whole ledger as one JSON array of users. Every Save
// replaces the file through a temp file and a rename, so readers see either
// the old document or the new one.
type Store struct {
	path   string
	logger core.Logger
	mu     sync.RWMutex
}

var _ persistence.LedgerStore = (*Store)(nil)

// NewStore creates a file store at path. The file does not need to exist.
func NewStore(path string, logger core.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errs.NewStorageError("open", backend, err)
	}

	return &Store{path: path, logger: logger}, nil
}

// Path returns the location of the ledger file
func (s *Store) Path() string {
	return s.path
}

// Load reads the full user collection. A missing or blank file is an empty ledger.
// A done ctx is returned as is, not as a storage error.
func (s *Store) Load(ctx context.Context) ([]entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.path)
	s.mu.RUnlock()

	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("Ledger file not found, starting empty", map[string]any{
			"path": s.path,
		})
		return []entity.User{}, nil
	}
	if err != nil {
		return nil, errs.NewStorageError("load", backend, err)
	}

	return Decode(data)
}

// Decode parses a ledger document
func Decode(data []byte) ([]entity.User, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []entity.User{}, nil
	}

	var users []entity.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, errs.NewStorageError("load", backend, fmt.Errorf("corrupt ledger document: %w", err))
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

// Save overwrites the file with users. A done ctx leaves the file untouched.
func (s *Store) Save(ctx context.Context, users []entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if users == nil {
		users = []entity.User{}
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return errs.NewStorageError("save", backend, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeAtomic(s.path, data); err != nil {
		return errs.NewStorageError("save", backend, err)
	}

	s.logger.Debug("Ledger file written", map[string]any{
		"path":  s.path,
		"users": len(users),
		"bytes": len(data),
	})
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// LoadSeed reads seed users from a JSON document in the ledger layout
func LoadSeed(path string) ([]entity.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Decode(data)
}
