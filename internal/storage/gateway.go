// internal/storage/gateway.go
//
// The persistence gateway backs every durable collection in the app with a
// single key-value contract: JSON values stored under string keys. The file
// implementation keeps one file per key inside the state directory so a
// corrupt value can only ever take down its own collection.

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrCorrupt marks stored data that could not be decoded as JSON. Callers
// recover by resetting the affected collection to empty.
var ErrCorrupt = errors.New("storage: corrupt value")

// Gateway is the durable key-value contract. Get reports false when the key
// has never been written. Set must complete before the triggering operation
// reports success.
type Gateway interface {
	Get(key string, out any) (bool, error)
	Set(key string, value any) error
}

// FileGateway persists each key as a pretty-printed JSON file under dir.
type FileGateway struct {
	dir string
}

// NewFileGateway builds a gateway rooted at dir, creating it if needed.
func NewFileGateway(dir string) (*FileGateway, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage: state directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure state dir: %w", err)
	}
	return &FileGateway{dir: dir}, nil
}

// Dir returns the directory backing this gateway.
func (g *FileGateway) Dir() string {
	return g.dir
}

// Get decodes the stored value for key into out. A missing file reports
// (false, nil); an unreadable or non-JSON file reports ErrCorrupt so the
// caller can reset that one collection.
func (g *FileGateway) Get(key string, out any) (bool, error) {
	data, err := os.ReadFile(g.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("storage: read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// Set encodes value as JSON and writes it atomically: the bytes land in a
// temp file first and are renamed over the target, so a crash mid-write
// leaves the previous value intact.
func (g *FileGateway) Set(key string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	path := g.path(key)
	tmp, err := os.CreateTemp(g.dir, "market-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("storage: rename %s: %w", key, err)
	}
	return nil
}

func (g *FileGateway) path(key string) string {
	// Keys look like "cheongnyamri.notifications"; keep them readable on disk
	// but never let a key escape the state dir.
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(g.dir, name+".json")
}

// MemoryGateway is an in-process Gateway for tests. Values round-trip through
// JSON so tests exercise the same encoding as the file gateway.
type MemoryGateway struct {
	values map[string][]byte

	// FailSet, when set, makes every Set return this error. Used to test
	// all-or-nothing behavior of multi-store mutations.
	FailSet error
}

// NewMemoryGateway builds an empty in-memory gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{values: map[string][]byte{}}
}

// Get decodes the stored JSON for key into out.
func (m *MemoryGateway) Get(key string, out any) (bool, error) {
	data, ok := m.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// Set stores the JSON encoding of value under key.
func (m *MemoryGateway) Set(key string, value any) error {
	if m.FailSet != nil {
		return m.FailSet
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = data
	return nil
}

// Put stores raw bytes under key, bypassing encoding. Tests use it to plant
// corrupt data.
func (m *MemoryGateway) Put(key string, raw []byte) {
	m.values[key] = raw
}
