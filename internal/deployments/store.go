// Package deployments persists confirmed contract addresses per network so
// later invocations can find them without re-deploying.
package deployments

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Record is one confirmed deployment.
type Record struct {
	Address    string    `json:"address"`
	DeployedAt time.Time `json:"deployed_at"`
}

// Manifest maps network name to contract kind to its latest deployment.
type Manifest struct {
	Contracts map[string]map[string]Record `json:"contracts"`
}

// Store reads and writes the deployments manifest as a JSON file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the manifest. A missing file yields an empty manifest.
func (s *Store) Load() (*Manifest, error) {
	m := &Manifest{Contracts: make(map[string]map[string]Record)}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read deployments manifest: %w", err)
	}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse deployments manifest: %w", err)
	}
	if m.Contracts == nil {
		m.Contracts = make(map[string]map[string]Record)
	}
	return m, nil
}

// Get returns the latest deployment of kind on the named network.
func (s *Store) Get(network, kind string) (Record, bool) {
	m, err := s.Load()
	if err != nil {
		return Record{}, false
	}
	rec, ok := m.Contracts[network][kind]
	return rec, ok
}

// Put records a deployment, replacing any previous one for the same
// network and kind.
func (s *Store) Put(network, kind string, rec Record) error {
	m, err := s.Load()
	if err != nil {
		return err
	}
	if m.Contracts[network] == nil {
		m.Contracts[network] = make(map[string]Record)
	}
	m.Contracts[network][kind] = rec

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
