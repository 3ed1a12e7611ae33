package deployments

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "deployments.json"))

	m, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, m.Contracts)
}

func TestPutGetRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "deployments.json"))
	rec := Record{Address: "0x5fbdb2315678afecb367f032d93f642f64180aa3", DeployedAt: time.Now().UTC()}

	require.NoError(t, s.Put("sepolia", "token", rec))

	got, ok := s.Get("sepolia", "token")
	require.True(t, ok)
	assert.Equal(t, rec.Address, got.Address)

	_, ok = s.Get("sepolia", "collectible")
	assert.False(t, ok)
	_, ok = s.Get("localnet", "token")
	assert.False(t, ok)
}

func TestPutReplacesPrevious(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "deployments.json"))

	require.NoError(t, s.Put("sepolia", "token", Record{Address: "0xaaa"}))
	require.NoError(t, s.Put("sepolia", "token", Record{Address: "0xbbb"}))

	got, ok := s.Get("sepolia", "token")
	require.True(t, ok)
	assert.Equal(t, "0xbbb", got.Address)
}

func TestPutCreatesParentDir(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested", "deployments.json"))
	require.NoError(t, s.Put("localnet", "collectible", Record{Address: "0xccc"}))

	_, ok := s.Get("localnet", "collectible")
	assert.True(t, ok)
}
