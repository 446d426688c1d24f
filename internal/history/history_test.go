package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndRecentNewestFirst(t *testing.T) {
	s := openMemory(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := s.Add(Entry{Mode: "url", Input: "CO1.NTC.1", Dataset: "p", Count: 1, CreatedAt: base})
	require.NoError(t, err)
	_, err = s.Add(Entry{Mode: "keyword", Input: "salud", Dataset: "p", Limit: 20, Count: 3, CreatedAt: base.Add(time.Minute)})
	require.NoError(t, err)
	_, err = s.Add(Entry{Mode: "keyword", Input: "vias", Dataset: "p", Limit: 5, Error: "HTTP 500", CreatedAt: base.Add(2 * time.Minute)})
	require.NoError(t, err)

	all, err := s.Recent("", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "vias", all[0].Input)
	assert.Equal(t, "HTTP 500", all[0].Error)
	assert.Equal(t, "CO1.NTC.1", all[2].Input)
	assert.True(t, all[1].CreatedAt.Equal(base.Add(time.Minute)))

	keyword, err := s.Recent("keyword", 1)
	require.NoError(t, err)
	require.Len(t, keyword, 1)
	assert.Equal(t, "vias", keyword[0].Input)
	assert.Equal(t, 5, keyword[0].Limit)
}

func TestAddDefaultsCreatedAt(t *testing.T) {
	s := openMemory(t)
	before := time.Now().Add(-time.Second)

	_, err := s.Add(Entry{Mode: "url", Input: "x", Dataset: "p"})
	require.NoError(t, err)

	items, err := s.Recent("url", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].CreatedAt.After(before))
}

func TestClear(t *testing.T) {
	s := openMemory(t)
	_, err := s.Add(Entry{Mode: "url", Input: "x", Dataset: "p"})
	require.NoError(t, err)
	require.NoError(t, s.Clear())

	items, err := s.Recent("", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOpenFilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Add(Entry{Mode: "keyword", Input: "salud", Dataset: "p"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })
	items, err := reopened.Recent("", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "salud", items[0].Input)
}
