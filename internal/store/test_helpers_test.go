package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/spellcanon/internal/spell"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// createTestStore creates a new temp-dir store for testing.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	opts = append([]Option{WithNow(func() time.Time { return fixedTime })}, opts...)
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSpell creates a minimal valid arcane spell.
func createTestSpell(id, name string, level int64) *spell.CanonicalSpell {
	return &spell.CanonicalSpell{
		ID:          id,
		Name:        name,
		Tradition:   spell.Arcane,
		School:      "Evocation",
		Level:       level,
		Description: name + " description.",
	}
}
