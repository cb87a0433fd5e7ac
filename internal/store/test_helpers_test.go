package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/socialgraph/internal/testutil"
)

// createTestStore creates a new writable store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestCodec creates a codec with deterministic snapshot ids.
func createTestCodec() *SQLiteCodec {
	return &SQLiteCodec{IDs: testutil.NewSequentialIDGenerator("snap")}
}

// snapshotPath returns a fresh snapshot path in a temp directory.
func snapshotPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "state.db")
}
