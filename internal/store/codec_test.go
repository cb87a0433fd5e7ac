package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/socialgraph/internal/model"
	"github.com/roach88/socialgraph/internal/testutil"
)

func TestSQLiteCodec_SaveLoad(t *testing.T) {
	ctx := context.Background()
	codec := createTestCodec()
	path := snapshotPath(t)
	snap := testutil.SampleSnapshot()

	require.NoError(t, codec.Save(ctx, path, snap))

	got, err := codec.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestSQLiteCodec_EmptySnapshot(t *testing.T) {
	ctx := context.Background()
	codec := createTestCodec()
	path := snapshotPath(t)
	snap := model.Snapshot{FormatVersion: model.FormatVersion, AccountSeq: 4, PostSeq: 7}

	require.NoError(t, codec.Save(ctx, path, snap))

	got, err := codec.Load(ctx, path)
	require.NoError(t, err)
	assert.Empty(t, got.Accounts)
	assert.Empty(t, got.Posts)
	assert.Equal(t, int64(4), got.AccountSeq)
	assert.Equal(t, int64(7), got.PostSeq)
}

func TestSQLiteCodec_SaveReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	codec := createTestCodec()
	path := snapshotPath(t)

	require.NoError(t, codec.Save(ctx, path, testutil.SampleSnapshot()))

	second := model.Snapshot{
		FormatVersion: model.FormatVersion,
		AccountSeq:    1,
		Accounts:      []model.Account{{ID: 1, Handle: "carol"}},
	}
	require.NoError(t, codec.Save(ctx, path, second))

	got, err := codec.Load(ctx, path)
	require.NoError(t, err)
	require.Len(t, got.Accounts, 1)
	assert.Equal(t, "carol", got.Accounts[0].Handle)
	assert.Empty(t, got.Posts)
}

func TestSQLiteCodec_SaveLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	codec := createTestCodec()
	path := snapshotPath(t)

	require.NoError(t, codec.Save(ctx, path, testutil.SampleSnapshot()))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestSQLiteCodec_FailedSaveKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	codec := createTestCodec()
	path := snapshotPath(t)

	require.NoError(t, codec.Save(ctx, path, testutil.SampleSnapshot()))

	bad := testutil.SampleSnapshot()
	bad.Posts[0].AuthorID = 42 // violates the author foreign key
	require.Error(t, codec.Save(ctx, path, bad))

	got, err := codec.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleSnapshot(), got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be removed after a failed save")
}

func TestSQLiteCodec_LoadMissing(t *testing.T) {
	_, err := createTestCodec().Load(context.Background(), snapshotPath(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSQLiteCodec_LoadGarbage(t *testing.T) {
	path := snapshotPath(t)
	require.NoError(t, os.WriteFile(path, []byte("definitely not sqlite"), 0o644))

	_, err := createTestCodec().Load(context.Background(), path)
	assert.Error(t, err)
}

func TestSQLiteCodec_LoadDetectsTampering(t *testing.T) {
	ctx := context.Background()
	codec := createTestCodec()
	path := snapshotPath(t)
	require.NoError(t, codec.Save(ctx, path, testutil.SampleSnapshot()))

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.db.Exec("UPDATE accounts SET handle = 'mallory' WHERE id = 1")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = codec.Load(ctx, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "digest mismatch")
}

func TestSQLiteCodec_RecordsSnapshotID(t *testing.T) {
	ctx := context.Background()
	codec := &SQLiteCodec{IDs: testutil.NewFixedIDGenerator("snap-fixed")}
	path := snapshotPath(t)
	require.NoError(t, codec.Save(ctx, path, testutil.SampleSnapshot()))

	s, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer s.Close()

	meta, err := s.ReadMeta(ctx)
	require.NoError(t, err)
	assert.Equal(t, "snap-fixed", meta.SnapshotID)
	assert.Equal(t, model.FormatVersion, meta.FormatVersion)
	assert.Equal(t, int64(3), meta.AccountSeq)
	assert.Equal(t, int64(5), meta.PostSeq)
}

func TestUUIDv7Generator_Unique(t *testing.T) {
	gen := UUIDv7Generator{}

	a, b := gen.Generate(), gen.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
