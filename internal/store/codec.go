package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/roach88/socialgraph/internal/model"
)

// SQLiteCodec saves and loads snapshots as SQLite files.
// The zero value is ready to use.
type SQLiteCodec struct {
	// IDs generates snapshot ids. Defaults to UUIDv7Generator.
	IDs IDGenerator
}

func (c *SQLiteCodec) ids() IDGenerator {
	if c.IDs == nil {
		return UUIDv7Generator{}
	}
	return c.IDs
}

// Save writes snap to path, replacing any previous snapshot only once the
// new file is complete.
func (c *SQLiteCodec) Save(ctx context.Context, path string, snap model.Snapshot) error {
	digest, err := snap.Digest()
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	meta := Meta{
		FormatVersion: snap.FormatVersion,
		SnapshotID:    c.ids().Generate(),
		AccountSeq:    snap.AccountSeq,
		PostSeq:       snap.PostSeq,
		Digest:        digest,
	}

	tmp := fmt.Sprintf("%s.tmp-%s", path, meta.SnapshotID)
	if err := writeFile(ctx, tmp, meta, snap); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save snapshot: rename: %w", err)
	}
	return nil
}

func writeFile(ctx context.Context, path string, meta Meta, snap model.Snapshot) error {
	// A leftover file from a crashed save must not be appended to.
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale temp file: %w", err)
	}

	s, err := Open(path)
	if err != nil {
		return err
	}
	if err := s.WriteSnapshot(ctx, meta, snap); err != nil {
		s.Close()
		return err
	}
	return s.Close()
}

// Load reads the snapshot at path and verifies its digest.
func (c *SQLiteCodec) Load(ctx context.Context, path string) (model.Snapshot, error) {
	if _, err := os.Stat(path); err != nil {
		return model.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	s, err := OpenReadOnly(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	defer s.Close()

	meta, snap, err := s.ReadSnapshot(ctx)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	if meta.FormatVersion != model.FormatVersion {
		return model.Snapshot{}, fmt.Errorf("load snapshot: unsupported format version %d (want %d)",
			meta.FormatVersion, model.FormatVersion)
	}

	digest, err := snap.Digest()
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	if digest != meta.Digest {
		return model.Snapshot{}, fmt.Errorf("load snapshot %s: digest mismatch: recorded %s, computed %s",
			meta.SnapshotID, meta.Digest, digest)
	}
	return snap, nil
}
