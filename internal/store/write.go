package store

import (
	"context"
	"fmt"

	"github.com/roach88/socialgraph/internal/model"
)

// Meta is the header row of a snapshot file.
type Meta struct {
	FormatVersion int
	SnapshotID    string
	AccountSeq    int64
	PostSeq       int64
	Digest        string
}

// WriteSnapshot inserts the snapshot and its meta row in one transaction.
// The store must be empty. Posts are written in ascending id order so that
// every parent and target precedes the posts referencing it.
func (s *Store) WriteSnapshot(ctx context.Context, meta Meta, snap model.Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write snapshot: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO meta (id, format_version, snapshot_id, account_seq, post_seq, digest)
		VALUES (1, ?, ?, ?, ?, ?)
	`, meta.FormatVersion, meta.SnapshotID, meta.AccountSeq, meta.PostSeq, meta.Digest)
	if err != nil {
		return fmt.Errorf("write snapshot: meta: %w", err)
	}

	accountStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO accounts (id, handle, description) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write snapshot: prepare accounts: %w", err)
	}
	defer accountStmt.Close()

	for _, a := range snap.Accounts {
		if _, err = accountStmt.ExecContext(ctx, a.ID, a.Handle, a.Description); err != nil {
			return fmt.Errorf("write snapshot: account %d: %w", a.ID, err)
		}
	}

	postStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO posts (id, kind, author_id, message, parent_id, target_id, endorsement_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write snapshot: prepare posts: %w", err)
	}
	defer postStmt.Close()

	for _, p := range snap.Posts {
		_, err = postStmt.ExecContext(ctx,
			p.ID,
			string(p.Kind),
			p.AuthorID,
			p.Message,
			nullPostID(p.ParentID),
			nullPostID(p.TargetID),
			p.EndorsementCount,
		)
		if err != nil {
			return fmt.Errorf("write snapshot: post %d: %w", p.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("write snapshot: commit: %w", err)
	}
	return nil
}
