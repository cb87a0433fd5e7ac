package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/socialgraph/internal/model"
)

// ReadMeta returns the header row of the snapshot.
func (s *Store) ReadMeta(ctx context.Context) (Meta, error) {
	var m Meta
	err := s.db.QueryRowContext(ctx, `
		SELECT format_version, snapshot_id, account_seq, post_seq, digest
		FROM meta
		WHERE id = 1
	`).Scan(&m.FormatVersion, &m.SnapshotID, &m.AccountSeq, &m.PostSeq, &m.Digest)
	if errors.Is(err, sql.ErrNoRows) {
		return Meta{}, fmt.Errorf("read meta: snapshot has no meta row")
	}
	if err != nil {
		return Meta{}, fmt.Errorf("read meta: %w", err)
	}
	return m, nil
}

// ReadSnapshot returns the meta row and every account and post, each in
// ascending id order.
func (s *Store) ReadSnapshot(ctx context.Context) (Meta, model.Snapshot, error) {
	meta, err := s.ReadMeta(ctx)
	if err != nil {
		return Meta{}, model.Snapshot{}, err
	}

	accounts, err := s.readAccounts(ctx)
	if err != nil {
		return Meta{}, model.Snapshot{}, err
	}
	posts, err := s.readPosts(ctx)
	if err != nil {
		return Meta{}, model.Snapshot{}, err
	}

	return meta, model.Snapshot{
		FormatVersion: meta.FormatVersion,
		AccountSeq:    meta.AccountSeq,
		PostSeq:       meta.PostSeq,
		Accounts:      accounts,
		Posts:         posts,
	}, nil
}

func (s *Store) readAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, handle, description
		FROM accounts
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Handle, &a.Description); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

func (s *Store) readPosts(ctx context.Context) ([]model.PostRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, author_id, message, parent_id, target_id, endorsement_count
		FROM posts
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := []model.PostRecord{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func scanPost(rows *sql.Rows) (model.PostRecord, error) {
	var (
		p              model.PostRecord
		kind           string
		parent, target sql.NullInt64
	)
	if err := rows.Scan(&p.ID, &kind, &p.AuthorID, &p.Message, &parent, &target, &p.EndorsementCount); err != nil {
		return model.PostRecord{}, fmt.Errorf("scan post: %w", err)
	}
	p.Kind = model.PostKind(kind)
	p.ParentID = postIDOf(parent)
	p.TargetID = postIDOf(target)
	return p, nil
}
