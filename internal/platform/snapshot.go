package platform

import (
	"context"
	"fmt"

	"github.com/roach88/socialgraph/internal/model"
)

// Codec persists snapshots. Save must not leave a partially written file at
// path; Load must not return a partially decoded snapshot.
type Codec interface {
	Save(ctx context.Context, path string, snap model.Snapshot) error
	Load(ctx context.Context, path string) (model.Snapshot, error)
}

// Snapshot exports the full state, including id sequences.
func (p *Platform) Snapshot() model.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Platform) snapshotLocked() model.Snapshot {
	snap := model.Snapshot{
		FormatVersion: model.FormatVersion,
		AccountSeq:    p.accountSeq.Current(),
		PostSeq:       p.postSeq.Current(),
		Accounts:      make([]model.Account, 0, len(p.st.accounts.byID)),
		Posts:         make([]model.PostRecord, 0, len(p.st.posts.byID)),
	}
	for _, id := range p.st.accounts.sortedIDs() {
		a, _ := p.st.accounts.get(id)
		snap.Accounts = append(snap.Accounts, *a)
	}
	for _, id := range p.st.posts.sortedIDs() {
		post, _ := p.st.posts.get(id)
		snap.Posts = append(snap.Posts, model.RecordOf(post))
	}
	return snap
}

// Restore replaces the full state with snap. The snapshot is validated
// completely before anything is swapped in; on error the platform is
// unchanged.
func (p *Platform) Restore(snap model.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.restoreLocked(snap); err != nil {
		return wrapError(CodeStorageIO, "restore snapshot", err)
	}
	return nil
}

func (p *Platform) restoreLocked(snap model.Snapshot) error {
	accountSeq := NewSequenceAt(snap.AccountSeq)
	postSeq := NewSequenceAt(snap.PostSeq)
	st, err := fromSnapshot(snap, accountSeq, postSeq)
	if err != nil {
		return err
	}

	p.st, p.accountSeq, p.postSeq = st, accountSeq, postSeq
	p.logger.Debug("snapshot restored",
		"accounts", len(snap.Accounts),
		"posts", len(snap.Posts),
		"account_seq", snap.AccountSeq,
		"post_seq", snap.PostSeq)
	return nil
}

// SavePlatform writes the full state to path through the configured codec.
func (p *Platform) SavePlatform(ctx context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := p.snapshotLocked()
	if err := p.codec.Save(ctx, path, snap); err != nil {
		return wrapError(CodeStorageIO, fmt.Sprintf("save %s", path), err)
	}
	p.logger.Debug("platform saved", "path", path, "accounts", len(snap.Accounts), "posts", len(snap.Posts))
	return nil
}

// LoadPlatform replaces the full state with the snapshot stored at path.
// Any read, decode or validation failure leaves the current state untouched.
func (p *Platform) LoadPlatform(ctx context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap, err := p.codec.Load(ctx, path)
	if err != nil {
		return wrapError(CodeStorageIO, fmt.Sprintf("load %s", path), err)
	}
	if err := p.restoreLocked(snap); err != nil {
		return wrapError(CodeStorageIO, fmt.Sprintf("load %s", path), err)
	}
	return nil
}

// fromSnapshot rebuilds a state from snap, checking every structural
// invariant on the way.
func fromSnapshot(snap model.Snapshot, accountSeq, postSeq *Sequence) (*state, error) {
	if snap.FormatVersion != model.FormatVersion {
		return nil, fmt.Errorf("unsupported format version %d (want %d)", snap.FormatVersion, model.FormatVersion)
	}
	if snap.AccountSeq < 0 || snap.PostSeq < 0 {
		return nil, fmt.Errorf("negative id sequence (accounts %d, posts %d)", snap.AccountSeq, snap.PostSeq)
	}

	st := newState(accountSeq, postSeq)

	var last model.AccountID
	for _, a := range snap.Accounts {
		if a.ID <= last || int64(a.ID) > snap.AccountSeq {
			return nil, fmt.Errorf("account %d: id out of order or beyond sequence %d", a.ID, snap.AccountSeq)
		}
		last = a.ID
		if a.Handle != model.Normalize(a.Handle) {
			return nil, fmt.Errorf("account %d: handle %q is not NFC normalised", a.ID, a.Handle)
		}
		if err := model.ValidateHandle(a.Handle); err != nil {
			return nil, fmt.Errorf("account %d: %w", a.ID, err)
		}
		if _, taken := st.accounts.lookup(a.Handle); taken {
			return nil, fmt.Errorf("account %d: duplicate handle %q", a.ID, a.Handle)
		}
		acct := a
		st.accounts.insert(&acct)
	}

	var lastPost model.PostID
	for _, rec := range snap.Posts {
		if rec.ID <= lastPost || int64(rec.ID) > snap.PostSeq {
			return nil, fmt.Errorf("post %d: id out of order or beyond sequence %d", rec.ID, snap.PostSeq)
		}
		lastPost = rec.ID
		if err := st.checkRecord(rec); err != nil {
			return nil, fmt.Errorf("post %d: %w", rec.ID, err)
		}
		st.posts.insert(&model.Post{
			ID:       rec.ID,
			Kind:     rec.Kind,
			AuthorID: rec.AuthorID,
			Message:  rec.Message,
			ParentID: rec.ParentID,
			TargetID: rec.TargetID,
		})
	}

	for _, rec := range snap.Posts {
		post, _ := st.posts.get(rec.ID)
		if post.EndorsementCount() != rec.EndorsementCount {
			return nil, fmt.Errorf("post %d: endorsement count %d does not match %d endorsements",
				rec.ID, rec.EndorsementCount, post.EndorsementCount())
		}
	}
	return st, nil
}

// checkRecord validates one post record against the posts restored so far.
// Records arrive in ascending id order, so a parent or target always
// precedes the posts referencing it.
func (s *state) checkRecord(rec model.PostRecord) error {
	if !model.ValidKinds[rec.Kind] {
		return fmt.Errorf("unknown kind %q", rec.Kind)
	}
	if _, ok := s.accounts.get(rec.AuthorID); !ok {
		return fmt.Errorf("author %d does not exist", rec.AuthorID)
	}

	switch rec.Kind {
	case model.KindOriginal:
		if rec.ParentID != 0 || rec.TargetID != 0 {
			return fmt.Errorf("original post carries parent %d or target %d", rec.ParentID, rec.TargetID)
		}
	case model.KindComment:
		if rec.TargetID != 0 {
			return fmt.Errorf("comment carries target %d", rec.TargetID)
		}
		if err := s.checkReference(rec.ParentID); err != nil {
			return fmt.Errorf("parent: %w", err)
		}
	case model.KindEndorsement:
		if rec.ParentID != 0 || rec.Message != "" {
			return fmt.Errorf("endorsement carries parent %d or a message", rec.ParentID)
		}
		if err := s.checkReference(rec.TargetID); err != nil {
			return fmt.Errorf("target: %w", err)
		}
		return nil
	}

	if rec.Message != model.Normalize(rec.Message) {
		return fmt.Errorf("message is not NFC normalised")
	}
	return model.ValidateMessage(rec.Message)
}

func (s *state) checkReference(id model.PostID) error {
	ref, ok := s.posts.get(id)
	if !ok {
		return fmt.Errorf("post %d does not exist", id)
	}
	if !ref.Kind.Actionable() {
		return fmt.Errorf("post %d is an endorsement", id)
	}
	return nil
}
