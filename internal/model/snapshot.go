package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FormatVersion is the snapshot layout version. Bump when PostRecord or
// Snapshot change shape.
const FormatVersion = 1

// Snapshot is the complete platform state as one value.
// Accounts and Posts are sorted by ascending id.
type Snapshot struct {
	FormatVersion int          `json:"format_version"`
	AccountSeq    int64        `json:"account_seq"` // last allocated account id
	PostSeq       int64        `json:"post_seq"`    // last allocated post id
	Accounts      []Account    `json:"accounts"`
	Posts         []PostRecord `json:"posts"`
}

// PostRecord is the persisted form of a Post. Children and Endorsements are
// rebuilt from ParentID/TargetID on restore; EndorsementCount is carried so
// the restore can cross-check it.
type PostRecord struct {
	ID               PostID    `json:"id"`
	Kind             PostKind  `json:"kind"`
	AuthorID         AccountID `json:"author_id"`
	Message          string    `json:"message"`
	ParentID         PostID    `json:"parent_id"`
	TargetID         PostID    `json:"target_id"`
	EndorsementCount int       `json:"endorsement_count"`
}

// RecordOf converts a live post into its persisted form.
func RecordOf(p *Post) PostRecord {
	return PostRecord{
		ID:               p.ID,
		Kind:             p.Kind,
		AuthorID:         p.AuthorID,
		Message:          p.Message,
		ParentID:         p.ParentID,
		TargetID:         p.TargetID,
		EndorsementCount: p.EndorsementCount(),
	}
}

// Digest computes the content digest of the snapshot.
// Two snapshots with identical state produce identical digests.
func (s Snapshot) Digest() (string, error) {
	// Normalise nil vs empty so an empty platform has one digest.
	if s.Accounts == nil {
		s.Accounts = []Account{}
	}
	if s.Posts == nil {
		s.Posts = []PostRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("digest: marshal snapshot: %w", err)
	}
	return hashWithDomain(DomainSnapshot, bytes.TrimSpace(buf.Bytes())), nil
}
