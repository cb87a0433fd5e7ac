package model

import "slices"

// AccountID identifies an account. Allocated sequentially, never reused.
type AccountID int64

// PostID identifies a post of any kind. All kinds share one id space.
type PostID int64

// PostKind discriminates the post variant.
type PostKind string

const (
	KindOriginal    PostKind = "original"
	KindComment     PostKind = "comment"
	KindEndorsement PostKind = "endorsement"
)

// ValidKinds defines the allowed post kinds.
var ValidKinds = map[PostKind]bool{
	KindOriginal:    true,
	KindComment:     true,
	KindEndorsement: true,
}

// Actionable reports whether posts of this kind can be endorsed or commented.
func (k PostKind) Actionable() bool {
	return k == KindOriginal || k == KindComment
}

// Account is a registered identity on the platform.
type Account struct {
	ID          AccountID `json:"id"`
	Handle      string    `json:"handle"`
	Description string    `json:"description"`
}

// Post is the tagged post variant.
//
// Field usage by kind:
//   - original:    AuthorID, Message, Children, Endorsements
//   - comment:     AuthorID, Message, ParentID, Children, Endorsements
//   - endorsement: AuthorID, TargetID
//
// Children and Endorsements are derived indexes kept in ascending id order.
type Post struct {
	ID           PostID    `json:"id"`
	Kind         PostKind  `json:"kind"`
	AuthorID     AccountID `json:"author_id"`
	Message      string    `json:"message,omitempty"`
	ParentID     PostID    `json:"parent_id,omitempty"`
	TargetID     PostID    `json:"target_id,omitempty"`
	Children     []PostID  `json:"children,omitempty"`
	Endorsements []PostID  `json:"endorsements,omitempty"`
}

// EndorsementCount returns the number of live endorsements targeting the post.
func (p *Post) EndorsementCount() int {
	return len(p.Endorsements)
}

// CommentCount returns the number of direct replies.
func (p *Post) CommentCount() int {
	return len(p.Children)
}

// Clone returns a deep copy so callers cannot alias the arena's slices.
func (p *Post) Clone() Post {
	c := *p
	c.Children = slices.Clone(p.Children)
	c.Endorsements = slices.Clone(p.Endorsements)
	return c
}
