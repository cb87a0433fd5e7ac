package platform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/socialgraph/internal/model"
	"github.com/roach88/socialgraph/internal/store"
	"github.com/roach88/socialgraph/internal/testutil"
)

// newTestPlatform creates a platform with a silent logger and deterministic
// snapshot ids.
func newTestPlatform(t *testing.T) *Platform {
	t.Helper()
	return New(
		WithLogger(testutil.DiscardLogger()),
		WithCodec(&store.SQLiteCodec{IDs: testutil.NewSequentialIDGenerator("snap")}),
	)
}

func mustAccount(t *testing.T, p *Platform, handle string) model.AccountID {
	t.Helper()
	id, err := p.CreateAccount(handle, "")
	require.NoError(t, err)
	return id
}

func mustPost(t *testing.T, p *Platform, handle, message string) model.PostID {
	t.Helper()
	id, err := p.CreatePost(handle, message)
	require.NoError(t, err)
	return id
}

func mustComment(t *testing.T, p *Platform, handle string, parent model.PostID, message string) model.PostID {
	t.Helper()
	id, err := p.CommentPost(handle, parent, message)
	require.NoError(t, err)
	return id
}

func mustEndorse(t *testing.T, p *Platform, handle string, target model.PostID) model.PostID {
	t.Helper()
	id, err := p.EndorsePost(handle, target)
	require.NoError(t, err)
	return id
}

// buildThread creates the conversation used by the render and summary tests:
//
//	1 alice "hello world"
//	├─ 2 bob "hi alice"
//	│  └─ 4 carol "hi bob"
//	├─ 3 carol endorses 1
//	└─ 5 alice "thanks all"
func buildThread(t *testing.T, p *Platform) {
	t.Helper()
	_, err := p.CreateAccount("alice", "author")
	require.NoError(t, err)
	mustAccount(t, p, "bob")
	mustAccount(t, p, "carol")

	root := mustPost(t, p, "alice", "hello world")
	reply := mustComment(t, p, "bob", root, "hi alice")
	mustEndorse(t, p, "carol", root)
	mustComment(t, p, "carol", reply, "hi bob")
	mustComment(t, p, "alice", root, "thanks all")
}

// counts captures every cardinality for before/after comparisons.
type counts struct {
	Accounts, Originals, Comments, Endorsements, Posts int
}

func countsOf(p *Platform) counts {
	return counts{
		Accounts:     p.CountAccounts(),
		Originals:    p.CountOriginalPosts(),
		Comments:     p.CountCommentPosts(),
		Endorsements: p.CountEndorsementPosts(),
		Posts:        p.CountPosts(),
	}
}
