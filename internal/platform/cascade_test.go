package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/socialgraph/internal/model"
)

func TestDeletePost_RemovesSubtreeAndEndorsements(t *testing.T) {
	p := newTestPlatform(t)
	mustAccount(t, p, "alice")
	mustAccount(t, p, "bob")
	root := mustPost(t, p, "alice", "hello")
	c1 := mustComment(t, p, "bob", root, "one")
	c2 := mustComment(t, p, "bob", root, "two")
	mustEndorse(t, p, "alice", c1)
	mustEndorse(t, p, "alice", c2)
	other := mustPost(t, p, "bob", "unrelated")
	before := p.CountPosts()

	require.NoError(t, p.DeletePost(root))

	assert.Equal(t, before-5, p.CountPosts())
	assert.Equal(t, counts{Accounts: 2, Originals: 1, Posts: 1}, countsOf(p))
	_, err := p.Post(other)
	assert.NoError(t, err)
}

func TestDeletePost_DeepNesting(t *testing.T) {
	p := newTestPlatform(t)
	mustAccount(t, p, "alice")
	parent := mustPost(t, p, "alice", "root")
	for i := 0; i < 50; i++ {
		parent = mustComment(t, p, "alice", parent, "deeper")
		mustEndorse(t, p, "alice", parent)
	}

	require.NoError(t, p.DeletePost(1))

	assert.Equal(t, 0, p.CountPosts())
}

func TestDeletePost_UnlinksParent(t *testing.T) {
	p := newTestPlatform(t)
	buildThread(t, p)

	require.NoError(t, p.DeletePost(2))

	root, err := p.Post(1)
	require.NoError(t, err)
	assert.Equal(t, []model.PostID{5}, root.Children)
	assert.Equal(t, []model.PostID{3}, root.Endorsements)
}

func TestDeletePost_Endorsement(t *testing.T) {
	p := newTestPlatform(t)
	buildThread(t, p)

	require.NoError(t, p.DeletePost(3))

	root, err := p.Post(1)
	require.NoError(t, err)
	assert.Zero(t, root.EndorsementCount())
	assert.Equal(t, 4, p.CountPosts())
}

func TestDeletePost_Unknown(t *testing.T) {
	p := newTestPlatform(t)
	buildThread(t, p)
	before := countsOf(p)

	assert.ErrorIs(t, p.DeletePost(99), ErrPostIDNotRecognised)
	assert.Equal(t, before, countsOf(p))
}

func TestCascade_Order(t *testing.T) {
	p := newTestPlatform(t)
	buildThread(t, p)

	// Descendants first, then endorsements, then the root.
	got := p.st.posts.cascade(1)

	assert.Equal(t, []model.PostID{4, 2, 5, 3, 1}, got)
}

func TestCascade_OverlappingRoots(t *testing.T) {
	p := newTestPlatform(t)
	buildThread(t, p)

	got := p.st.posts.cascade(2, 1, 4)

	assert.ElementsMatch(t, []model.PostID{1, 2, 3, 4, 5}, got)
	assert.Len(t, got, 5)
}
