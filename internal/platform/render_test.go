package platform

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRenderTree_Golden(t *testing.T) {
	p := newTestPlatform(t)
	buildThread(t, p)

	tree, err := p.RenderTree(1)
	require.NoError(t, err)

	newGoldie(t).Assert(t, "tree_nested", []byte(tree))
}

func TestRenderTree_Subtree(t *testing.T) {
	p := newTestPlatform(t)
	buildThread(t, p)

	tree, err := p.RenderTree(2)
	require.NoError(t, err)

	newGoldie(t).Assert(t, "tree_subtree", []byte(tree))
}

func TestRenderTree_Leaf(t *testing.T) {
	p := newTestPlatform(t)
	buildThread(t, p)

	tree, err := p.RenderTree(5)
	require.NoError(t, err)

	shown, err := p.ShowPost(5)
	require.NoError(t, err)
	assert.Equal(t, shown, tree)
}

func TestRenderTree_Errors(t *testing.T) {
	p := newTestPlatform(t)
	buildThread(t, p)

	_, err := p.RenderTree(99)
	assert.ErrorIs(t, err, ErrPostIDNotRecognised)

	_, err = p.RenderTree(3)
	assert.ErrorIs(t, err, ErrNotActionablePost)
}

func TestShowPost_EndorsementGolden(t *testing.T) {
	p := newTestPlatform(t)
	buildThread(t, p)

	shown, err := p.ShowPost(3)
	require.NoError(t, err)

	newGoldie(t).Assert(t, "show_endorsement", []byte(shown))
}

func TestDescribeAccount_Golden(t *testing.T) {
	p := newTestPlatform(t)
	buildThread(t, p)

	sum, err := p.DescribeAccount("alice")
	require.NoError(t, err)

	newGoldie(t).Assert(t, "summary_alice", []byte(sum.String()))
}
