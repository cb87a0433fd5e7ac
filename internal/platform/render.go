package platform

import (
	"fmt"
	"strings"

	"github.com/roach88/socialgraph/internal/model"
)

// RenderTree renders the post and all of its comment descendants.
//
// Each reply set is introduced by a "|" rule at the parent's indent. A
// reply's first line is prefixed "| > " and its other lines are indented
// four spaces past the parent:
//
//	ID: 1
//	Account: alice
//	No. endorsements: 0 | No. comments: 1
//	hello
//	|
//	| > ID: 2
//	    Account: bob
//	    No. endorsements: 0 | No. comments: 0
//	    hi
func (p *Platform) RenderTree(id model.PostID) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	root, err := p.st.actionable(id)
	if err != nil {
		return "", err
	}

	var lines []string
	p.st.renderInto(&lines, root, "", "")
	return joinLines(lines), nil
}

// renderInto appends the block for post. first prefixes the block's first
// line, indent prefixes the rest and every nested reply set.
func (s *state) renderInto(lines *[]string, post *model.Post, first, indent string) {
	for i, line := range s.postLines(post) {
		if i == 0 {
			*lines = append(*lines, first+line)
		} else {
			*lines = append(*lines, indent+line)
		}
	}
	if len(post.Children) == 0 {
		return
	}

	*lines = append(*lines, indent+"|")
	for _, id := range post.Children {
		child, ok := s.posts.get(id)
		if !ok {
			continue
		}
		s.renderInto(lines, child, indent+"| > ", indent+"    ")
	}
}

func (s *state) postLines(post *model.Post) []string {
	return []string{
		fmt.Sprintf("ID: %d", post.ID),
		fmt.Sprintf("Account: %s", s.handleOf(post.AuthorID)),
		fmt.Sprintf("No. endorsements: %d | No. comments: %d", post.EndorsementCount(), post.CommentCount()),
		s.displayMessage(post),
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
