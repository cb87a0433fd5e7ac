package platform

import (
	"github.com/samber/lo"

	"github.com/roach88/socialgraph/internal/model"
)

// Stats bundles the platform-wide counts and aggregates.
// The aggregates are nil when no original or comment post exists.
type Stats struct {
	Accounts            int           `json:"accounts"`
	OriginalPosts       int           `json:"original_posts"`
	CommentPosts        int           `json:"comment_posts"`
	EndorsementPosts    int           `json:"endorsement_posts"`
	MostEndorsedPost    *model.PostID `json:"most_endorsed_post,omitempty"`
	MostEndorsedAccount *string       `json:"most_endorsed_account,omitempty"`
}

// CountAccounts returns the number of live accounts.
func (p *Platform) CountAccounts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.st.accounts.byID)
}

// CountOriginalPosts returns the number of live original posts.
func (p *Platform) CountOriginalPosts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st.posts.counts[model.KindOriginal]
}

// CountCommentPosts returns the number of live comments.
func (p *Platform) CountCommentPosts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st.posts.counts[model.KindComment]
}

// CountEndorsementPosts returns the number of live endorsements.
func (p *Platform) CountEndorsementPosts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st.posts.counts[model.KindEndorsement]
}

// CountPosts returns the number of live posts of every kind.
func (p *Platform) CountPosts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.st.posts.byID)
}

// MostEndorsedPost returns the original or comment post with the most
// endorsements. Ties go to the lowest id.
func (p *Platform) MostEndorsedPost() (model.PostID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st.mostEndorsedPost()
}

// MostEndorsedAccount returns the handle of the account whose posts have
// received the most endorsements in total. Ties go to the lowest account id.
func (p *Platform) MostEndorsedAccount() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st.mostEndorsedAccount()
}

// Stats returns all counts and aggregates in one consistent read.
func (p *Platform) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := Stats{
		Accounts:         len(p.st.accounts.byID),
		OriginalPosts:    p.st.posts.counts[model.KindOriginal],
		CommentPosts:     p.st.posts.counts[model.KindComment],
		EndorsementPosts: p.st.posts.counts[model.KindEndorsement],
	}
	if id, err := p.st.mostEndorsedPost(); err == nil {
		st.MostEndorsedPost = &id
	}
	if handle, err := p.st.mostEndorsedAccount(); err == nil {
		st.MostEndorsedAccount = &handle
	}
	return st
}

func (s *state) hasActionablePosts() bool {
	return s.posts.counts[model.KindOriginal]+s.posts.counts[model.KindComment] > 0
}

func (s *state) mostEndorsedPost() (model.PostID, error) {
	if !s.hasActionablePosts() {
		return 0, newError(CodeNoPostsExist, "no original or comment posts exist")
	}

	var best *model.Post
	for _, id := range s.posts.sortedIDs() {
		post, _ := s.posts.get(id)
		if !post.Kind.Actionable() {
			continue
		}
		if best == nil || post.EndorsementCount() > best.EndorsementCount() {
			best = post
		}
	}
	return best.ID, nil
}

func (s *state) mostEndorsedAccount() (string, error) {
	if !s.hasActionablePosts() {
		return "", newError(CodeNoPostsExist, "no original or comment posts exist")
	}

	var (
		best  *model.Account
		total = -1
	)
	for _, id := range s.accounts.sortedIDs() {
		received := lo.SumBy(s.posts.authoredBy(id), func(pid model.PostID) int {
			post, _ := s.posts.get(pid)
			return post.EndorsementCount()
		})
		if received > total {
			best, _ = s.accounts.get(id)
			total = received
		}
	}
	return best.Handle, nil
}
