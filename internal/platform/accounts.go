package platform

import (
	"fmt"
	"strings"

	"github.com/roach88/socialgraph/internal/model"
)

// AccountSummary describes one account and its activity.
type AccountSummary struct {
	ID                   model.AccountID `json:"id"`
	Handle               string          `json:"handle"`
	Description          string          `json:"description"`
	OriginalPosts        int             `json:"original_posts"`
	CommentPosts         int             `json:"comment_posts"`
	EndorsementPosts     int             `json:"endorsement_posts"`
	EndorsementsReceived int             `json:"endorsements_received"`
}

// PostCount returns the number of posts of any kind authored by the account.
func (s AccountSummary) PostCount() int {
	return s.OriginalPosts + s.CommentPosts + s.EndorsementPosts
}

// String renders the summary as shown by the describe command.
func (s AccountSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %d\n", s.ID)
	fmt.Fprintf(&b, "Handle: %s\n", s.Handle)
	fmt.Fprintf(&b, "Description: %s\n", s.Description)
	fmt.Fprintf(&b, "Post count: %d (original: %d | comment: %d | endorsement: %d)\n",
		s.PostCount(), s.OriginalPosts, s.CommentPosts, s.EndorsementPosts)
	fmt.Fprintf(&b, "Endorse count: %d", s.EndorsementsReceived)
	return b.String()
}

// CreateAccount registers a new account and returns its id.
// Pass an empty description to leave it unset.
func (p *Platform) CreateAccount(handle, description string) (model.AccountID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, err := p.st.createAccount(handle, description)
	if err != nil {
		return 0, err
	}
	p.logger.Debug("account created", "account_id", id, "handle", model.Normalize(handle))
	return id, nil
}

// RemoveAccount removes the account with the given handle and every post it
// authored, with the full cascade for each post.
func (p *Platform) RemoveAccount(handle string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	a, ok := p.st.accounts.lookup(model.Normalize(handle))
	if !ok {
		return newError(CodeHandleNotRecognised, "handle %q not recognised", handle)
	}
	removed := p.st.removeAccount(a.ID)
	p.logger.Debug("account removed", "account_id", a.ID, "posts_removed", removed)
	return nil
}

// RemoveAccountByID removes the account with the given id and every post it
// authored, with the full cascade for each post.
func (p *Platform) RemoveAccountByID(id model.AccountID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.st.accounts.get(id); !ok {
		return newError(CodeAccountIDNotRecognised, "account id %d not recognised", id)
	}
	removed := p.st.removeAccount(id)
	p.logger.Debug("account removed", "account_id", id, "posts_removed", removed)
	return nil
}

// ChangeHandle renames an account. The id, description and authored posts
// are preserved.
func (p *Platform) ChangeHandle(oldHandle, newHandle string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	a, ok := p.st.accounts.lookup(model.Normalize(oldHandle))
	if !ok {
		return newError(CodeHandleNotRecognised, "handle %q not recognised", oldHandle)
	}
	handle := model.Normalize(newHandle)
	if err := model.ValidateHandle(handle); err != nil {
		return wrapError(CodeInvalidHandle, fmt.Sprintf("invalid handle %q", newHandle), err)
	}
	if other, taken := p.st.accounts.lookup(handle); taken && other.ID != a.ID {
		return newError(CodeHandleAlreadyExists, "handle %q already exists", newHandle)
	}

	old := a.Handle
	p.st.accounts.rename(a, handle)
	p.logger.Debug("account renamed", "account_id", a.ID, "from", old, "to", handle)
	return nil
}

// UpdateDescription replaces the description of the account.
func (p *Platform) UpdateDescription(handle, description string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	a, ok := p.st.accounts.lookup(model.Normalize(handle))
	if !ok {
		return newError(CodeHandleNotRecognised, "handle %q not recognised", handle)
	}
	a.Description = description
	p.logger.Debug("account description updated", "account_id", a.ID)
	return nil
}

// DescribeAccount summarises the account and its activity.
func (p *Platform) DescribeAccount(handle string) (AccountSummary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	a, ok := p.st.accounts.lookup(model.Normalize(handle))
	if !ok {
		return AccountSummary{}, newError(CodeHandleNotRecognised, "handle %q not recognised", handle)
	}
	return p.st.summarize(a), nil
}

// Accounts returns every live account ordered by id.
func (p *Platform) Accounts() []model.Account {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := p.st.accounts.sortedIDs()
	out := make([]model.Account, 0, len(ids))
	for _, id := range ids {
		a, _ := p.st.accounts.get(id)
		out = append(out, *a)
	}
	return out
}

func (s *state) createAccount(handle, description string) (model.AccountID, error) {
	handle = model.Normalize(handle)
	if err := model.ValidateHandle(handle); err != nil {
		return 0, wrapError(CodeInvalidHandle, fmt.Sprintf("invalid handle %q", handle), err)
	}
	if _, taken := s.accounts.lookup(handle); taken {
		return 0, newError(CodeHandleAlreadyExists, "handle %q already exists", handle)
	}

	a := &model.Account{
		ID:          model.AccountID(s.accounts.seq.Next()),
		Handle:      handle,
		Description: description,
	}
	s.accounts.insert(a)
	return a.ID, nil
}

// removeAccount deletes the account and cascades over every post it
// authored. The account must exist. Returns the number of posts removed.
func (s *state) removeAccount(id model.AccountID) int {
	doomed := s.posts.cascade(s.posts.authoredBy(id)...)
	s.posts.removeAll(doomed)
	s.accounts.remove(id)
	return len(doomed)
}

func (s *state) summarize(a *model.Account) AccountSummary {
	sum := AccountSummary{
		ID:          a.ID,
		Handle:      a.Handle,
		Description: a.Description,
	}
	for _, id := range s.posts.authoredBy(a.ID) {
		post, _ := s.posts.get(id)
		switch post.Kind {
		case model.KindOriginal:
			sum.OriginalPosts++
		case model.KindComment:
			sum.CommentPosts++
		case model.KindEndorsement:
			sum.EndorsementPosts++
		}
		sum.EndorsementsReceived += post.EndorsementCount()
	}
	return sum
}
