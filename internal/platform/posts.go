package platform

import (
	"fmt"

	"github.com/roach88/socialgraph/internal/model"
)

// CreatePost publishes an original post for the account.
func (p *Platform) CreatePost(handle, message string) (model.PostID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	author, ok := p.st.accounts.lookup(model.Normalize(handle))
	if !ok {
		return 0, newError(CodeHandleNotRecognised, "handle %q not recognised", handle)
	}
	message = model.Normalize(message)
	if err := model.ValidateMessage(message); err != nil {
		return 0, wrapError(CodeInvalidPost, "invalid message", err)
	}

	post := &model.Post{
		ID:       model.PostID(p.st.posts.seq.Next()),
		Kind:     model.KindOriginal,
		AuthorID: author.ID,
		Message:  message,
	}
	p.st.posts.insert(post)
	p.logger.Debug("post created", "post_id", post.ID, "account_id", author.ID)
	return post.ID, nil
}

// EndorsePost creates an endorsement of the post by the account.
// Endorsements cannot themselves be endorsed.
func (p *Platform) EndorsePost(handle string, id model.PostID) (model.PostID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	author, ok := p.st.accounts.lookup(model.Normalize(handle))
	if !ok {
		return 0, newError(CodeHandleNotRecognised, "handle %q not recognised", handle)
	}
	target, err := p.st.actionable(id)
	if err != nil {
		return 0, err
	}

	post := &model.Post{
		ID:       model.PostID(p.st.posts.seq.Next()),
		Kind:     model.KindEndorsement,
		AuthorID: author.ID,
		TargetID: target.ID,
	}
	p.st.posts.insert(post)
	p.logger.Debug("post endorsed", "post_id", post.ID, "target_id", target.ID, "account_id", author.ID)
	return post.ID, nil
}

// CommentPost replies to an original post or a comment.
func (p *Platform) CommentPost(handle string, id model.PostID, message string) (model.PostID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	author, ok := p.st.accounts.lookup(model.Normalize(handle))
	if !ok {
		return 0, newError(CodeHandleNotRecognised, "handle %q not recognised", handle)
	}
	parent, err := p.st.actionable(id)
	if err != nil {
		return 0, err
	}
	message = model.Normalize(message)
	if err := model.ValidateMessage(message); err != nil {
		return 0, wrapError(CodeInvalidPost, "invalid message", err)
	}

	post := &model.Post{
		ID:       model.PostID(p.st.posts.seq.Next()),
		Kind:     model.KindComment,
		AuthorID: author.ID,
		Message:  message,
		ParentID: parent.ID,
	}
	p.st.posts.insert(post)
	p.logger.Debug("comment created", "post_id", post.ID, "parent_id", parent.ID, "account_id", author.ID)
	return post.ID, nil
}

// DeletePost removes the post, its whole comment subtree and every
// endorsement of any removed post.
func (p *Platform) DeletePost(id model.PostID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.st.posts.get(id); !ok {
		return newError(CodePostIDNotRecognised, "post id %d not recognised", id)
	}
	doomed := p.st.posts.cascade(id)
	p.st.posts.removeAll(doomed)
	p.logger.Debug("post deleted", "post_id", id, "posts_removed", len(doomed))
	return nil
}

// ShowPost renders a single post:
//
//	ID: 1
//	Account: alice
//	No. endorsements: 2 | No. comments: 1
//	hello
func (p *Platform) ShowPost(id model.PostID) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, ok := p.st.posts.get(id)
	if !ok {
		return "", newError(CodePostIDNotRecognised, "post id %d not recognised", id)
	}
	return joinLines(p.st.postLines(post)), nil
}

// Post returns a copy of the post.
func (p *Platform) Post(id model.PostID) (model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, ok := p.st.posts.get(id)
	if !ok {
		return model.Post{}, newError(CodePostIDNotRecognised, "post id %d not recognised", id)
	}
	return post.Clone(), nil
}

// actionable resolves id to a post that can be endorsed or commented.
func (s *state) actionable(id model.PostID) (*model.Post, error) {
	post, ok := s.posts.get(id)
	if !ok {
		return nil, newError(CodePostIDNotRecognised, "post id %d not recognised", id)
	}
	if !post.Kind.Actionable() {
		return nil, newError(CodeNotActionablePost, "post %d is an endorsement", id)
	}
	return post, nil
}

// displayMessage returns the text shown for the post. Endorsements show the
// target's current author handle and message.
func (s *state) displayMessage(post *model.Post) string {
	if post.Kind != model.KindEndorsement {
		return post.Message
	}
	target, ok := s.posts.get(post.TargetID)
	if !ok {
		return ""
	}
	return fmt.Sprintf("EP@%s: %s", s.handleOf(target.AuthorID), target.Message)
}
