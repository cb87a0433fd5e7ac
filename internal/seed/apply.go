package seed

import (
	"errors"
	"fmt"

	"github.com/roach88/socialgraph/internal/model"
	"github.com/roach88/socialgraph/internal/platform"
)

// Result lists what a seed created, in seed order.
type Result struct {
	Accounts []model.AccountID
	Posts    []model.PostID
	Refs     map[string]model.PostID
}

// Apply creates every account and post in s. If any operation fails the
// platform is restored to the snapshot taken before the first one, and the
// failing operation's error is returned.
func Apply(p *platform.Platform, s *Seed) (Result, error) {
	before := p.Snapshot()

	res, err := apply(p, s)
	if err != nil {
		if rerr := p.Restore(before); rerr != nil {
			return Result{}, errors.Join(err, fmt.Errorf("rollback: %w", rerr))
		}
		return Result{}, err
	}
	return res, nil
}

func apply(p *platform.Platform, s *Seed) (Result, error) {
	res := Result{Refs: make(map[string]model.PostID)}

	for _, a := range s.Accounts {
		id, err := p.CreateAccount(a.Handle, a.Description)
		if err != nil {
			return Result{}, fmt.Errorf("%s: account %q: %w", s.Name, a.Handle, err)
		}
		res.Accounts = append(res.Accounts, id)
	}

	for i, post := range s.Posts {
		id, err := createPost(p, post, res.Refs)
		if err != nil {
			return Result{}, fmt.Errorf("%s: posts[%d]: %w", s.Name, i, err)
		}
		if post.Ref != "" {
			res.Refs[post.Ref] = id
		}
		res.Posts = append(res.Posts, id)
	}
	return res, nil
}

func createPost(p *platform.Platform, post Post, refs map[string]model.PostID) (model.PostID, error) {
	switch {
	case post.Endorse != nil:
		return p.EndorsePost(post.Author, resolve(*post.Endorse, refs))
	case post.Comment != nil:
		return p.CommentPost(post.Author, resolve(*post.Comment, refs), post.Message)
	default:
		return p.CreatePost(post.Author, post.Message)
	}
}

// resolve maps a target to a post id. Refs were checked at parse time, so
// an unknown ref can only mean a bug and resolves to the never-valid id 0.
func resolve(t Target, refs map[string]model.PostID) model.PostID {
	if t.Ref != "" {
		return refs[t.Ref]
	}
	return model.PostID(t.ID)
}
