package platform

import (
	"slices"

	"github.com/samber/lo"

	"github.com/roach88/socialgraph/internal/model"
)

// state is the combined arena of accounts and posts.
// It is not safe for concurrent use; Platform serialises access.
type state struct {
	accounts *registry
	posts    *repository
}

func newState(accountSeq, postSeq *Sequence) *state {
	return &state{
		accounts: newRegistry(accountSeq),
		posts:    newRepository(postSeq),
	}
}

// registry owns accounts, indexed by id and by handle.
type registry struct {
	byID     map[model.AccountID]*model.Account
	byHandle map[string]model.AccountID
	seq      *Sequence
}

func newRegistry(seq *Sequence) *registry {
	return &registry{
		byID:     make(map[model.AccountID]*model.Account),
		byHandle: make(map[string]model.AccountID),
		seq:      seq,
	}
}

func (r *registry) get(id model.AccountID) (*model.Account, bool) {
	a, ok := r.byID[id]
	return a, ok
}

func (r *registry) lookup(handle string) (*model.Account, bool) {
	id, ok := r.byHandle[handle]
	if !ok {
		return nil, false
	}
	return r.byID[id], true
}

func (r *registry) insert(a *model.Account) {
	r.byID[a.ID] = a
	r.byHandle[a.Handle] = a.ID
}

func (r *registry) remove(id model.AccountID) {
	a, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byHandle, a.Handle)
	delete(r.byID, id)
}

func (r *registry) rename(a *model.Account, handle string) {
	delete(r.byHandle, a.Handle)
	a.Handle = handle
	r.byHandle[handle] = a.ID
}

// sortedIDs returns live account ids in ascending order.
func (r *registry) sortedIDs() []model.AccountID {
	ids := lo.Keys(r.byID)
	slices.Sort(ids)
	return ids
}

// repository owns posts of every kind in one id space.
type repository struct {
	byID     map[model.PostID]*model.Post
	byAuthor map[model.AccountID]map[model.PostID]struct{}
	counts   map[model.PostKind]int
	seq      *Sequence
}

func newRepository(seq *Sequence) *repository {
	return &repository{
		byID:     make(map[model.PostID]*model.Post),
		byAuthor: make(map[model.AccountID]map[model.PostID]struct{}),
		counts:   make(map[model.PostKind]int),
		seq:      seq,
	}
}

func (r *repository) get(id model.PostID) (*model.Post, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// insert stores p and links it into its parent's Children or its target's
// Endorsements. The parent/target must already be present.
func (r *repository) insert(p *model.Post) {
	r.byID[p.ID] = p
	authored, ok := r.byAuthor[p.AuthorID]
	if !ok {
		authored = make(map[model.PostID]struct{})
		r.byAuthor[p.AuthorID] = authored
	}
	authored[p.ID] = struct{}{}
	r.counts[p.Kind]++

	switch p.Kind {
	case model.KindComment:
		parent := r.byID[p.ParentID]
		parent.Children = insertSorted(parent.Children, p.ID)
	case model.KindEndorsement:
		target := r.byID[p.TargetID]
		target.Endorsements = insertSorted(target.Endorsements, p.ID)
	}
}

// removeAll deletes every post in ids, unlinking survivors that reference
// them. Posts in ids may reference each other in any order.
func (r *repository) removeAll(ids []model.PostID) {
	doomed := make(map[model.PostID]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}

	for _, id := range ids {
		p, ok := r.byID[id]
		if !ok {
			continue
		}
		switch p.Kind {
		case model.KindComment:
			if _, gone := doomed[p.ParentID]; !gone {
				if parent, ok := r.byID[p.ParentID]; ok {
					parent.Children = removeSorted(parent.Children, p.ID)
				}
			}
		case model.KindEndorsement:
			if _, gone := doomed[p.TargetID]; !gone {
				if target, ok := r.byID[p.TargetID]; ok {
					target.Endorsements = removeSorted(target.Endorsements, p.ID)
				}
			}
		}

		if authored, ok := r.byAuthor[p.AuthorID]; ok {
			delete(authored, id)
			if len(authored) == 0 {
				delete(r.byAuthor, p.AuthorID)
			}
		}
		r.counts[p.Kind]--
		delete(r.byID, id)
	}
}

// authoredBy returns the ids of posts written by the account, ascending.
func (r *repository) authoredBy(id model.AccountID) []model.PostID {
	ids := lo.Keys(r.byAuthor[id])
	slices.Sort(ids)
	return ids
}

// sortedIDs returns live post ids in ascending order.
func (r *repository) sortedIDs() []model.PostID {
	ids := lo.Keys(r.byID)
	slices.Sort(ids)
	return ids
}

func insertSorted(ids []model.PostID, id model.PostID) []model.PostID {
	i, found := slices.BinarySearch(ids, id)
	if found {
		return ids
	}
	return slices.Insert(ids, i, id)
}

func removeSorted(ids []model.PostID, id model.PostID) []model.PostID {
	i, found := slices.BinarySearch(ids, id)
	if !found {
		return ids
	}
	return slices.Delete(ids, i, i+1)
}

// handleOf resolves an author id to its current handle.
func (s *state) handleOf(id model.AccountID) string {
	if a, ok := s.accounts.get(id); ok {
		return a.Handle
	}
	return ""
}
