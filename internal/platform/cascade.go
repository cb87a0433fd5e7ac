package platform

import "github.com/roach88/socialgraph/internal/model"

// cascade returns every post removed when the roots are deleted, in removal
// order: for each root, its comment descendants depth-first, then the
// endorsements of the root and of each descendant, then the root itself.
//
// cascade only reads the repository. Callers validate, call cascade, and
// then apply the result with removeAll so that nothing is mutated until the
// full set is known.
func (r *repository) cascade(roots ...model.PostID) []model.PostID {
	visited := make(map[model.PostID]struct{})
	var out []model.PostID

	var walk func(id model.PostID)
	walk = func(id model.PostID) {
		if _, seen := visited[id]; seen {
			return
		}
		p, ok := r.byID[id]
		if !ok {
			return
		}
		visited[id] = struct{}{}

		for _, child := range p.Children {
			walk(child)
		}
		for _, e := range p.Endorsements {
			if _, seen := visited[e]; seen {
				continue
			}
			visited[e] = struct{}{}
			out = append(out, e)
		}
		out = append(out, id)
	}

	for _, root := range roots {
		walk(root)
	}
	return out
}
