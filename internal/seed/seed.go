package seed

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

// Seed is a decoded seed file.
type Seed struct {
	Name     string
	Accounts []Account
	Posts    []Post
}

// Account is one account to create.
type Account struct {
	Handle      string
	Description string
}

// Post is one post to create. Exactly one shape is populated: Message only
// (original), Comment and Message (comment), or Endorse only (endorsement).
type Post struct {
	Ref     string
	Author  string
	Message string
	Comment *Target
	Endorse *Target
}

// Target names the post a comment or endorsement refers to: either a ref
// defined earlier in the seed or an existing post id.
type Target struct {
	Ref string
	ID  int64
}

func (t Target) String() string {
	if t.Ref != "" {
		return t.Ref
	}
	return fmt.Sprintf("#%d", t.ID)
}

// Error reports an invalid seed file.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and parses the seed file at path.
func Load(path string) (*Seed, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return Parse(filepath.Base(path), src)
}

// Parse validates src against the seed schema and decodes it.
func Parse(name string, src []byte) (*Seed, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}

	data := ctx.CompileBytes(src, cue.Filename(name))
	if err := data.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Seed")).Unify(data)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	s := &Seed{Name: name}
	var err error
	if s.Accounts, err = parseAccounts(v); err != nil {
		return nil, err
	}
	if s.Posts, err = parsePosts(v); err != nil {
		return nil, err
	}
	return s, nil
}

func parseAccounts(v cue.Value) ([]Account, error) {
	listVal := v.LookupPath(cue.ParsePath("accounts"))
	if !listVal.Exists() {
		return nil, nil
	}
	it, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var accounts []Account
	for it.Next() {
		av := it.Value()
		var a Account
		if a.Handle, err = av.LookupPath(cue.ParsePath("handle")).String(); err != nil {
			return nil, formatCUEError(err)
		}
		if d := av.LookupPath(cue.ParsePath("description")); d.Exists() {
			if a.Description, err = d.String(); err != nil {
				return nil, formatCUEError(err)
			}
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func parsePosts(v cue.Value) ([]Post, error) {
	listVal := v.LookupPath(cue.ParsePath("posts"))
	if !listVal.Exists() {
		return nil, nil
	}
	it, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	refs := make(map[string]bool)
	var posts []Post
	for it.Next() {
		pv := it.Value()
		p, err := parsePost(pv)
		if err != nil {
			return nil, err
		}
		if err := checkShape(p, refs); err != nil {
			return nil, &Error{Field: fmt.Sprintf("posts[%d]", len(posts)), Message: err.Error(), Pos: pv.Pos()}
		}
		if p.Ref != "" {
			refs[p.Ref] = true
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func parsePost(v cue.Value) (Post, error) {
	var (
		p   Post
		err error
	)
	if p.Author, err = v.LookupPath(cue.ParsePath("author")).String(); err != nil {
		return Post{}, formatCUEError(err)
	}
	if r := v.LookupPath(cue.ParsePath("ref")); r.Exists() {
		if p.Ref, err = r.String(); err != nil {
			return Post{}, formatCUEError(err)
		}
	}
	if m := v.LookupPath(cue.ParsePath("message")); m.Exists() {
		if p.Message, err = m.String(); err != nil {
			return Post{}, formatCUEError(err)
		}
	}
	if p.Comment, err = parseTarget(v.LookupPath(cue.ParsePath("comment"))); err != nil {
		return Post{}, err
	}
	if p.Endorse, err = parseTarget(v.LookupPath(cue.ParsePath("endorse"))); err != nil {
		return Post{}, err
	}
	return p, nil
}

func parseTarget(v cue.Value) (*Target, error) {
	if !v.Exists() {
		return nil, nil
	}
	switch v.Kind() {
	case cue.IntKind:
		id, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return &Target{ID: id}, nil
	case cue.StringKind:
		ref, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return &Target{Ref: ref}, nil
	default:
		return nil, &Error{Field: "target", Message: fmt.Sprintf("unsupported kind %s", v.Kind()), Pos: v.Pos()}
	}
}

// checkShape enforces the one-shape rule and that ref targets are defined
// by an earlier post.
func checkShape(p Post, refs map[string]bool) error {
	switch {
	case p.Endorse != nil:
		if p.Comment != nil || p.Message != "" {
			return fmt.Errorf("endorsement must not carry a message or comment target")
		}
	case p.Comment != nil:
		if p.Message == "" {
			return fmt.Errorf("comment requires a message")
		}
	default:
		if p.Message == "" {
			return fmt.Errorf("post requires a message, a comment target or an endorse target")
		}
	}

	for _, t := range []*Target{p.Comment, p.Endorse} {
		if t != nil && t.Ref != "" && !refs[t.Ref] {
			return fmt.Errorf("ref %q is not defined by an earlier post", t.Ref)
		}
	}
	if p.Ref != "" && refs[p.Ref] {
		return fmt.Errorf("ref %q defined twice", p.Ref)
	}
	return nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &Error{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
