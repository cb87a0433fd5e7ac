package harness

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/roach88/socialgraph/internal/model"
	"github.com/roach88/socialgraph/internal/platform"
)

// runContext is what an action executes against.
type runContext struct {
	ctx      context.Context
	platform *platform.Platform
	tempDir  string
}

type actionFunc func(rc *runContext, args map[string]any) (map[string]any, error)

// actions maps scenario action names to platform operations.
var actions = map[string]actionFunc{
	"create_account":        createAccount,
	"remove_account":        removeAccount,
	"change_handle":         changeHandle,
	"update_description":    updateDescription,
	"describe_account":      describeAccount,
	"create_post":           createPost,
	"endorse_post":          endorsePost,
	"comment_post":          commentPost,
	"delete_post":           deletePost,
	"show_post":             showPost,
	"render_tree":           renderTree,
	"most_endorsed_post":    mostEndorsedPost,
	"most_endorsed_account": mostEndorsedAccount,
	"stats":                 stats,
	"erase":                 erase,
	"save_load":             saveLoad,
}

func knownAction(name string) bool {
	_, ok := actions[name]
	return ok
}

func createAccount(rc *runContext, args map[string]any) (map[string]any, error) {
	handle, err := argString(args, "handle")
	if err != nil {
		return nil, err
	}
	description, _ := optString(args, "description")
	id, err := rc.platform.CreateAccount(handle, description)
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": int64(id)}, nil
}

// removeAccount accepts either handle or id.
func removeAccount(rc *runContext, args map[string]any) (map[string]any, error) {
	if handle, ok := optString(args, "handle"); ok {
		return nil, rc.platform.RemoveAccount(handle)
	}
	id, err := argInt(args, "id")
	if err != nil {
		return nil, err
	}
	return nil, rc.platform.RemoveAccountByID(model.AccountID(id))
}

func changeHandle(rc *runContext, args map[string]any) (map[string]any, error) {
	oldHandle, err := argString(args, "old")
	if err != nil {
		return nil, err
	}
	newHandle, err := argString(args, "new")
	if err != nil {
		return nil, err
	}
	return nil, rc.platform.ChangeHandle(oldHandle, newHandle)
}

func updateDescription(rc *runContext, args map[string]any) (map[string]any, error) {
	handle, err := argString(args, "handle")
	if err != nil {
		return nil, err
	}
	description, _ := optString(args, "description")
	return nil, rc.platform.UpdateDescription(handle, description)
}

func describeAccount(rc *runContext, args map[string]any) (map[string]any, error) {
	handle, err := argString(args, "handle")
	if err != nil {
		return nil, err
	}
	sum, err := rc.platform.DescribeAccount(handle)
	if err != nil {
		return nil, err
	}
	return summaryFields(sum), nil
}

func createPost(rc *runContext, args map[string]any) (map[string]any, error) {
	handle, err := argString(args, "handle")
	if err != nil {
		return nil, err
	}
	message, err := argString(args, "message")
	if err != nil {
		return nil, err
	}
	id, err := rc.platform.CreatePost(handle, message)
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": int64(id)}, nil
}

func endorsePost(rc *runContext, args map[string]any) (map[string]any, error) {
	handle, err := argString(args, "handle")
	if err != nil {
		return nil, err
	}
	target, err := argInt(args, "id")
	if err != nil {
		return nil, err
	}
	id, err := rc.platform.EndorsePost(handle, model.PostID(target))
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": int64(id)}, nil
}

func commentPost(rc *runContext, args map[string]any) (map[string]any, error) {
	handle, err := argString(args, "handle")
	if err != nil {
		return nil, err
	}
	parent, err := argInt(args, "id")
	if err != nil {
		return nil, err
	}
	message, err := argString(args, "message")
	if err != nil {
		return nil, err
	}
	id, err := rc.platform.CommentPost(handle, model.PostID(parent), message)
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": int64(id)}, nil
}

func deletePost(rc *runContext, args map[string]any) (map[string]any, error) {
	id, err := argInt(args, "id")
	if err != nil {
		return nil, err
	}
	return nil, rc.platform.DeletePost(model.PostID(id))
}

func showPost(rc *runContext, args map[string]any) (map[string]any, error) {
	id, err := argInt(args, "id")
	if err != nil {
		return nil, err
	}
	text, err := rc.platform.ShowPost(model.PostID(id))
	if err != nil {
		return nil, err
	}
	return map[string]any{"text": text}, nil
}

func renderTree(rc *runContext, args map[string]any) (map[string]any, error) {
	id, err := argInt(args, "id")
	if err != nil {
		return nil, err
	}
	text, err := rc.platform.RenderTree(model.PostID(id))
	if err != nil {
		return nil, err
	}
	return map[string]any{"text": text}, nil
}

func mostEndorsedPost(rc *runContext, _ map[string]any) (map[string]any, error) {
	id, err := rc.platform.MostEndorsedPost()
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": int64(id)}, nil
}

func mostEndorsedAccount(rc *runContext, _ map[string]any) (map[string]any, error) {
	handle, err := rc.platform.MostEndorsedAccount()
	if err != nil {
		return nil, err
	}
	return map[string]any{"handle": handle}, nil
}

func stats(rc *runContext, _ map[string]any) (map[string]any, error) {
	return statsFields(rc.platform.Stats(), rc.platform.CountPosts()), nil
}

func erase(rc *runContext, _ map[string]any) (map[string]any, error) {
	rc.platform.ErasePlatform()
	return nil, nil
}

// saveLoad writes a snapshot and loads it back into the same platform.
func saveLoad(rc *runContext, args map[string]any) (map[string]any, error) {
	name, ok := optString(args, "file")
	if !ok {
		name = "snapshot.db"
	}
	path := filepath.Join(rc.tempDir, filepath.Base(name))
	if err := rc.platform.SavePlatform(rc.ctx, path); err != nil {
		return nil, err
	}
	return nil, rc.platform.LoadPlatform(rc.ctx, path)
}

func summaryFields(sum platform.AccountSummary) map[string]any {
	return map[string]any{
		"id":            int64(sum.ID),
		"handle":        sum.Handle,
		"description":   sum.Description,
		"post_count":    int64(sum.PostCount()),
		"original":      int64(sum.OriginalPosts),
		"comment":       int64(sum.CommentPosts),
		"endorsement":   int64(sum.EndorsementPosts),
		"endorse_count": int64(sum.EndorsementsReceived),
		"text":          sum.String(),
	}
}

func statsFields(st platform.Stats, posts int) map[string]any {
	fields := map[string]any{
		"accounts":    int64(st.Accounts),
		"original":    int64(st.OriginalPosts),
		"comment":     int64(st.CommentPosts),
		"endorsement": int64(st.EndorsementPosts),
		"posts":       int64(posts),
	}
	if st.MostEndorsedPost != nil {
		fields["most_endorsed_post"] = int64(*st.MostEndorsedPost)
	}
	if st.MostEndorsedAccount != nil {
		fields["most_endorsed_account"] = *st.MostEndorsedAccount
	}
	return fields
}

// ArgError reports a missing or mistyped action argument.
type ArgError struct {
	Key     string
	Message string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("arg %q: %s", e.Key, e.Message)
}

func argString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", &ArgError{Key: key, Message: "required"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ArgError{Key: key, Message: fmt.Sprintf("want string, got %T", v)}
	}
	return s, nil
}

func optString(args map[string]any, key string) (string, bool) {
	s, err := argString(args, key)
	return s, err == nil
}

func argInt(args map[string]any, key string) (int64, error) {
	v, ok := args[key]
	if !ok {
		return 0, &ArgError{Key: key, Message: "required"}
	}
	n, ok := toInt64(v)
	if !ok {
		return 0, &ArgError{Key: key, Message: fmt.Sprintf("want integer, got %T", v)}
	}
	return n, nil
}

// toInt64 converts the integer forms produced by YAML decoding and by
// action results.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}
