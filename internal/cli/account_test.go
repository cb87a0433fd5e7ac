package cli

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountCreateAndDescribe(t *testing.T) {
	state := statePath(t)

	out, _, err := runCLI(t, state, "account", "create", "alice", "--description", "writes a lot")
	require.NoError(t, err)
	assert.Equal(t, "created account 1\n", out)

	_, _, err = runCLI(t, state, "post", "create", "alice", "hello world")
	require.NoError(t, err)

	out, _, err = runCLI(t, state, "account", "describe", "alice")
	require.NoError(t, err)
	assert.Equal(t, "ID: 1\n"+
		"Handle: alice\n"+
		"Description: writes a lot\n"+
		"Post count: 1 (original: 1 | comment: 0 | endorsement: 0)\n"+
		"Endorse count: 0\n", out)
}

func TestAccountCreate_DomainErrorLeavesNoState(t *testing.T) {
	state := statePath(t)

	out, stderr, err := runCLI(t, state, "account", "create", "has space")

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Empty(t, out)
	assert.Contains(t, stderr, "Error [INVALID_HANDLE]")
	assert.NoFileExists(t, state)
}

func TestAccountCreate_DuplicateJSON(t *testing.T) {
	state := statePath(t)
	_, _, err := runCLI(t, state, "account", "create", "alice")
	require.NoError(t, err)

	out, _, err := runCLI(t, state, "--format", "json", "account", "create", "alice")

	require.Error(t, err)
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "HANDLE_ALREADY_EXISTS", resp.Error.Code)
	assert.Equal(t, `handle "alice" already exists`, resp.Error.Message)
}

func TestAccountRemove(t *testing.T) {
	state := statePath(t)
	for _, args := range [][]string{
		{"account", "create", "alice"},
		{"account", "create", "bob"},
		{"post", "create", "alice", "hello"},
		{"post", "endorse", "bob", "1"},
	} {
		_, _, err := runCLI(t, state, args...)
		require.NoError(t, err, "%v", args)
	}

	out, _, err := runCLI(t, state, "account", "remove", "alice")
	require.NoError(t, err)
	assert.Equal(t, "removed account alice\n", out)

	out, _, err = runCLI(t, state, "--format", "json", "stats")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{
		"accounts": 1, "original_posts": 0, "comment_posts": 0,
		"endorsement_posts": 0, "posts": 0}}`, out)

	out, _, err = runCLI(t, state, "account", "remove", "--id", "2")
	require.NoError(t, err)
	assert.Equal(t, "removed account 2\n", out)

	_, _, err = runCLI(t, state, "account", "remove", "--id", "2")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestAccountRemove_NeedsExactlyOneSelector(t *testing.T) {
	state := statePath(t)

	_, _, err := runCLI(t, state, "account", "remove")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = runCLI(t, state, "account", "remove", "alice", "--id", "1")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestAccountRenameAndSetDescription(t *testing.T) {
	state := statePath(t)
	_, _, err := runCLI(t, state, "account", "create", "alice")
	require.NoError(t, err)
	_, _, err = runCLI(t, state, "post", "create", "alice", "hello")
	require.NoError(t, err)

	out, _, err := runCLI(t, state, "account", "rename", "alice", "alicia")
	require.NoError(t, err)
	assert.Equal(t, "renamed alice to alicia\n", out)

	_, _, err = runCLI(t, state, "account", "set-description", "alicia", "new bio")
	require.NoError(t, err)

	out, _, err = runCLI(t, state, "post", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Account: alicia\n")

	out, _, err = runCLI(t, state, "--format", "json", "account", "describe", "alicia")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{
		"id": 1, "handle": "alicia", "description": "new bio",
		"original_posts": 1, "comment_posts": 0, "endorsement_posts": 0,
		"endorsements_received": 0}}`, out)

	_, _, err = runCLI(t, state, "account", "describe", "alice")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestAccountList(t *testing.T) {
	state := statePath(t)

	out, _, err := runCLI(t, state, "account", "list")
	require.NoError(t, err)
	assert.Equal(t, "No accounts.\n", out)

	_, _, err = runCLI(t, state, "account", "create", "alice", "--description", "first")
	require.NoError(t, err)
	_, _, err = runCLI(t, state, "account", "create", "bob")
	require.NoError(t, err)

	out, _, err = runCLI(t, state, "account", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "HANDLE")
	assert.Regexp(t, `\|\s+1\s+\|\s+alice\s+\|\s+first\s+\|`, out)
	assert.Regexp(t, `\|\s+2\s+\|\s+bob\s+\|`, out)

	out, _, err = runCLI(t, state, "--format", "json", "account", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":[
		{"id": 1, "handle": "alice", "description": "first"},
		{"id": 2, "handle": "bob", "description": ""}]}`, out)
}

func TestReadOnlyCommandDoesNotCreateState(t *testing.T) {
	state := statePath(t)

	_, _, err := runCLI(t, state, "stats")

	require.NoError(t, err)
	_, statErr := os.Stat(state)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCorruptStateIsCommandError(t *testing.T) {
	state := statePath(t)
	require.NoError(t, os.WriteFile(state, []byte("not a database"), 0o644))

	_, stderr, err := runCLI(t, state, "stats")

	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "STORAGE_IO_ERROR")
}
