package cli

import (
	"bytes"
	"path/filepath"
	"testing"
)

// runCLI executes the root command against the state file and returns
// stdout, stderr and the command error.
func runCLI(t *testing.T, state string, args ...string) (string, string, error) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--state", state}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func statePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "state.db")
}
