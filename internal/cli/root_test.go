package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "socialgraph", cmd.Use)
	assert.Contains(t, cmd.Long, "snapshot")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"account", "create"}, {"account", "remove"}, {"account", "rename"},
		{"account", "set-description"}, {"account", "describe"}, {"account", "list"},
		{"post", "create"}, {"post", "endorse"}, {"post", "comment"},
		{"post", "delete"}, {"post", "show"}, {"post", "tree"},
		{"stats"}, {"erase"}, {"seed"}, {"test"},
	}

	for _, path := range commands {
		t.Run(path[len(path)-1], func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Setenv(StateEnvVar, "")
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	stateFlag := cmd.PersistentFlags().Lookup("state")
	require.NotNil(t, stateFlag)
	assert.Equal(t, DefaultStateFile, stateFlag.DefValue)
}

func TestStateFlagDefaultFromEnv(t *testing.T) {
	t.Setenv(StateEnvVar, "/tmp/elsewhere.db")

	cmd := NewRootCommand()

	assert.Equal(t, "/tmp/elsewhere.db", cmd.PersistentFlags().Lookup("state").DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, _, err := runCLI(t, statePath(t), "--format", "invalid", "stats")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVerboseLogsToStderr(t *testing.T) {
	state := statePath(t)

	stdout, stderr, err := runCLI(t, state, "-v", "account", "create", "alice")

	require.NoError(t, err)
	assert.Equal(t, "created account 1\n", stdout)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "state saved")
}
