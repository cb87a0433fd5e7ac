package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ScenarioFiles(t *testing.T) {
	files, err := FindScenarios(filepath.Join("testdata", "scenarios"), "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, strings.Join(result.Errors, "\n"))
		})
	}
}

func TestRunWithGolden_AliceBob(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "alice_bob.yaml"))
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "one account",
		Flow: []FlowStep{
			{Invoke: "create_account", Args: map[string]any{"handle": "alice"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, TraceEvent{
		Step:    1,
		Phase:   "flow",
		Action:  "create_account",
		Args:    map[string]any{"handle": "alice"},
		Outcome: CaseOK,
		Result:  map[string]any{"id": int64(1)},
	}, result.Trace[0])
}

func TestRun_UnexpectedFailureFailsScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "unexpected",
		Description: "posting as an unknown handle",
		Flow: []FlowStep{
			{Invoke: "create_post", Args: map[string]any{"handle": "ghost", "message": "boo"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected case ok, got HANDLE_NOT_RECOGNISED")
	assert.Equal(t, "HANDLE_NOT_RECOGNISED", result.Trace[0].Outcome)
}

func TestRun_ResultMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "wrong expected id",
		Flow: []FlowStep{
			{
				Invoke: "create_account",
				Args:   map[string]any{"handle": "alice"},
				Expect: &ExpectClause{Case: CaseOK, Result: map[string]any{"id": 2}},
			},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "expected result")
}

func TestRun_BadArgs(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_args",
		Description: "id is not a number",
		Flow: []FlowStep{
			{Invoke: "delete_post", Args: map[string]any{"id": "one"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Equal(t, "ERROR", result.Trace[0].Outcome)
	assert.Contains(t, result.Errors[0], `arg "id"`)
}

func TestRun_SetupFailureAborts(t *testing.T) {
	scenario := &Scenario{
		Name:        "setup_fails",
		Description: "duplicate account in setup",
		Setup: []ActionStep{
			{Action: "create_account", Args: map[string]any{"handle": "alice"}},
			{Action: "create_account", Args: map[string]any{"handle": "alice"}},
		},
		Flow: []FlowStep{{Invoke: "stats"}},
	}

	_, err := Run(scenario)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup[1]")
}

func TestRun_MissingSeed(t *testing.T) {
	scenario := &Scenario{
		Name:        "missing_seed",
		Description: "seed file does not exist",
		Seed:        filepath.Join(t.TempDir(), "missing.cue"),
		Flow:        []FlowStep{{Invoke: "stats"}},
	}

	_, err := Run(scenario)

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_SeedTrace(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "seeded_tree.yaml"))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	require.NotEmpty(t, result.Trace)
	first := result.Trace[0]
	assert.Equal(t, "seed", first.Phase)
	assert.Equal(t, map[string]any{"accounts": int64(3), "posts": int64(5)}, first.Result)
}
