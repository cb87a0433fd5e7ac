package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roach88/socialgraph/internal/platform"
	"github.com/roach88/socialgraph/internal/seed"
	"github.com/roach88/socialgraph/internal/store"
	"github.com/roach88/socialgraph/internal/testutil"
)

// Harness executes one scenario against one platform.
type Harness struct {
	rc     *runContext
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs on a fresh platform for isolation. Snapshot ids are
// deterministic so repeated runs produce identical traces.
//
// Execution flow:
// 1. Create a fresh platform and temp directory
// 2. Apply the seed file, if any
// 3. Execute setup steps (any failure aborts)
// 4. Execute flow steps with expect validation
// 5. Evaluate assertions
//
// The returned error covers infrastructure failures only. Failed
// expectations are reported through Result.
func Run(scenario *Scenario) (*Result, error) {
	tempDir, err := os.MkdirTemp("", "socialgraph-scenario-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in scenarios
	p := platform.New(
		platform.WithLogger(logger),
		platform.WithCodec(&store.SQLiteCodec{IDs: testutil.NewSequentialIDGenerator(scenario.Name)}),
	)

	h := &Harness{
		rc: &runContext{
			ctx:      context.Background(),
			platform: p,
			tempDir:  tempDir,
		},
		logger: logger.With("scenario", scenario.Name),
	}

	result := NewResult()
	if err := h.applySeed(scenario.Seed, result); err != nil {
		return nil, fmt.Errorf("failed to apply seed: %w", err)
	}
	if err := h.executeSetup(scenario.Setup, result); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}
	h.executeFlow(scenario.Flow, result)

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, p) {
		result.AddError(errMsg)
	}
	return result, nil
}

func (h *Harness) applySeed(path string, result *Result) error {
	if path == "" {
		return nil
	}
	s, err := seed.Load(path)
	if err != nil {
		return err
	}
	res, err := seed.Apply(h.rc.platform, s)
	if err != nil {
		return err
	}
	result.AddTrace("seed", "seed", map[string]any{"file": s.Name}, CaseOK, map[string]any{
		"accounts": int64(len(res.Accounts)),
		"posts":    int64(len(res.Posts)),
	})
	return nil
}

// executeSetup runs all setup steps. Setup steps are assumed to succeed.
func (h *Harness) executeSetup(setup []ActionStep, result *Result) error {
	for i, step := range setup {
		out, err := actions[step.Action](h.rc, step.Args)
		result.AddTrace("setup", step.Action, step.Args, outcomeOf(err), out)
		if err != nil {
			return fmt.Errorf("setup[%d] %s: %w", i, step.Action, err)
		}
	}
	return nil
}

// executeFlow runs all flow steps, recording mismatches in result.
// Execution continues after a mismatch so the trace is complete.
func (h *Harness) executeFlow(flow []FlowStep, result *Result) {
	for i, step := range flow {
		out, err := actions[step.Invoke](h.rc, step.Args)
		outcome := outcomeOf(err)
		result.AddTrace("flow", step.Invoke, step.Args, outcome, out)
		h.logger.Debug("step executed", "step", i, "action", step.Invoke, "outcome", outcome)

		if platform.CodeOf(err) == "" && err != nil {
			result.AddError(fmt.Sprintf("flow[%d] %s: %v", i, step.Invoke, err))
			continue
		}

		expected := CaseOK
		if step.Expect != nil {
			expected = step.Expect.Case
		}
		if outcome != expected {
			result.AddError(fmt.Sprintf("flow[%d] %s: expected case %s, got %s (%v)",
				i, step.Invoke, expected, outcome, err))
			continue
		}
		if step.Expect != nil && !matchArgs(out, step.Expect.Result) {
			result.AddError(fmt.Sprintf("flow[%d] %s: expected result %v, got %v",
				i, step.Invoke, step.Expect.Result, out))
		}
	}
}

// outcomeOf maps an action error to the trace outcome. Errors that are not
// platform errors (bad arguments) record "ERROR".
func outcomeOf(err error) string {
	if err == nil {
		return CaseOK
	}
	if code := platform.CodeOf(err); code != "" {
		return string(code)
	}
	return "ERROR"
}
