package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/socialgraph/internal/platform"
	"github.com/roach88/socialgraph/internal/testutil"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Step: 1, Phase: "flow", Action: "create_account", Args: map[string]any{"handle": "alice"}, Outcome: CaseOK},
		{Step: 2, Phase: "flow", Action: "create_post", Args: map[string]any{"handle": "alice", "message": "hi"}, Outcome: CaseOK},
		{Step: 3, Phase: "flow", Action: "create_post", Args: map[string]any{"handle": "alice", "message": "again"}, Outcome: CaseOK},
	}
}

func TestAssertTraceContains(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceContains(trace, Assertion{Action: "create_post", Args: map[string]any{"message": "again"}}))
	assert.Error(t, assertTraceContains(trace, Assertion{Action: "create_post", Args: map[string]any{"message": "nope"}}))
}

func TestAssertTraceOrder(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceOrder(trace, Assertion{Actions: []string{"create_account", "create_post"}}))

	err := assertTraceOrder(trace, Assertion{Actions: []string{"create_post", "create_account"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "should be before")

	err = assertTraceOrder(trace, Assertion{Actions: []string{"delete_post"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing action: delete_post")
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Action: "create_post", Count: 2}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Action: "delete_post", Count: 0}))
	assert.Error(t, assertTraceCount(trace, Assertion{Action: "create_post", Count: 1}))
}

func TestAssertFinalState(t *testing.T) {
	p := platform.New(platform.WithLogger(testutil.DiscardLogger()))
	require.NoError(t, p.Restore(testutil.SampleSnapshot()))

	assert.NoError(t, assertFinalState(p, Assertion{Expect: map[string]any{
		"accounts": 2, "original": 1, "comment": 2, "endorsement": 1, "most_endorsed_account": "alice",
	}}))

	err := assertFinalState(p, Assertion{Expect: map[string]any{"accounts": 3}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accounts=2")
}

func TestAssertAccount(t *testing.T) {
	p := platform.New(platform.WithLogger(testutil.DiscardLogger()))
	require.NoError(t, p.Restore(testutil.SampleSnapshot()))

	assert.NoError(t, assertAccount(p, Assertion{Handle: "bob", Expect: map[string]any{"comment": 1, "endorsement": 1}}))
	assert.Error(t, assertAccount(p, Assertion{Handle: "ghost", Expect: map[string]any{"id": 1}}))
}

func TestAssertRenderTree(t *testing.T) {
	p := platform.New(platform.WithLogger(testutil.DiscardLogger()))
	require.NoError(t, p.Restore(testutil.SampleSnapshot()))

	want := "ID: 3\nAccount: bob\nNo. endorsements: 0 | No. comments: 1\nhi alice\n|\n| > ID: 4\n    Account: alice\n    No. endorsements: 0 | No. comments: 0\n    hi bob\n"
	assert.NoError(t, assertRenderTree(p, Assertion{Post: 3, Text: want}))
	assert.Error(t, assertRenderTree(p, Assertion{Post: 3, Text: "ID: 3"}))
	assert.Error(t, assertRenderTree(p, Assertion{Post: 2, Text: "ID: 2"}))
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, valuesEqual(int64(3), 3))
	assert.True(t, valuesEqual("text\n", "text"))
	assert.False(t, valuesEqual(int64(3), "3"))
	assert.False(t, valuesEqual(nil, 1))
	assert.True(t, valuesEqual([]any{1}, []any{1}))
}

func TestEvaluateAssertions_UnknownType(t *testing.T) {
	errs := EvaluateAssertions(NewResult(), []Assertion{{Type: "vibes"}}, nil)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "unknown assertion type")
}
