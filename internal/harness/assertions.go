package harness

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/roach88/socialgraph/internal/model"
	"github.com/roach88/socialgraph/internal/platform"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %v -> %s\n", event.Step, event.Action, event.Args, event.Outcome)
		}
	}
	return buf.String()
}

// assertTraceContains checks if the trace contains a step matching the
// specified action and args (subset match).
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	for _, event := range trace {
		if event.Action == assertion.Action && matchArgs(event.Args, assertion.Args) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("action %s with args %v", assertion.Action, assertion.Args),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks if actions first appear in the specified order.
// Actions don't need to be consecutive (intervening actions are allowed).
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		if _, seen := positions[event.Action]; !seen {
			positions[event.Action] = i + 1 // 1-indexed for readability
		}
	}

	for _, action := range assertion.Actions {
		if positions[action] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all actions present: %v", assertion.Actions),
				Actual:   fmt.Sprintf("missing action: %s", action),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(assertion.Actions); i++ {
		prev := assertion.Actions[i-1]
		curr := assertion.Actions[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("actions in order: %v", assertion.Actions),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}
	return nil
}

// assertTraceCount checks if the action appears exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Action == assertion.Action {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Action),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertFinalState matches the platform stats against the expected fields.
// The aggregate keys are absent when no posts exist; expecting them then
// fails.
func assertFinalState(p *platform.Platform, assertion Assertion) error {
	actual := statsFields(p.Stats(), p.CountPosts())
	if matchArgs(actual, assertion.Expect) {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalState,
		Expected: formatFields(assertion.Expect),
		Actual:   formatFields(actual),
	}
}

// assertAccount matches the account summary against the expected fields.
func assertAccount(p *platform.Platform, assertion Assertion) error {
	sum, err := p.DescribeAccount(assertion.Handle)
	if err != nil {
		return &AssertionError{
			Type:     AssertAccount,
			Expected: fmt.Sprintf("account %s with %s", assertion.Handle, formatFields(assertion.Expect)),
			Actual:   err.Error(),
		}
	}

	actual := summaryFields(sum)
	if matchArgs(actual, assertion.Expect) {
		return nil
	}
	return &AssertionError{
		Type:     AssertAccount,
		Expected: formatFields(assertion.Expect),
		Actual:   formatFields(actual),
	}
}

// assertRenderTree compares the rendered tree exactly. Trailing newlines
// in the expected text (as YAML block scalars produce) are ignored.
func assertRenderTree(p *platform.Platform, assertion Assertion) error {
	want := strings.TrimRight(assertion.Text, "\n")
	got, err := p.RenderTree(model.PostID(assertion.Post))
	if err != nil {
		return &AssertionError{
			Type:     AssertRenderTree,
			Expected: fmt.Sprintf("tree of post %d", assertion.Post),
			Actual:   err.Error(),
		}
	}
	if got != want {
		return &AssertionError{
			Type:     AssertRenderTree,
			Expected: "\n" + want,
			Actual:   "\n" + got,
		}
	}
	return nil
}

// formatFields renders a field map with sorted keys for stable messages.
func formatFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// matchArgs checks if actual contains all expected keys (subset match).
// Extra keys in actual are ignored.
func matchArgs(actual map[string]any, expected map[string]any) bool {
	for key, expectedVal := range expected {
		actualVal, exists := actual[key]
		if !exists {
			return false
		}
		if !valuesEqual(actualVal, expectedVal) {
			return false
		}
	}
	return true
}

// valuesEqual compares two values for equality. Integers compare by value
// regardless of their Go type; YAML decodes them as int while results use
// int64.
func valuesEqual(actual, expected any) bool {
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}

	if a, ok := toInt64(actual); ok {
		e, ok := toInt64(expected)
		return ok && a == e
	}
	if e, ok := expected.(string); ok {
		if a, ok := actual.(string); ok {
			return strings.TrimRight(a, "\n") == strings.TrimRight(e, "\n")
		}
		return false
	}
	return reflect.DeepEqual(actual, expected)
}

// EvaluateAssertions evaluates all assertions against the result and the
// final platform state. Returns a slice of error messages for failed
// assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, p *platform.Platform) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertFinalState:
			err = assertFinalState(p, assertion)
		case AssertAccount:
			err = assertAccount(p, assertion)
		case AssertRenderTree:
			err = assertRenderTree(p, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}
	return errors
}
