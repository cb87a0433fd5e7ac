package harness

// CaseOK is the outcome of a step that succeeded. Failed steps record the
// platform error code instead.
const CaseOK = "ok"

// TraceEvent records one executed step.
type TraceEvent struct {
	Step    int            `json:"step"`
	Phase   string         `json:"phase"` // "seed", "setup" or "flow"
	Action  string         `json:"action"`
	Args    map[string]any `json:"args,omitempty"`
	Outcome string         `json:"outcome"`
	Result  map[string]any `json:"result,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion matched.
	Pass bool `json:"pass"`

	// Trace contains every executed step in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step to the trace.
func (r *Result) AddTrace(phase, action string, args map[string]any, outcome string, result map[string]any) {
	r.Trace = append(r.Trace, TraceEvent{
		Step:    len(r.Trace) + 1,
		Phase:   phase,
		Action:  action,
		Args:    args,
		Outcome: outcome,
		Result:  result,
	})
}
