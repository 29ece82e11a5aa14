package harness

// TraceEvent records the observable outcome of one scenario step.
// Counters reflect the session record after the step ran.
type TraceEvent struct {
	Type        string   `json:"type"`
	Tile        string   `json:"tile,omitempty"`
	IsMatch     *bool    `json:"is_match,omitempty"`
	MatchedIDs  []string `json:"matched_ids,omitempty"`
	Loaded      *bool    `json:"loaded,omitempty"`
	Paused      *bool    `json:"paused,omitempty"`
	Round       int      `json:"round"`
	Selected    int      `json:"selected"`
	Matched     int      `json:"matched"`
	MissHistory []int    `json:"miss_history,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result to accumulate into.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds an assertion failure and marks the result failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func boolPtr(b bool) *bool { return &b }
