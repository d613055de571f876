package core

// Step records one capability invocation performed by the reasoning loop.
type Step struct {
	Tool        string `json:"tool"`
	Input       string `json:"input"`
	Observation string `json:"observation"`
}

// Trace is the ordered record of capability invocations that led to a final
// answer. It is transient, owned by a single request.
type Trace struct {
	ID          string `json:"id"`
	Steps       []Step `json:"steps"`
	FinalAnswer string `json:"final_answer"`
}

// NewTrace creates an empty trace with a fresh identifier.
func NewTrace() *Trace {
	return &Trace{ID: NewID()}
}

// Add appends a step to the trace.
func (t *Trace) Add(s Step) { t.Steps = append(t.Steps, s) }

// Len returns the number of capability invocations recorded so far.
func (t *Trace) Len() int { return len(t.Steps) }

// LastObservation returns the observation of the most recent step, or "" if
// no capability has been invoked yet.
func (t *Trace) LastObservation() string {
	if len(t.Steps) == 0 {
		return ""
	}
	return t.Steps[len(t.Steps)-1].Observation
}
