package generation

import "github.com/richinex/waypoint/roadmap"

// Outcome is the terminal state of a generation run.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeInvalidTopic Outcome = "invalid_topic"
	OutcomeOffTopic     Outcome = "off_topic"
	OutcomeExhausted    Outcome = "exhausted"
)

// User-facing failure reasons.
const (
	ReasonEmptyTopic = "No prompt provided"
	ReasonOffTopic   = "This model is trained only for technology-related learning roadmaps. Please enter a tech-related topic, role, or skill."
	ReasonExhausted  = "Failed to generate a valid roadmap. Please try again later."
)

// Attempt records one provider that was tried and failed.
type Attempt struct {
	Provider string
	Err      error
}

// Result is either a roadmap with the provider that produced it, or a
// failure with a reason.
type Result struct {
	Outcome  Outcome
	Roadmap  *roadmap.Canonical
	Source   string
	Reason   string
	Err      error
	Attempts []Attempt
}

// Success reports whether a roadmap was produced.
func (r Result) Success() bool {
	return r.Outcome == OutcomeSuccess
}

// Response is the wire body for a generation result.
type Response struct {
	Success bool               `json:"success"`
	Roadmap *roadmap.Canonical `json:"roadmap,omitempty"`
	Format  string             `json:"format,omitempty"`
	Source  string             `json:"source,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Response converts the result to its wire body.
func (r Result) Response() Response {
	if r.Success() {
		return Response{Success: true, Roadmap: r.Roadmap, Format: "json", Source: r.Source}
	}
	return Response{Success: false, Error: r.Reason}
}

func success(canon *roadmap.Canonical, source string, attempts []Attempt) Result {
	return Result{Outcome: OutcomeSuccess, Roadmap: canon, Source: source, Attempts: attempts}
}

func failure(outcome Outcome, reason string, err error, attempts []Attempt) Result {
	return Result{Outcome: outcome, Reason: reason, Err: err, Attempts: attempts}
}
