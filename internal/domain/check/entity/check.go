package entity

import "time"

// Result messages
const (
	MessageInvalidData  = "Invalid data structure"
	MessageUnknownError = "Unknown error"
)

// Result is the outcome of a single API contract check.
// Data is kept on success and on structural failure for diagnostics.
type Result struct {
	Name      string    `json:"name"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Report groups the results of one suite run
type Report struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Passed     bool      `json:"passed"`
	Results    []Result  `json:"results"`
}

// Failed returns the results that did not pass
func (r Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Success {
			failed = append(failed, res)
		}
	}
	return failed
}
