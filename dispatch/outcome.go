package dispatch

import (
	"strings"
	"time"

	apperrors "github.com/kbukum/llmcouncil/errors"
)

// FallbackMessage is reported when a failure carries no message of its own.
const FallbackMessage = "An error occurred while fetching the response"

// State is the lifecycle state of one provider's outcome.
type State int

const (
	// Pending means the provider call has not resolved yet.
	Pending State = iota
	// Success means the provider answered with text.
	Success
	// Failure means the provider call failed terminally.
	Failure
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the result cell of one provider for one submission. It is
// created Pending and transitions exactly once to Success or Failure.
type Outcome struct {
	Provider   string
	Model      string
	Submission uint64
	State      State
	// Text is the answer, set on Success.
	Text string
	// Message describes the failure, set on Failure.
	Message string
	// Code and Status classify a failure; Status is 0 without an HTTP response.
	Code   apperrors.ErrorCode
	Status int
	// Duration is the wall time from dispatch to resolution.
	Duration time.Duration
}

// IsPending reports whether the outcome is unresolved.
func (o Outcome) IsPending() bool { return o.State == Pending }

func pendingOutcome(sel Selection, submission uint64) Outcome {
	return Outcome{
		Provider:   sel.Provider,
		Model:      sel.Model,
		Submission: submission,
		State:      Pending,
	}
}

func (o Outcome) succeed(text string) Outcome {
	o.State, o.Text = Success, text
	return o
}

func (o Outcome) fail(appErr *apperrors.AppError, status int) Outcome {
	o.State = Failure
	o.Message = strings.TrimSpace(appErr.Message)
	if o.Message == "" {
		o.Message = FallbackMessage
	}
	o.Code = appErr.Code
	o.Status = status
	return o
}
