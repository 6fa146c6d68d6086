package session

import "errors"

// State is the presentation state of a session
type State int

const (
	StateInitial State = iota
	StateLoading
	StateResults
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateResults:
		return "results"
	default:
		return "initial"
	}
}

var (
	// ErrBusy is returned when a submission is already in flight
	ErrBusy = errors.New("a submission is already in progress")
	// ErrNoFiles is returned when submitting without attachments
	ErrNoFiles = errors.New("no files selected")
	// ErrNoResult is returned when exporting before any successful analysis
	ErrNoResult = errors.New("no analysis result to export")
)
