package process

import "strings"

// State models the running status of a server process
type State string

const (
	// Pending is the state of a process accepted by the server but not started yet
	Pending State = "pending"

	// Running is the state of a started process
	Running State = "running"

	// Succeeded indicates the process has completed successfully. This is a terminal state.
	Succeeded State = "succeeded"

	// Failed indicates the process has completed with a failure. This is a terminal state.
	Failed State = "failed"
)

// ParseState reads a state as reported by the server, tolerating a few common synonyms
func ParseState(s string) State {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "queued", "waiting":
		return Pending
	case "running", "started", "active":
		return Running
	case "succeeded", "success", "done", "completed", "complete":
		return Succeeded
	case "failed", "failure", "error", "aborted":
		return Failed
	default:
		return State(s)
	}
}

// IsValid checks the value of a process state
func (s State) IsValid() bool {
	switch s {
	case Pending, Running, Succeeded, Failed:
		return true
	default:
		return false
	}
}

// IsTerminal tells if no further transition may occur from this state
func (s State) IsTerminal() bool {
	return s == Succeeded || s == Failed
}

func (s State) String() string {
	return string(s)
}

func (s State) rank() int {
	switch s {
	case Pending:
		return 0
	case Running:
		return 1
	default:
		return 2
	}
}

// canAdvanceTo tells if moving from s to next is a forward transition
func (s State) canAdvanceTo(next State) bool {
	if s.IsTerminal() {
		return false
	}
	return next.rank() >= s.rank()
}
