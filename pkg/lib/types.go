package lib

import (
	"fmt"
	"syscall"
	"time"
)

// State mirrors the lifecycle of a launched child.
// It's intentionally minimal; "terminated-unreaped" never shows up here
// because the launcher reaps every child it creates.
type State int

const (
	StateUnspecified State = iota
	StateRunning
	StateExited
	StateSignaled
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateSignaled:
		return "signaled"
	default:
		return "unspecified"
	}
}

// ExitStatus describes how a child ended: a normal exit code, or the signal
// that terminated it. Signal termination is reported, never treated as a
// launcher failure.
type ExitStatus struct {
	Code   int
	Signal syscall.Signal
}

// Signaled reports whether the child was terminated by a signal rather than
// exiting normally.
func (e ExitStatus) Signaled() bool { return e.Signal != 0 }

func (e ExitStatus) String() string {
	if e.Signaled() {
		return fmt.Sprintf("signal %s", e.Signal)
	}
	return fmt.Sprintf("exit %d", e.Code)
}

// Status captures runtime state and timestamps of one launch.
type Status struct {
	State     State
	PID       int
	Exit      *ExitStatus
	StartTime time.Time
	EndTime   *time.Time
}
