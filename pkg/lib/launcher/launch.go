package launcher

import (
	"os"
	"time"

	"github.com/LasseHaedge/procspawn/pkg/lib"
	"github.com/LasseHaedge/procspawn/pkg/lib/capture"
)

// Handle identifies a successfully launched child.
type Handle struct {
	// ID is the launcher-generated identifier used with Wait, Signal,
	// Status and Output.
	ID string

	// PID is the child's operating system process id.
	PID int

	pty *os.File
}

// PTY returns the pseudo-terminal primary when the request asked for a PTY
// without capture, else nil. The caller owns the returned file.
func (h *Handle) PTY() *os.File { return h.pty }

// Launch creates a child process per the request and registers it. On
// failure no child exists and nothing is registered.
//
// Each launched child holds a process-table slot until reaped. The launcher
// reaps every child itself, but a caller that abandons the handle without
// waiting leaves the terminated child's record held by this Launcher until
// the caller process exits.
func (l *Launcher) Launch(req Request) (*Handle, error) {
	path, argv, err := req.resolve()
	if err != nil {
		return nil, err
	}

	e := &launchEntry{
		id:    lib.NewID(),
		path:  path,
		state: lib.StateRunning,
		start: time.Now(),
		done:  make(chan struct{}),
	}
	if req.Stdio.Stdout == StreamCapture {
		e.stdout = capture.NewBuffer()
	}
	if req.Stdio.Stderr == StreamCapture && !req.Stdio.PTY {
		e.stderr = capture.NewBuffer()
	}

	logger.Printf("launching %s (%s)", path, req.Strategy)
	child, err := startChild(&req, path, argv, e)
	if err != nil {
		logger.Printf("launch of %s failed: %v", path, err)
		// Any capture plumbing that was wired before the failure unwinds
		// once its pipe ends are closed.
		e.copiers.Wait()
		e.stdout.Close()
		e.stderr.Close()
		return nil, err
	}
	e.pid = child.pid

	l.mu.Lock()
	l.entries[e.id] = e
	l.mu.Unlock()

	go l.reap(e, child)

	return &Handle{ID: e.id, PID: e.pid, pty: e.pty}, nil
}
