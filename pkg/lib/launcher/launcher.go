// Package launcher creates child OS processes and reports how they end.
//
// A Launcher owns a table of the children it has created, keyed by generated
// identifier; every child is reaped by a dedicated goroutine, so callers that
// never Wait do not accumulate zombie records. Two creation strategies sit
// behind the same interface (see Strategy); they are interchangeable and
// produce identical observable results.
package launcher

import (
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/LasseHaedge/procspawn/pkg/lib"
	"github.com/LasseHaedge/procspawn/pkg/lib/capture"
)

var logger = log.New(io.Discard, "launcher: ", log.LstdFlags)

// Launcher manages processes started by this library. The zero value is not
// usable; construct with New.
type Launcher struct {
	mu      sync.RWMutex
	entries map[string]*launchEntry
}

// launchEntry tracks one child from creation to reap.
type launchEntry struct {
	id   string
	path string // resolved executable
	pid  int

	// status fields
	mu      sync.RWMutex
	state   lib.State
	exit    *lib.ExitStatus
	start   time.Time
	end     *time.Time
	waitErr error

	// closed by the reaper once the final status is recorded
	done chan struct{}

	// capture buffers, nil unless the request asked for capture
	stdout *capture.Buffer
	stderr *capture.Buffer

	// pty primary when the request asked for a PTY and is not capturing
	pty *os.File

	// pipe-drain goroutines owned by this entry
	copiers sync.WaitGroup
}

// New creates an empty Launcher.
func New() *Launcher {
	return &Launcher{entries: make(map[string]*launchEntry)}
}

func (l *Launcher) getEntry(id string) (*launchEntry, error) {
	l.mu.RLock()
	e := l.entries[id]
	l.mu.RUnlock()
	if e == nil {
		return nil, os.ErrNotExist
	}
	return e, nil
}

func (e *launchEntry) lockAndGetStatus() lib.Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st := lib.Status{State: e.state, PID: e.pid, StartTime: e.start}
	if e.exit != nil {
		ex := *e.exit
		st.Exit = &ex
	}
	if e.end != nil {
		t := *e.end
		st.EndTime = &t
	}
	return st
}
