package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/LasseHaedge/procspawn/pkg/lib"
)

// Result is the immutable record of one finished launch.
type Result struct {
	ID  string
	PID int

	// Exit reports either the child's exit code or the signal that
	// terminated it. Signal death is a reported outcome, not an error.
	Exit lib.ExitStatus

	StartTime time.Time
	EndTime   time.Time

	// Stdout/Stderr hold the complete captured streams when the request
	// configured StreamCapture; nil otherwise.
	Stdout []byte
	Stderr []byte
}

// reap collects the child's final status exactly once and records it on the
// entry. Runs on its own goroutine per launch.
func (l *Launcher) reap(e *launchEntry, child *startedChild) {
	logger.Printf("waiting for %s (pid %d)", e.id, e.pid)

	ps, err := child.wait()
	if err != nil {
		// A nonzero exit surfaces as *exec.ExitError on the spawn path;
		// that's a result, not a wait failure.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			ps, err = exitErr.ProcessState, nil
		}
	}

	// Capture pipes hit EOF once the child's descriptors are gone; let the
	// drain goroutines finish so the buffers are complete before sealing.
	e.copiers.Wait()
	e.stdout.Close()
	e.stderr.Close()

	e.mu.Lock()
	now := time.Now()
	e.end = &now
	if err != nil {
		logger.Printf("wait for %s failed: %v", e.id, err)
		e.waitErr = fmt.Errorf("%w: %v", ErrWaitFailed, err)
		e.state = lib.StateUnspecified
	} else {
		ex := exitStatusOf(ps)
		e.exit = &ex
		if ex.Signaled() {
			e.state = lib.StateSignaled
		} else {
			e.state = lib.StateExited
		}
		logger.Printf("%s finished: %s", e.id, ex)
	}
	e.mu.Unlock()

	close(e.done)
}

// exitStatusOf decodes the platform wait status.
func exitStatusOf(ps *os.ProcessState) lib.ExitStatus {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return lib.ExitStatus{Code: -1, Signal: ws.Signal()}
	}
	return lib.ExitStatus{Code: ps.ExitCode()}
}

// Wait blocks until the identified child has been reaped, then returns its
// Result. It never reports a different child's status. ctx only bounds the
// wait; the child keeps running if ctx expires.
func (l *Launcher) Wait(ctx context.Context, id string) (*Result, error) {
	e, err := l.getEntry(id)
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-e.done:
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.waitErr != nil {
		return nil, e.waitErr
	}
	res := &Result{
		ID:        e.id,
		PID:       e.pid,
		Exit:      *e.exit,
		StartTime: e.start,
		EndTime:   *e.end,
	}
	if e.stdout != nil {
		res.Stdout = e.stdout.Bytes()
	}
	if e.stderr != nil {
		res.Stderr = e.stderr.Bytes()
	}
	return res, nil
}
