package launcher

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// Signal delivers sig to the identified child's process group. Terminating a
// child is deliberately a separate operation from launching and waiting; a
// signaled child still gets its termination reported through Wait.
func (l *Launcher) Signal(id string, sig syscall.Signal) error {
	e, err := l.getEntry(id)
	if err != nil {
		return err
	}

	// The child is its own group (or session) leader, so the negative pid
	// addresses the child and everything it spawned.
	if err := unix.Kill(-e.pid, sig); err != nil {
		return fmt.Errorf("signal %s to pid %d: %w", sig, e.pid, err)
	}
	return nil
}
