//go:build linux

package launcher

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// sysProcAttr places the child in its own process group so Signal can target
// the whole child tree without touching the caller.
func sysProcAttr(dieWithParent bool) *syscall.SysProcAttr {
	attr := &syscall.SysProcAttr{Setpgid: true}
	if dieWithParent {
		// Kernel delivers SIGKILL to the child when the parent thread dies.
		attr.Pdeathsig = unix.SIGKILL
	}
	return attr
}

// ptySysProcAttr is the PTY variant: no Setpgid, because the pty path makes
// the child a session leader and setpgid would fail in the child.
func ptySysProcAttr(dieWithParent bool) *syscall.SysProcAttr {
	attr := &syscall.SysProcAttr{}
	if dieWithParent {
		attr.Pdeathsig = unix.SIGKILL
	}
	return attr
}
