//go:build !linux

package launcher

import (
	"syscall"
)

// sysProcAttr places the child in its own process group so Signal can target
// the whole child tree without touching the caller. DieWithParent has no
// portable equivalent off Linux and is ignored.
func sysProcAttr(dieWithParent bool) *syscall.SysProcAttr {
	_ = dieWithParent
	return &syscall.SysProcAttr{Setpgid: true}
}

func ptySysProcAttr(dieWithParent bool) *syscall.SysProcAttr {
	_ = dieWithParent
	return &syscall.SysProcAttr{}
}
