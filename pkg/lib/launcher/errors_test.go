package launcher

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
	"testing"

	"golang.org/x/sys/unix"
)

func TestClassifyStartError_Errnos(t *testing.T) {
	cases := []struct {
		name  string
		errno syscall.Errno
		want  error
	}{
		{"EAGAIN", unix.EAGAIN, ErrResourceExhausted},
		{"ENOMEM", unix.ENOMEM, ErrResourceExhausted},
		{"EMFILE", unix.EMFILE, ErrResourceExhausted},
		{"ENFILE", unix.ENFILE, ErrResourceExhausted},
		{"ENOENT", unix.ENOENT, ErrExecutableNotFound},
		{"ENOTDIR", unix.ENOTDIR, ErrExecutableNotFound},
		{"EACCES", unix.EACCES, ErrExecutableNotFound},
		{"ENOEXEC", unix.ENOEXEC, ErrExecutableNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// Creation failures surface as SyscallErrors wrapping an errno.
			err := classifyStartError(&os.SyscallError{Syscall: "fork", Err: c.errno})
			if !errors.Is(err, c.want) {
				t.Fatalf("%s: classified as %v, want %v", c.name, err, c.want)
			}
		})
	}
}

func TestClassifyStartError_LookupErrors(t *testing.T) {
	notFound := classifyStartError(&exec.Error{Name: "prog", Err: exec.ErrNotFound})
	if !errors.Is(notFound, ErrExecutableNotFound) {
		t.Fatalf("LookPath not-found classified as %v", notFound)
	}

	noPerm := classifyStartError(&exec.Error{Name: "prog", Err: os.ErrPermission})
	if !errors.Is(noPerm, ErrExecutableNotFound) {
		t.Fatalf("LookPath permission error classified as %v", noPerm)
	}
}

func TestClassifyStartError_PassesThroughUnknown(t *testing.T) {
	plain := errors.New("something unrelated")
	if got := classifyStartError(plain); got != plain {
		t.Fatalf("unrelated error rewritten to %v", got)
	}

	intr := classifyStartError(&os.SyscallError{Syscall: "fork", Err: unix.EINTR})
	if errors.Is(intr, ErrResourceExhausted) || errors.Is(intr, ErrExecutableNotFound) {
		t.Fatalf("EINTR wrongly pulled into the taxonomy: %v", intr)
	}
}
