package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// Error taxonomy. Failures are always returned to the immediate caller;
// match with errors.Is.
var (
	// ErrExecutableNotFound means the requested program could not be
	// located or is not executable. Not retryable.
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrResourceExhausted means the platform could not allocate the
	// resources for a new process. Retryable with backoff.
	ErrResourceExhausted = errors.New("process resources exhausted")

	// ErrWaitFailed means the underlying wait primitive errored; the caller
	// decides whether to retry or treat the child as abandoned.
	ErrWaitFailed = errors.New("wait failed")
)

// classifyStartError maps platform errors from process creation onto the
// taxonomy above. Errors outside the taxonomy pass through unchanged.
func classifyStartError(err error) error {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case unix.EAGAIN, unix.ENOMEM, unix.EMFILE, unix.ENFILE:
			return fmt.Errorf("%w: %v", ErrResourceExhausted, err)
		case unix.ENOENT, unix.ENOTDIR, unix.EACCES, unix.ENOEXEC:
			return fmt.Errorf("%w: %v", ErrExecutableNotFound, err)
		}
	}
	// LookPath wraps fs errors rather than raw errnos.
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %v", ErrExecutableNotFound, err)
	}
	return err
}
