package launcher

import (
	"io"
	"os"

	"github.com/creack/pty"
)

// startForkExec is the duplicate-then-replace strategy, built on
// os.StartProcess: the runtime forks and the duplicate execs the target
// before any caller-visible code can run in it. All stream redirection is
// established through the inherited file table, so it is in place strictly
// before image replacement.
func startForkExec(req *Request, path string, argv []string, e *launchEntry) (*startedChild, error) {
	var (
		files [3]*os.File
		// child-side descriptors the parent must drop once the child
		// holds its own copies; closed on the failure path too
		closeAfterStart []io.Closer
	)

	sys := sysProcAttr(req.DieWithParent)

	if req.Stdio.PTY {
		primary, replica, err := pty.Open()
		if err != nil {
			return nil, classifyStartError(err)
		}
		files[0], files[1], files[2] = replica, replica, replica
		closeAfterStart = append(closeAfterStart, replica)
		sys = ptySysProcAttr(req.DieWithParent)
		sys.Setsid = true
		sys.Setctty = true // controlling terminal is child fd 0

		if e.stdout != nil {
			e.copiers.Add(1)
			go func() {
				defer e.copiers.Done()
				_, _ = io.Copy(e.stdout, primary)
				_ = primary.Close()
			}()
		} else {
			e.pty = primary
		}
	} else {
		stdin, closers, err := stdinFile(req.Stdio.Stdin)
		if err != nil {
			return nil, err
		}
		closeAfterStart = append(closeAfterStart, closers...)
		files[0] = stdin

		stdout, closers, err := streamFile(req.Stdio.Stdout, os.Stdout, e.stdout, &e.copiers)
		if err != nil {
			closeAll(closeAfterStart)
			return nil, err
		}
		closeAfterStart = append(closeAfterStart, closers...)
		files[1] = stdout

		stderr, closers, err := streamFile(req.Stdio.Stderr, os.Stderr, e.stderr, &e.copiers)
		if err != nil {
			closeAll(closeAfterStart)
			return nil, err
		}
		closeAfterStart = append(closeAfterStart, closers...)
		files[2] = stderr
	}

	attr := &os.ProcAttr{
		Dir:   req.Dir,
		Env:   req.environment(), // nil inherits, same as the spawn path
		Files: append(files[:], req.ExtraFiles...),
		Sys:   sys,
	}

	proc, err := os.StartProcess(path, argv, attr)
	// Success or not, the parent's copies of child-side descriptors go now;
	// capture pipes would otherwise never see EOF.
	closeAll(closeAfterStart)
	if err != nil {
		return nil, classifyStartError(err)
	}

	return &startedChild{pid: proc.Pid, wait: proc.Wait}, nil
}

func closeAll(cs []io.Closer) {
	for _, c := range cs {
		_ = c.Close()
	}
}
