package launcher

import (
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// startSpawn is the direct-spawn strategy, built on os/exec. On Linux the
// runtime uses a vfork-style clone underneath, so the caller's page tables
// are never duplicated.
func startSpawn(req *Request, path string, argv []string, e *launchEntry) (*startedChild, error) {
	cmd := &exec.Cmd{
		Path:        path,
		Args:        argv,
		Dir:         req.Dir,
		Env:         req.environment(),
		ExtraFiles:  req.ExtraFiles,
		SysProcAttr: sysProcAttr(req.DieWithParent),
	}

	if req.Stdio.PTY {
		// pty.Start adds Setsid/Setctty; Setpgid must stay off because
		// setpgid fails for a session leader.
		cmd.SysProcAttr = ptySysProcAttr(req.DieWithParent)
		return startSpawnPTY(cmd, e)
	}

	cmd.Stdin = req.Stdio.Stdin
	cmd.Stdout = spawnWriter(req.Stdio.Stdout, os.Stdout, e.stdout)
	cmd.Stderr = spawnWriter(req.Stdio.Stderr, os.Stderr, e.stderr)

	if err := cmd.Start(); err != nil {
		return nil, classifyStartError(err)
	}

	return &startedChild{
		pid: cmd.Process.Pid,
		// cmd.Wait also waits for the capture plumbing, so buffers are
		// complete by the time it returns.
		wait: func() (*os.ProcessState, error) {
			err := cmd.Wait()
			return cmd.ProcessState, err
		},
	}, nil
}

// spawnWriter maps a StreamMode onto an exec.Cmd writer. nil routes to the
// null device.
func spawnWriter(mode StreamMode, inherited *os.File, buf io.Writer) io.Writer {
	switch mode {
	case StreamCapture:
		return buf
	case StreamDiscard:
		return nil
	default:
		return inherited
	}
}

// startSpawnPTY starts the child on a pseudo-terminal. pty.Start puts the
// child in a new session with the replica as its controlling terminal.
func startSpawnPTY(cmd *exec.Cmd, e *launchEntry) (*startedChild, error) {
	primary, err := pty.Start(cmd)
	if err != nil {
		return nil, classifyStartError(err)
	}

	if e.stdout != nil {
		// Capture requested: the entry owns the primary and drains it.
		// Copy ends with EIO once the child side closes; that's EOF here.
		e.copiers.Add(1)
		go func() {
			defer e.copiers.Done()
			_, _ = io.Copy(e.stdout, primary)
			_ = primary.Close()
		}()
	} else {
		e.pty = primary
	}

	return &startedChild{
		pid: cmd.Process.Pid,
		wait: func() (*os.ProcessState, error) {
			err := cmd.Wait()
			return cmd.ProcessState, err
		},
	}, nil
}
