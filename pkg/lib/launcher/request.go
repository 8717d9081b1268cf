package launcher

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// StreamMode selects what happens to one of the child's standard streams.
type StreamMode int

const (
	// StreamInherit hands the child the caller's own stream.
	StreamInherit StreamMode = iota
	// StreamDiscard routes the stream to the null device.
	StreamDiscard
	// StreamCapture routes the stream into a caller-readable buffer,
	// losslessly and in write order. See Launcher.Output and Result.
	StreamCapture
)

// StdioPolicy describes the child's standard streams. The zero value
// inherits everything, with stdin fed from the null device.
type StdioPolicy struct {
	// Stdin feeds the child's standard input. nil means the null device.
	Stdin io.Reader

	Stdout StreamMode
	Stderr StreamMode

	// PTY allocates a pseudo-terminal: the child gets the replica as its
	// controlling terminal on fds 0/1/2 (in a new session) and Stdout/Stderr
	// modes above are ignored, except that StreamCapture on Stdout drains
	// the primary into the stdout buffer. Without capture the caller owns
	// the primary, available from Handle.PTY.
	PTY bool
}

// Request describes one child process to create. It owns no resources and
// may be discarded after Launch returns.
type Request struct {
	// Path is the executable: an absolute or relative path, or a bare name
	// resolved through $PATH.
	Path string

	// Args is the full argument vector. By Unix convention Args[0] is the
	// program name; that is not enforced. An empty Args is normalized to
	// a single element holding the resolved executable path.
	Args []string

	// Env holds environment overrides, merged over the caller's
	// environment. nil inherits the caller's environment unchanged.
	Env map[string]string

	// Dir is the child's working directory. Empty inherits the caller's.
	Dir string

	Stdio StdioPolicy

	// ExtraFiles are descriptors the child inherits as fds 3, 4, ...
	// Inheritance is strictly opt-in: every caller descriptor not listed
	// here (or covered by Stdio) is closed-on-launch.
	ExtraFiles []*os.File

	// Strategy selects the creation path; the zero value is StrategySpawn.
	Strategy Strategy

	// DieWithParent asks the kernel to kill the child when the caller
	// exits. Linux only (SIGKILL via parent-death signal); ignored
	// elsewhere.
	DieWithParent bool
}

// resolve validates the request and locates the executable, returning the
// resolved path and the normalized argument vector.
func (r *Request) resolve() (string, []string, error) {
	if r.Path == "" {
		return "", nil, errors.New("executable path is required")
	}

	// LookPath searches $PATH for bare names and checks the executable bit
	// for explicit paths.
	path, err := exec.LookPath(r.Path)
	if err != nil {
		return "", nil, classifyStartError(err)
	}

	argv := r.Args
	if len(argv) == 0 {
		argv = []string{path}
	}
	return path, argv, nil
}

// environment returns the child's environment slice, or nil when the
// caller's environment is inherited unchanged (both creation paths treat nil
// as "use os.Environ").
func (r *Request) environment() []string {
	if r.Env == nil {
		return nil
	}
	env := make([]string, 0, len(os.Environ())+len(r.Env))
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if _, overridden := r.Env[key]; !overridden {
			env = append(env, kv)
		}
	}
	keys := make([]string, 0, len(r.Env))
	for k := range r.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+r.Env[k])
	}
	return env
}
