package launcher

import (
	"io"
	"os"
	"sync"

	"github.com/LasseHaedge/procspawn/pkg/lib/capture"
)

// stdinFile turns the policy's stdin reader into a concrete file for the
// child's fd 0. Returned closers are the parent's copies to drop after the
// child starts; a caller-provided *os.File stays caller-owned.
func stdinFile(r io.Reader) (*os.File, []io.Closer, error) {
	if r == nil {
		f, err := os.Open(os.DevNull)
		if err != nil {
			return nil, nil, err
		}
		return f, []io.Closer{f}, nil
	}
	if f, ok := r.(*os.File); ok {
		return f, nil, nil
	}
	// Arbitrary reader: feed it through a pipe. The feeder closes the write
	// end on EOF so the child sees end-of-input.
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}
	go func() {
		_, _ = io.Copy(pw, r)
		_ = pw.Close()
	}()
	return pr, []io.Closer{pr}, nil
}

// streamFile turns a StreamMode into a concrete file for the child's fd 1 or
// 2. For StreamCapture it wires an os.Pipe whose read end is drained into buf
// by a goroutine registered on copiers; the copier owns the read end.
func streamFile(mode StreamMode, inherited *os.File, buf *capture.Buffer, copiers *sync.WaitGroup) (*os.File, []io.Closer, error) {
	switch mode {
	case StreamCapture:
		pr, pw, err := os.Pipe()
		if err != nil {
			return nil, nil, err
		}
		copiers.Add(1)
		go func() {
			defer copiers.Done()
			_, _ = io.Copy(buf, pr)
			_ = pr.Close()
		}()
		return pw, []io.Closer{pw}, nil
	case StreamDiscard:
		f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			return nil, nil, err
		}
		return f, []io.Closer{f}, nil
	default:
		return inherited, nil, nil
	}
}
