package launcher

import (
	"errors"

	"github.com/LasseHaedge/procspawn/pkg/lib/capture"
)

// ErrNotCaptured means Output was called for a child whose request did not
// configure StreamCapture on any stream.
var ErrNotCaptured = errors.New("output capture not configured")

// Output subscribes to the identified child's captured streams. Each channel
// replays from the first byte and follows live output, closing once the
// stream is complete. A stream that was not captured yields an immediately
// closed channel.
func (l *Launcher) Output(id string) (stdout, stderr <-chan []byte, err error) {
	e, err := l.getEntry(id)
	if err != nil {
		return nil, nil, err
	}
	if e.stdout == nil && e.stderr == nil {
		return nil, nil, ErrNotCaptured
	}

	logger.Printf("subscribing to output of %s", id)
	return subscription(e.stdout), subscription(e.stderr), nil
}

func subscription(b *capture.Buffer) <-chan []byte {
	if b == nil {
		ch := make(chan []byte)
		close(ch)
		return ch
	}
	return b.Subscribe(5)
}
