package launcher

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/LasseHaedge/procspawn/pkg/lib"
)

// readAll collects all bytes from a subscription channel until it closes.
func readAll(t *testing.T, ch <-chan []byte) string {
	t.Helper()
	var out []byte
	for b := range ch {
		out = append(out, b...)
	}
	return string(out)
}

func TestOutput_MultipleSubscribers(t *testing.T) {
	l := New()

	// Emit a few lines with small delays so subscribers attach mid-stream.
	h, err := l.Launch(Request{
		Path:  "sh",
		Args:  []string{"sh", "-c", "for i in 1 2 3 4 5; do echo $i; sleep 0.03; done"},
		Stdio: StdioPolicy{Stdout: StreamCapture, Stderr: StreamCapture},
	})
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	ch1, _, err := l.Output(h.ID)
	if err != nil {
		t.Fatalf("Output#1 failed: %v", err)
	}
	ch2, _, err := l.Output(h.ID)
	if err != nil {
		t.Fatalf("Output#2 failed: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	var s1, s2 string
	go func() { defer wg.Done(); s1 = readAll(t, ch1) }()
	go func() { defer wg.Done(); s2 = readAll(t, ch2) }()

	// Wait until the child stops and both channels close.
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		st, err := l.Status(h.ID)
		if err != nil {
			t.Fatalf("Status error: %v", err)
		}
		if st.State == lib.StateExited {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	wg.Wait()

	expected := "1\n2\n3\n4\n5\n"
	if s1 != expected || s2 != expected {
		t.Fatalf("subscribers mismatch:\nch1=%q\nch2=%q\nwant=%q", s1, s2, expected)
	}
}

func TestOutput_LateSubscriberReplaysEverything(t *testing.T) {
	l := New()
	h, err := l.Launch(Request{
		Path:  "sh",
		Args:  []string{"sh", "-c", "echo alpha; echo beta"},
		Stdio: StdioPolicy{Stdout: StreamCapture},
	})
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	if _, err := l.Wait(waitCtx(t), h.ID); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	stdout, stderr, err := l.Output(h.ID)
	if err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if got := readAll(t, stdout); got != "alpha\nbeta\n" {
		t.Fatalf("replay mismatch: %q", got)
	}
	// Stderr was not captured; its channel closes immediately.
	if got := readAll(t, stderr); got != "" {
		t.Fatalf("expected empty stderr channel, got %q", got)
	}
}

func TestOutput_NotCaptured(t *testing.T) {
	l := New()
	h, err := l.Launch(Request{
		Path:  "sh",
		Args:  []string{"sh", "-c", "true"},
		Stdio: StdioPolicy{Stdout: StreamDiscard, Stderr: StreamDiscard},
	})
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	if _, _, err := l.Output(h.ID); !errors.Is(err, ErrNotCaptured) {
		t.Fatalf("expected ErrNotCaptured, got %v", err)
	}
	if _, err := l.Wait(waitCtx(t), h.ID); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
}
