// Package capture provides a lossless, in-order byte buffer for child process
// output, with live subscription for readers that attach while the child is
// still writing.
package capture

import (
	"io"
	"log"
	"sync/atomic"
)

var logger = log.New(io.Discard, "capture: ", log.LstdFlags)

// chunk is one element of the append-only singly linked list. The list uses a
// sentinel head so append never has to special-case an empty buffer.
type chunk struct {
	data []byte
	next atomic.Pointer[chunk]
}

// Buffer is an append-only sequence of byte chunks. Append is safe against
// concurrent readers via atomic next pointers; there must be a single
// appender (the launcher wires exactly one stream per buffer). Readers get a
// best-effort snapshot without locks.
type Buffer struct {
	head *chunk // sentinel, immutable
	tail *chunk // last chunk, or the sentinel when empty

	broadcaster *Broadcaster[struct{}]
}

// NewBuffer creates an empty Buffer and starts its notification broadcaster.
func NewBuffer() *Buffer {
	sentinel := &chunk{}
	return &Buffer{
		head:        sentinel,
		tail:        sentinel,
		broadcaster: StartBroadcaster[struct{}](),
	}
}

// Close marks the buffer complete. Live subscribers drain what is stored and
// then see end-of-stream; later subscribers replay the full contents.
// Called by the launcher once the child's stream has hit EOF.
func (b *Buffer) Close() {
	if b == nil {
		return
	}
	b.broadcaster.Stop()
}

// append links data at the tail and wakes subscribers. The slice is stored
// as-is; Write hands us a private copy.
func (b *Buffer) append(data []byte) {
	next := &chunk{data: data}
	b.tail.next.Store(next)
	b.tail = next
	b.broadcaster.Publish(struct{}{})
}

// Write implements io.Writer so the buffer can be handed to exec.Cmd or a
// pipe-drain loop directly. It copies p, since callers reuse their buffers
// after Write returns.
func (b *Buffer) Write(p []byte) (int, error) {
	if b == nil || len(p) == 0 {
		return len(p), nil
	}
	cp := append([]byte(nil), p...)
	b.append(cp)
	return len(p), nil
}

// Subscribe returns a channel replaying every chunk from the beginning, in
// order, then following live writes. The channel closes once the buffer is
// closed and fully drained.
func (b *Buffer) Subscribe(capacity int) <-chan []byte {
	ch := make(chan []byte, capacity)
	wake, err := b.broadcaster.Subscribe()
	if err == nil {
		go b.streamLive(wake, ch)
	} else {
		// Buffer already closed; contents are final.
		go b.streamFinal(ch)
	}
	return ch
}

func (b *Buffer) streamLive(wake chan struct{}, ch chan []byte) {
	prev := b.head
	for {
		cur := prev.next.Load()
		if cur == nil {
			if _, ok := <-wake; !ok {
				logger.Println("stream complete, draining remainder")
				// Broadcaster stopped; emit whatever raced in after our
				// last load, then finish.
				b.drainFrom(prev, ch)
				close(ch)
				return
			}
			continue
		}
		prev = cur
		ch <- cur.data
	}
}

func (b *Buffer) streamFinal(ch chan []byte) {
	b.drainFrom(b.head, ch)
	close(ch)
}

func (b *Buffer) drainFrom(from *chunk, ch chan []byte) {
	for cur := from.next.Load(); cur != nil; cur = cur.next.Load() {
		ch <- cur.data
	}
}

// ForEach visits stored chunks in insertion order until iter returns false.
func (b *Buffer) ForEach(iter func([]byte) bool) {
	if b == nil || iter == nil {
		return
	}
	for cur := b.head.next.Load(); cur != nil; cur = cur.next.Load() {
		if !iter(cur.data) {
			return
		}
	}
}

// Bytes concatenates the stored chunks. Allocates proportionally to the total
// captured size.
func (b *Buffer) Bytes() []byte {
	total := 0
	chunks := make([][]byte, 0, 16)
	b.ForEach(func(p []byte) bool {
		chunks = append(chunks, p)
		total += len(p)
		return true
	})
	out := make([]byte, 0, total)
	for _, p := range chunks {
		out = append(out, p...)
	}
	return out
}

func (b *Buffer) String() string {
	return string(b.Bytes())
}
