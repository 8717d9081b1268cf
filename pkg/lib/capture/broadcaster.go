package capture

import (
	"fmt"
	"sync"
)

// Broadcaster fans one producer's notifications out to any number of
// subscribers. Delivery is lossy by design: each subscriber channel holds at
// most one pending notification and newer ones displace older ones, which is
// all a wake-up signal needs.
type Broadcaster[T any] struct {
	inbox chan T

	mu          sync.Mutex
	subscribers map[chan T]struct{}
	stopped     bool
}

// StartBroadcaster creates a Broadcaster and starts its fan-out goroutine.
func StartBroadcaster[T any]() *Broadcaster[T] {
	b := &Broadcaster[T]{
		inbox:       make(chan T, 1),
		subscribers: make(map[chan T]struct{}),
	}
	go b.run()
	return b
}

func (b *Broadcaster[T]) run() {
	for msg := range b.inbox {
		// Fan out under the lock so Unsubscribe can never close a channel
		// mid-send. The sends cannot block: this goroutine is the only
		// sender and sendOrDisplace frees the slot itself.
		b.mu.Lock()
		for s := range b.subscribers {
			sendOrDisplace(s, msg)
		}
		b.mu.Unlock()
	}

	// Inbox closed: tell every subscriber the stream is over.
	b.mu.Lock()
	for s := range b.subscribers {
		close(s)
	}
	b.stopped = true
	b.mu.Unlock()
	logger.Println("broadcaster stopped")
}

// sendOrDisplace delivers msg without blocking: a full single-slot channel
// loses its stale value first.
func sendOrDisplace[T any](ch chan T, msg T) {
	select {
	case ch <- msg:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- msg
	}
}

// Publish enqueues a notification without blocking the producer.
func (b *Broadcaster[T]) Publish(msg T) {
	sendOrDisplace(b.inbox, msg)
}

// Stop closes the inbox; the fan-out goroutine closes all subscriber
// channels once it has drained. Publish after Stop panics, matching the
// single-producer contract.
func (b *Broadcaster[T]) Stop() {
	close(b.inbox)
}

// Subscribe registers a new single-slot notification channel. It fails once
// the broadcaster has stopped.
func (b *Broadcaster[T]) Subscribe() (chan T, error) {
	ch := make(chan T, 1)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return nil, fmt.Errorf("failed to subscribe: broadcaster is stopped")
	}
	b.subscribers[ch] = struct{}{}
	return ch, nil
}

// Unsubscribe removes and closes a subscriber channel. After removal under
// the lock no fan-out targets ch anymore, so closing it is safe.
func (b *Broadcaster[T]) Unsubscribe(ch chan T) {
	b.mu.Lock()
	delete(b.subscribers, ch)
	stopped := b.stopped
	b.mu.Unlock()
	if !stopped {
		close(ch)
	}
}
