package capture

import (
	"testing"
	"time"
)

func TestBroadcaster_SingleSubscriberReceives(t *testing.T) {
	b := StartBroadcaster[string]()

	ch, err := b.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	b.Publish("hello")

	if v, ok := recvWithTimeout(t, (<-chan string)(ch), 200*time.Millisecond); !ok || v != "hello" {
		t.Fatalf("expected to receive 'hello', got ok=%v val=%q", ok, v)
	}

	b.Stop()
}

func TestBroadcaster_MultipleSubscribersReceive(t *testing.T) {
	b := StartBroadcaster[int]()

	ch1, err := b.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	b.Publish(1)
	if v, ok := recvWithTimeout(t, (<-chan int)(ch1), 200*time.Millisecond); !ok || v != 1 {
		t.Fatalf("ch1 did not receive initial message, ok=%v v=%d", ok, v)
	}

	ch2, err := b.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	b.Publish(2)

	if v, ok := recvWithTimeout(t, (<-chan int)(ch1), 200*time.Millisecond); !ok || v != 2 {
		t.Fatalf("ch1 did not receive broadcast 2, ok=%v v=%d", ok, v)
	}
	if v, ok := recvWithTimeout(t, (<-chan int)(ch2), 200*time.Millisecond); !ok || v != 2 {
		t.Fatalf("ch2 did not receive broadcast 2, ok=%v v=%d", ok, v)
	}

	b.Stop()
}

func TestBroadcaster_NonBlockingSlowSubscriber(t *testing.T) {
	b := StartBroadcaster[int]()

	// Slow subscriber with a full single-slot channel simulating being behind
	slow, err := b.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	slow <- -1
	fast, err := b.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	// The stale value should be displaced and the latest delivered to both.
	b.Publish(42)

	time.Sleep(10 * time.Millisecond)

	if v, ok := recvWithTimeout(t, (<-chan int)(fast), 200*time.Millisecond); !ok || v != 42 {
		t.Fatalf("fast did not receive 42, ok=%v v=%d", ok, v)
	}
	if v, ok := recvWithTimeout(t, (<-chan int)(slow), 200*time.Millisecond); !ok || v != 42 {
		t.Fatalf("slow did not receive latest 42, ok=%v v=%d", ok, v)
	}

	b.Stop()
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	b := StartBroadcaster[int]()

	a, err := b.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	keep, err := b.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	b.Publish(1)
	if v, ok := recvWithTimeout(t, (<-chan int)(a), 200*time.Millisecond); !ok || v != 1 {
		t.Fatalf("subscriber 'a' did not get initial message, ok=%v v=%d", ok, v)
	}
	<-keep

	b.Unsubscribe(a)

	for i := 0; i < 3; i++ {
		b.Publish(100 + i)
		if v, ok := recvWithTimeout(t, (<-chan int)(keep), 200*time.Millisecond); !ok || v != 100+i {
			t.Fatalf("remaining subscriber missed message %d, ok=%v v=%d", 100+i, ok, v)
		}
	}
}

func TestBroadcaster_UnsubscribeDuringPublish(t *testing.T) {
	b := StartBroadcaster[int]()

	// Churn subscriptions while the fan-out goroutine is delivering; a close
	// racing a send would panic the fan-out goroutine.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			ch, err := b.Subscribe()
			if err != nil {
				return
			}
			b.Unsubscribe(ch)
		}
	}()

	for i := 0; i < 1000; i++ {
		b.Publish(i)
	}
	<-done

	// The fan-out goroutine must still be alive to serve this subscriber.
	ch, err := b.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	b.Publish(-1)
	if v, ok := recvWithTimeout(t, (<-chan int)(ch), time.Second); !ok || v != -1 {
		t.Fatalf("broadcast after churn not delivered, ok=%v v=%d", ok, v)
	}

	b.Stop()
}

func TestBroadcaster_SubscribeAfterStopFails(t *testing.T) {
	b := StartBroadcaster[int]()
	b.Stop()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, err := b.Subscribe(); err != nil {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Subscribe kept succeeding after Stop")
}
