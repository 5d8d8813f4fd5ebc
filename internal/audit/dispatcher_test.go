package audit

import (
	"context"
	"testing"
	"time"
)

type gateSink struct {
	gate chan struct{}
}

func newGateSink() *gateSink {
	return &gateSink{
		gate: make(chan struct{}),
	}
}

func (s *gateSink) Emit(context.Context, Event) {
	<-s.gate
}

func TestDisabledDispatcherIsNil(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, NoOpSink{})
	if d != nil {
		t.Fatal("expected nil dispatcher when disabled")
	}

	// nil receiver is a no-op everywhere
	d.Emit(context.Background(), Event{EventType: "e1"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("expected zero drops on nil dispatcher")
	}
}

func TestBufferFullDropIfFullTrueDoesNotBlock(t *testing.T) {
	sink := newGateSink()
	dispatcher := NewDispatcher(Config{
		Enabled:    true,
		BufferSize: 1,
		DropIfFull: true,
	}, sink)
	defer func() {
		close(sink.gate)
		dispatcher.Close()
	}()

	dispatcher.Emit(context.Background(), Event{EventType: "e1"})
	dispatcher.Emit(context.Background(), Event{EventType: "e2"})

	start := time.Now()
	dispatcher.Emit(context.Background(), Event{EventType: "e3"})
	if time.Since(start) > 100*time.Millisecond {
		t.Fatal("expected non-blocking emit when DropIfFull is true")
	}
	if dispatcher.Dropped() == 0 {
		t.Fatal("expected dropped counter to increment when queue is full")
	}
}

func TestBufferFullDropIfFullFalseBlocksUntilSpace(t *testing.T) {
	sink := newGateSink()
	dispatcher := NewDispatcher(Config{
		Enabled:    true,
		BufferSize: 1,
		DropIfFull: false,
	}, sink)
	defer func() {
		close(sink.gate)
		dispatcher.Close()
	}()

	dispatcher.Emit(context.Background(), Event{EventType: "e1"})
	dispatcher.Emit(context.Background(), Event{EventType: "e2"})

	done := make(chan struct{})
	go func() {
		dispatcher.Emit(context.Background(), Event{EventType: "e3"})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("expected emit to block while buffer is full")
	case <-time.After(150 * time.Millisecond):
	}

	sink.gate <- struct{}{}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected blocked emit to proceed after space is available")
	}
}

func TestCloseDrainsBufferedEvents(t *testing.T) {
	sink := NewChannelSink(8)
	dispatcher := NewDispatcher(Config{
		Enabled:    true,
		BufferSize: 8,
	}, sink)

	for i := 0; i < 4; i++ {
		dispatcher.Emit(context.Background(), Event{EventType: "e"})
	}
	dispatcher.Close()

	received := 0
	timeout := time.After(time.Second)
drain:
	for received < 4 {
		select {
		case <-sink.Events():
			received++
		case <-timeout:
			break drain
		}
	}
	if received != 4 {
		t.Fatalf("expected close to drain 4 events, got %d", received)
	}
}

func TestCloseIdempotentAndEmitAfterCloseSafe(t *testing.T) {
	dispatcher := NewDispatcher(Config{
		Enabled:    true,
		BufferSize: 4,
		DropIfFull: true,
	}, NoOpSink{})

	dispatcher.Emit(context.Background(), Event{EventType: "e1"})
	dispatcher.Close()
	dispatcher.Close()
	dispatcher.Emit(context.Background(), Event{EventType: "e2"})
}
