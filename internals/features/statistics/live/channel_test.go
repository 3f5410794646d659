package live

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

// fakeStream: stream yang dikendalikan test lewat channel.
type fakeStream struct {
	events chan Event
	once   sync.Once
	closed chan struct{}
}

func newFakeStream() *fakeStream {
	return &fakeStream{events: make(chan Event, 8), closed: make(chan struct{})}
}

func (s *fakeStream) Next() (Event, error) {
	select {
	case ev, ok := <-s.events:
		if !ok {
			return Event{}, io.EOF
		}
		return ev, nil
	case <-s.closed:
		return Event{}, io.EOF
	}
}

func (s *fakeStream) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

// fakeTransport: skrip hasil Connect per percobaan.
type fakeTransport struct {
	mu       sync.Mutex
	attempts int
	failures int // percobaan ke-1..failures gagal
	streams  []*fakeStream
}

func (t *fakeTransport) Connect(ctx context.Context, formID string) (EventStream, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts++
	if t.attempts <= t.failures {
		return nil, errors.New("connection refused")
	}
	s := newFakeStream()
	t.streams = append(t.streams, s)
	return s, nil
}

func (t *fakeTransport) attemptCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attempts
}

func (t *fakeTransport) lastStream() *fakeStream {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.streams) == 0 {
		return nil
	}
	return t.streams[len(t.streams)-1]
}

func waitForState(t *testing.T, c *Channel, want ChannelState) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("state = %s, want %s", c.State(), want)
}

func TestChannelDeliversEventsWhenOpen(t *testing.T) {
	transport := &fakeTransport{}
	ch := NewChannel(transport, "form-a", 10*time.Millisecond)
	ch.Open(context.Background())
	defer ch.Close()

	waitForState(t, ch, StateOpen)
	transport.lastStream().events <- Event{Type: EventStatisticsUpdate, QuestionID: "q1"}

	ev := recvEvent(t, ch.Events())
	if ev.QuestionID != "q1" {
		t.Fatalf("event salah: %+v", ev)
	}
}

func TestChannelRetriesAfterConnectFailure(t *testing.T) {
	transport := &fakeTransport{failures: 2}
	ch := NewChannel(transport, "form-a", 10*time.Millisecond)
	ch.Open(context.Background())
	defer ch.Close()

	// dua percobaan gagal, yang ketiga tembus
	waitForState(t, ch, StateOpen)
	if got := transport.attemptCount(); got != 3 {
		t.Fatalf("attempts = %d, want 3", got)
	}
}

func TestChannelReconnectsAfterStreamDrop(t *testing.T) {
	transport := &fakeTransport{}
	ch := NewChannel(transport, "form-a", 10*time.Millisecond)
	ch.Open(context.Background())
	defer ch.Close()

	waitForState(t, ch, StateOpen)
	first := transport.lastStream()
	first.Close() // server memutus koneksi

	deadline := time.Now().Add(2 * time.Second)
	for transport.attemptCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	waitForState(t, ch, StateOpen)

	// koneksi baru tetap mengalirkan event
	transport.lastStream().events <- Event{Type: EventStatisticsUpdate, QuestionID: "q2"}
	ev := recvEvent(t, ch.Events())
	if ev.QuestionID != "q2" {
		t.Fatalf("event setelah reconnect salah: %+v", ev)
	}
}

func TestChannelCloseStopsRetryLoop(t *testing.T) {
	transport := &fakeTransport{failures: 1 << 30} // selalu gagal
	ch := NewChannel(transport, "form-a", 5*time.Millisecond)
	ch.Open(context.Background())

	time.Sleep(20 * time.Millisecond)
	ch.Close()

	attempts := transport.attemptCount()
	time.Sleep(50 * time.Millisecond)
	if got := transport.attemptCount(); got != attempts {
		t.Fatalf("masih ada percobaan connect setelah Close: %d → %d", attempts, got)
	}
	if ch.State() != StateDisconnected {
		t.Fatalf("state setelah Close = %s", ch.State())
	}

	// channel event ditutup → range selesai, tidak ada goroutine bocor
	if _, open := <-ch.Events(); open {
		t.Fatalf("events harus ditutup setelah Close")
	}
}

func TestChannelCloseWhileOpenClosesStream(t *testing.T) {
	transport := &fakeTransport{}
	ch := NewChannel(transport, "form-a", 10*time.Millisecond)
	ch.Open(context.Background())

	waitForState(t, ch, StateOpen)
	stream := transport.lastStream()
	ch.Close()

	select {
	case <-stream.closed:
	case <-time.After(time.Second):
		t.Fatalf("stream transport tidak ditutup oleh Close")
	}
}

func TestChannelCloseIdempotent(t *testing.T) {
	ch := NewChannel(&fakeTransport{}, "form-a", time.Millisecond)
	ch.Close()
	ch.Close() // tanpa Open, dua kali — tidak boleh panic
}
