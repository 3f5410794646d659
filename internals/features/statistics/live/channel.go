package live

import (
	"context"
	"log"
	"sync"
	"time"
)

// State kanal live sisi klien (dashboard).
type ChannelState int

const (
	StateDisconnected ChannelState = iota
	StateConnecting
	StateOpen
)

func (s ChannelState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "disconnected"
	}
}

// EventStream: satu koneksi hidup ke server. Next blocking sampai ada event
// atau koneksi putus (error).
type EventStream interface {
	Next() (Event, error)
	Close() error
}

// Transport membuka koneksi ke stream statistik satu form. Di-inject supaya
// FSM reconnect bisa diuji tanpa server sungguhan.
type Transport interface {
	Connect(ctx context.Context, formID string) (EventStream, error)
}

// DefaultBackoff: jeda tetap antar percobaan reconnect.
const DefaultBackoff = 3 * time.Second

// Channel mengelola satu langganan statistik live dengan reconnect otomatis:
//
//	disconnected → connecting → open → (putus) → connecting → ...
//
// Percobaan ulang tidak pernah berhenti sampai Close dipanggil; jeda antar
// percobaan tetap (bukan exponential). Maksimal SATU koneksi transport hidup
// pada satu waktu.
type Channel struct {
	transport Transport
	formID    string
	backoff   time.Duration

	events chan Event

	mu     sync.Mutex
	state  ChannelState
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// NewChannel membuat kanal untuk satu form. backoff <= 0 memakai default.
func NewChannel(transport Transport, formID string, backoff time.Duration) *Channel {
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	return &Channel{
		transport: transport,
		formID:    formID,
		backoff:   backoff,
		events:    make(chan Event, 64),
		done:      make(chan struct{}),
	}
}

// Events: stream event untuk konsumen. Ditutup setelah Close.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// State: kondisi kanal saat ini.
func (c *Channel) State() ChannelState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open memulai loop koneksi di goroutine sendiri. Sekali pakai: kanal yang
// sudah di-Close tidak bisa dibuka lagi.
func (c *Channel) Open(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.cancel != nil {
		c.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	go c.run(runCtx)
}

// Close menghentikan kanal: membatalkan koneksi yang hidup ATAU timer backoff
// yang sedang menunggu, lalu menutup channel event. Idempotent.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	cancel := c.cancel
	started := cancel != nil
	c.mu.Unlock()

	if started {
		cancel()
		<-c.done // tunggu loop benar-benar berhenti sebelum menutup events
	}
	close(c.events)
}

func (c *Channel) run(ctx context.Context) {
	defer close(c.done)
	defer c.setState(StateDisconnected)

	for {
		c.setState(StateConnecting)

		stream, err := c.transport.Connect(ctx, c.formID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] koneksi kanal live gagal (form_id=%s): %v", c.formID, err)
			if !c.sleep(ctx) {
				return
			}
			continue
		}

		c.setState(StateOpen)
		c.pump(ctx, stream)
		// stream putus; kalau bukan karena Close, coba lagi setelah backoff
		if ctx.Err() != nil {
			return
		}
		c.setState(StateConnecting)
		if !c.sleep(ctx) {
			return
		}
	}
}

// pump meneruskan event dari satu stream sampai putus. Stream selalu ditutup
// sebelum kembali — menjaga invariant satu koneksi hidup.
func (c *Channel) pump(ctx context.Context, stream EventStream) {
	defer stream.Close()

	// Close membatalkan ctx; Next yang sedang blocking dilepas dengan menutup
	// stream dari goroutine pengawas.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			stream.Close()
		case <-stop:
		}
	}()

	for {
		event, err := stream.Next()
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("[WARN] stream kanal live putus (form_id=%s): %v", c.formID, err)
			}
			return
		}
		select {
		case c.events <- event:
		case <-ctx.Done():
			return
		}
	}
}

// sleep menunggu satu jeda backoff; false kalau dibatalkan saat menunggu.
func (c *Channel) sleep(ctx context.Context) bool {
	timer := time.NewTimer(c.backoff)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *Channel) setState(s ChannelState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
