package live

import (
	"log"
	"sync"

	"formku_backend/internals/features/statistics/dto"
)

// Tipe event yang dikirim lewat kanal live.
const (
	EventConnected        = "connected"
	EventStatisticsUpdate = "statistics_update"
)

// Event: satu pesan untuk dashboard. Payload statistik hanya terisi pada
// statistics_update.
type Event struct {
	Type            string                 `json:"type"`
	QuestionID      string                 `json:"questionId,omitempty"`
	Statistics      *dto.QuestionStatistic `json:"statistics,omitempty"`
	RespondentCount int                    `json:"respondentCount,omitempty"`
}

// Hub menfanout event statistik ke semua dashboard yang sedang menonton satu
// form. Subscriber memegang channel buffered; publish tidak pernah blocking —
// subscriber yang lambat kehilangan event (dashboard toh akan rebuild penuh
// saat refresh).
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event // key: form_id
	closed      bool
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string][]chan Event),
	}
}

// Subscribe mendaftarkan satu dashboard untuk form tertentu. Pemanggil WAJIB
// memanggil fungsi unsubscribe saat selesai supaya channel tidak bocor.
func (h *Hub) Subscribe(formID string) (<-chan Event, func()) {
	ch := make(chan Event, 64)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subscribers[formID] = append(h.subscribers[formID], ch)
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()

			if h.closed {
				return // CloseAll sudah menutup channel ini
			}

			subs := h.subscribers[formID]
			for i, sub := range subs {
				if sub == ch {
					h.subscribers[formID] = append(subs[:i], subs[i+1:]...)
					break
				}
			}
			if len(h.subscribers[formID]) == 0 {
				delete(h.subscribers, formID)
			}
			close(ch)
		})
	}

	return ch, unsubscribe
}

// Publish mengirim event ke semua subscriber form tersebut. Non-blocking:
// channel penuh → event di-drop untuk subscriber itu saja.
func (h *Hub) Publish(formID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for _, ch := range h.subscribers[formID] {
		select {
		case ch <- event:
		default:
			log.Printf("[WARN] event live di-drop untuk subscriber lambat (form_id=%s type=%s)", formID, event.Type)
		}
	}
}

// SubscriberCount: jumlah dashboard aktif untuk satu form.
func (h *Hub) SubscriberCount(formID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[formID])
}

// CloseAll menutup semua channel subscriber; dipanggil saat shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for formID, subs := range h.subscribers {
		for _, ch := range subs {
			close(ch)
		}
		delete(h.subscribers, formID)
	}
}
