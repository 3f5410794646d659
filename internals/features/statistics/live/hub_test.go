package live

import (
	"testing"
	"time"
)

func recvEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatalf("timeout menunggu event")
		return Event{}
	}
}

func TestHubPublishReachesFormSubscribersOnly(t *testing.T) {
	hub := NewHub()
	chA, unsubA := hub.Subscribe("form-a")
	defer unsubA()
	chB, unsubB := hub.Subscribe("form-b")
	defer unsubB()

	hub.Publish("form-a", Event{Type: EventStatisticsUpdate, QuestionID: "q1"})

	ev := recvEvent(t, chA)
	if ev.QuestionID != "q1" {
		t.Fatalf("event salah: %+v", ev)
	}
	select {
	case ev := <-chB:
		t.Fatalf("subscriber form lain menerima event: %+v", ev)
	default:
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	ch, unsub := hub.Subscribe("form-a")
	unsub()

	hub.Publish("form-a", Event{Type: EventStatisticsUpdate})

	if _, open := <-ch; open {
		t.Fatalf("channel harus sudah ditutup setelah unsubscribe")
	}
	if hub.SubscriberCount("form-a") != 0 {
		t.Fatalf("subscriber tidak terhapus")
	}
}

func TestHubUnsubscribeIdempotent(t *testing.T) {
	hub := NewHub()
	_, unsub := hub.Subscribe("form-a")
	unsub()
	unsub() // tidak boleh panic
}

func TestHubSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()
	_, unsub := hub.Subscribe("form-a")
	defer unsub()

	done := make(chan struct{})
	go func() {
		// lebih banyak dari kapasitas buffer; kelebihan harus di-drop
		for i := 0; i < 200; i++ {
			hub.Publish("form-a", Event{Type: EventStatisticsUpdate})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("publish blocking pada subscriber lambat")
	}
}

func TestHubCloseAll(t *testing.T) {
	hub := NewHub()
	ch, unsub := hub.Subscribe("form-a")

	hub.CloseAll()

	if _, open := <-ch; open {
		t.Fatalf("channel harus ditutup oleh CloseAll")
	}
	unsub() // setelah CloseAll tetap aman dipanggil

	// hub yang sudah ditutup menolak subscriber baru dengan channel tertutup
	ch2, _ := hub.Subscribe("form-a")
	if _, open := <-ch2; open {
		t.Fatalf("subscribe setelah CloseAll harus langsung tertutup")
	}
}
