package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateFormSendsPromptAndFormID(t *testing.T) {
	formID := uuid.New()
	var got generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/create" {
			t.Errorf("path = %s, want /create", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("body tidak bisa didecode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if err := client.GenerateForm(context.Background(), "kuesioner kepuasan", formID); err != nil {
		t.Fatalf("GenerateForm: %v", err)
	}
	if got.Prompt != "kuesioner kepuasan" || got.FormID != formID.String() {
		t.Fatalf("payload salah: %+v", got)
	}
}

func TestGenerateFormTimeoutIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond) // lebih lama dari timeout client test
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.HTTP.Timeout = 20 * time.Millisecond

	err := client.GenerateForm(context.Background(), "p", uuid.New())
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if errors.Is(err, ErrUnreachable) {
		t.Fatalf("timeout tidak boleh terklasifikasi unreachable")
	}
}

func TestGenerateFormUnreachableIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // langsung matikan: connection refused

	client := NewClient(srv.URL)
	err := client.GenerateForm(context.Background(), "p", uuid.New())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Fatalf("connection refused tidak boleh terklasifikasi timeout")
	}
}

func TestGenerateFormNon2xxIsGenericError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.GenerateForm(context.Background(), "p", uuid.New())
	if err == nil {
		t.Fatalf("status 500 harus jadi error")
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnreachable) {
		t.Fatalf("galat status bukan timeout/unreachable: %v", err)
	}
}

func TestPredictEmotionAsyncNeverBlocks(t *testing.T) {
	received := make(chan emotionRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req emotionRequest
		json.NewDecoder(r.Body).Decode(&req)
		received <- req
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	answerID := uuid.New()

	start := time.Now()
	client.PredictEmotionAsync(answerID)
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("pemanggil ikut menunggu: %v", elapsed)
	}

	select {
	case req := <-received:
		if req.Type != "predict" || req.Payload.AnswerID != answerID.String() {
			t.Fatalf("payload emotions salah: %+v", req)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("request emotions tidak pernah sampai")
	}
}
