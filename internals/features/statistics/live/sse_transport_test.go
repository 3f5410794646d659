package live

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSSETransportParsesDataFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/statistics/form-1/sse" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\":\"connected\"}\n\n")
		fmt.Fprint(w, ": ping\n\n") // komentar keep-alive harus dilewati
		fmt.Fprint(w, "data: {\"type\":\"statistics_update\",\"questionId\":\"q1\",\"respondentCount\":4}\n\n")
	}))
	defer srv.Close()

	transport := &SSETransport{BaseURL: srv.URL}
	stream, err := transport.Connect(context.Background(), "form-1")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer stream.Close()

	first, err := stream.Next()
	if err != nil || first.Type != EventConnected {
		t.Fatalf("frame pertama = %+v, %v", first, err)
	}

	second, err := stream.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if second.Type != EventStatisticsUpdate || second.QuestionID != "q1" || second.RespondentCount != 4 {
		t.Fatalf("frame kedua salah: %+v", second)
	}

	if _, err := stream.Next(); err != io.EOF {
		t.Fatalf("akhir stream harus EOF, got %v", err)
	}
}

func TestSSETransportRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	transport := &SSETransport{BaseURL: srv.URL}
	if _, err := transport.Connect(context.Background(), "nope"); err == nil {
		t.Fatalf("status 404 harus jadi error connect")
	}
}
