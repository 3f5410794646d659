package live

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
)

// SSETransport membuka stream Server-Sent Events ke endpoint statistik.
// BaseURL contoh: "https://api.formku.app" — path /api/statistics/:id/sse
// dibentuk di sini.
type SSETransport struct {
	BaseURL string
	Client  *http.Client // nil → http.DefaultClient; JANGAN set Timeout (stream hidup lama)
}

func (t *SSETransport) Connect(ctx context.Context, formID string) (EventStream, error) {
	url := fmt.Sprintf("%s/api/statistics/%s/sse", strings.TrimRight(t.BaseURL, "/"), formID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("stream statistik menolak koneksi: status %d", resp.StatusCode)
	}

	return &sseStream{body: resp.Body, scanner: bufio.NewScanner(resp.Body)}, nil
}

type sseStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
}

// Next membaca frame SSE berikutnya. Hanya baris "data:" yang dipakai;
// baris komentar (diawali ":") dan field lain dilewati.
func (s *sseStream) Next() (Event, error) {
	for s.scanner.Scan() {
		line := s.scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}
		var event Event
		if err := sonic.UnmarshalString(payload, &event); err != nil {
			return Event{}, fmt.Errorf("payload event tidak valid: %w", err)
		}
		return event, nil
	}
	if err := s.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}

func (s *sseStream) Close() error {
	return s.body.Close()
}
