package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Batas tunggu panggilan AI. Generate form memang lambat (LLM), jadi longgar —
// tapi tetap harus ada plafon supaya request tidak menggantung selamanya.
const RequestTimeout = 60 * time.Second

// Galat khas panggilan AI. Dibedakan supaya lapisan HTTP bisa memilih status
// yang tepat (504 vs 502) dan pesan yang jujur ke pengguna.
var (
	ErrTimeout     = errors.New("layanan AI tidak merespons dalam batas waktu")
	ErrUnreachable = errors.New("layanan AI tidak dapat dihubungi")
)

// Client membungkus layanan AI eksternal (generate form & prediksi emosi).
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/") + "/",
		HTTP:    &http.Client{Timeout: RequestTimeout},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	FormID string `json:"form_id"`
}

type emotionRequest struct {
	Type    string         `json:"type"`
	Payload emotionPayload `json:"payload"`
}

type emotionPayload struct {
	AnswerID string `json:"answer_id"`
}

// GenerateForm meminta layanan AI mengisi form dari prompt. Hasilnya ditulis
// langsung oleh layanan AI ke database; di sini cukup menunggu sukses/gagal.
func (c *Client) GenerateForm(ctx context.Context, prompt string, formID uuid.UUID) error {
	body := generateRequest{Prompt: prompt, FormID: formID.String()}
	return c.post(ctx, "create", body)
}

// PredictEmotionAsync menembakkan prediksi emosi untuk satu jawaban free text.
// Fire-and-forget: kegagalan hanya dicatat, tidak pernah menggagalkan alur
// simpan jawaban.
func (c *Client) PredictEmotionAsync(answerSectionID uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()

		body := emotionRequest{Type: "predict", Payload: emotionPayload{AnswerID: answerSectionID.String()}}
		if err := c.post(ctx, "emotions", body); err != nil {
			log.Printf("[WARN] prediksi emosi gagal (answer=%s): %v", answerSectionID, err)
		}
	}()
}

func (c *Client) post(ctx context.Context, path string, body interface{}) error {
	payload, err := sonic.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) // kuras body supaya koneksi bisa dipakai ulang

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("layanan AI menjawab status %d", resp.StatusCode)
	}
	return nil
}

// classify memetakan galat transport ke sentinel: timeout vs tidak terjangkau.
// Dua-duanya dibungkus dengan %w supaya pemanggil bisa errors.Is.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return err
}
