package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// State alur pengisian satu attempt.
type State int

const (
	StateLoading State = iota
	StateAnswering
	StateSubmitting
	StateComplete
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnswering:
		return "answering"
	case StateSubmitting:
		return "submitting"
	case StateComplete:
		return "complete"
	case StateError:
		return "error"
	}
	return "unknown"
}

var (
	ErrNotAnswering = errors.New("alur tidak sedang pada pertanyaan")
	ErrNoQuestions  = errors.New("form tidak punya pertanyaan")
)

// Loader memuat daftar pertanyaan (urut) untuk satu form.
type Loader interface {
	LoadQuestions(ctx context.Context, formID uuid.UUID) ([]uuid.UUID, error)
}

// Saver mempersistkan satu jawaban. Dipanggil dan DITUNGGU pada setiap
// perpindahan pertanyaan — navigasi tidak pernah mendahului tulisan.
type Saver interface {
	SaveAnswer(ctx context.Context, formID, sectionID, answerID uuid.UUID, value string) error
}

// Flow: mesin alur pengisian responden.
//
//	loading → answering(0) ↔ answering(i±1) → submitting → complete
//	loading/submitting → error (bisa dicoba ulang lewat Start/Submit)
//
// Satu goroutine pemakai; tidak thread-safe dan memang tidak perlu.
type Flow struct {
	loader Loader
	saver  Saver

	formID   uuid.UUID
	answerID uuid.UUID // identitas attempt, tetap sepanjang alur

	state     State
	questions []uuid.UUID
	index     int
	drafts    map[uuid.UUID]string // jawaban yang sudah diketik per pertanyaan
	lastErr   error
}

func New(loader Loader, saver Saver, formID, answerID uuid.UUID) *Flow {
	return &Flow{
		loader:   loader,
		saver:    saver,
		formID:   formID,
		answerID: answerID,
		state:    StateLoading,
		drafts:   make(map[uuid.UUID]string),
	}
}

func (f *Flow) State() State { return f.state }
func (f *Flow) Err() error   { return f.lastErr }
func (f *Flow) Index() int   { return f.index }
func (f *Flow) Count() int   { return len(f.questions) }

// CurrentQuestion: id pertanyaan yang sedang dijawab.
func (f *Flow) CurrentQuestion() (uuid.UUID, error) {
	if f.state != StateAnswering {
		return uuid.Nil, ErrNotAnswering
	}
	return f.questions[f.index], nil
}

// Start memuat pertanyaan dan masuk ke pertanyaan pertama. Dari error bisa
// dipanggil lagi (retry load).
func (f *Flow) Start(ctx context.Context) error {
	if f.state != StateLoading && f.state != StateError {
		return fmt.Errorf("Start dari state %s tidak diizinkan", f.state)
	}

	f.state = StateLoading
	questions, err := f.loader.LoadQuestions(ctx, f.formID)
	if err != nil {
		f.state = StateError
		f.lastErr = err
		return err
	}
	if len(questions) == 0 {
		f.state = StateError
		f.lastErr = ErrNoQuestions
		return ErrNoQuestions
	}

	f.questions = questions
	f.index = 0
	f.state = StateAnswering
	f.lastErr = nil
	return nil
}

// SetAnswer menyimpan ketikan untuk pertanyaan saat ini (belum dipersist).
func (f *Flow) SetAnswer(value string) error {
	if f.state != StateAnswering {
		return ErrNotAnswering
	}
	f.drafts[f.questions[f.index]] = value
	return nil
}

// Next mempersistkan jawaban saat ini lalu maju satu pertanyaan. Persist
// gagal → tetap di pertanyaan yang sama (bukan state error), pemakai bisa
// coba lagi.
func (f *Flow) Next(ctx context.Context) error {
	if f.state != StateAnswering {
		return ErrNotAnswering
	}
	if f.index >= len(f.questions)-1 {
		return fmt.Errorf("sudah di pertanyaan terakhir, pakai Submit")
	}
	if err := f.persistCurrent(ctx); err != nil {
		return err
	}
	f.index++
	return nil
}

// Back mempersistkan jawaban saat ini lalu mundur satu pertanyaan.
func (f *Flow) Back(ctx context.Context) error {
	if f.state != StateAnswering {
		return ErrNotAnswering
	}
	if f.index == 0 {
		return fmt.Errorf("sudah di pertanyaan pertama")
	}
	if err := f.persistCurrent(ctx); err != nil {
		return err
	}
	f.index--
	return nil
}

// Submit mempersistkan jawaban TERAKHIR dulu, baru menyelesaikan alur.
// Gagal persist → error state; Submit boleh dipanggil ulang dari sana.
func (f *Flow) Submit(ctx context.Context) error {
	if f.state != StateAnswering && f.state != StateError {
		return fmt.Errorf("Submit dari state %s tidak diizinkan", f.state)
	}
	if len(f.questions) == 0 {
		return ErrNoQuestions // error datang dari fase load, belum ada yang bisa disubmit
	}

	f.state = StateSubmitting
	if err := f.persistCurrent(ctx); err != nil {
		f.state = StateError
		f.lastErr = err
		return err
	}

	f.state = StateComplete
	f.lastErr = nil
	return nil
}

// persistCurrent menunggu tulisan jawaban pertanyaan saat ini selesai.
// Pertanyaan tanpa ketikan dilewati (tidak ada yang perlu ditulis).
func (f *Flow) persistCurrent(ctx context.Context) error {
	questionID := f.questions[f.index]
	value, ok := f.drafts[questionID]
	if !ok {
		return nil
	}
	return f.saver.SaveAnswer(ctx, f.formID, questionID, f.answerID, value)
}
