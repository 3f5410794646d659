package dto

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Kind statistik per tipe pertanyaan.
const (
	StatKindChoice  = "choice"
	StatKindRating  = "rating"
	StatKindBinary  = "binary"
	StatKindSlider  = "slider"
	StatKindText    = "text"
	StatKindUnknown = "unknown" // tipe di luar closed set: cuma bawa total
)

// SliderConfig: echo konfigurasi slider dari descriptor.
type SliderConfig struct {
	Min       float64        `json:"min"`
	Max       float64        `json:"max"`
	Divisions int            `json:"divisions"`
	Labels    pq.StringArray `json:"labels"`
}

// QuestionStatistic: statistik turunan satu pertanyaan. Tidak dipersist —
// selalu dihitung ulang dari baris answers.
type QuestionStatistic struct {
	SectionUUID uuid.UUID      `json:"section_uuid"`
	SectionName string         `json:"section_name"`
	SectionType string         `json:"section_type"`
	Kind        string         `json:"kind"`
	Total       int            `json:"total"` // jumlah jawaban valid
	Counts      map[string]int `json:"counts,omitempty"`
	Average     *float64       `json:"average,omitempty"` // rating & slider, 2 desimal
	Min         *float64       `json:"min,omitempty"`     // slider
	Max         *float64       `json:"max,omitempty"`     // slider
	Slider      *SliderConfig  `json:"slider,omitempty"`
	Texts       pq.StringArray `json:"texts,omitempty"` // free text, urutan kedatangan
}

// StatisticsSnapshot: agregat satu form untuk dashboard. In-memory only,
// dimiliki satu sesi dashboard; dibangun ulang saat load/refresh dan
// dipatch in place saat ada push event.
type StatisticsSnapshot struct {
	FormUUID                uuid.UUID           `json:"form_uuid"`
	TotalRespondents        int                 `json:"total_respondents"`
	TotalQuestions          int                 `json:"total_questions"`
	AvgResponsesPerQuestion float64             `json:"avg_responses_per_question"`
	Questions               []QuestionStatistic `json:"questions"` // urut section_order
}
