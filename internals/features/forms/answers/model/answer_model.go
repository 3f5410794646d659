package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AnswerModel: satu baris per tulisan jawaban. answer_uuid adalah identitas
// responden (satu per attempt), BUKAN primary key — responden boleh menulis
// ulang jawaban yang sama (navigasi mundur) sehingga ada beberapa baris per
// (answer_uuid, section). Baris terbaru yang otoritatif.
type AnswerModel struct {
	AnswerSectionUUID uuid.UUID `gorm:"column:answer_section_uuid;primaryKey;type:uuid;default:gen_random_uuid()" json:"answer_section_uuid"`
	AnswerUUID        uuid.UUID `gorm:"column:answer_uuid;type:uuid;not null;index" json:"answer_uuid"` // identitas responden per attempt
	AnswerFormID      uuid.UUID `gorm:"column:answer_form_id;type:uuid;not null;index" json:"answer_form_id"`
	AnswerSectionID   uuid.UUID `gorm:"column:answer_section_id;type:uuid;not null;index" json:"answer_section_id"`
	AnswerData        string    `gorm:"column:answer_data;type:text" json:"answer_data"` // JSON string {text, predict}
	AnswerCreatedAt   time.Time `gorm:"column:answer_created_at;autoCreateTime" json:"answer_created_at"`
	AnswerUpdatedAt   time.Time `gorm:"column:answer_updated_at;autoUpdateTime" json:"answer_updated_at"`
}

func (AnswerModel) TableName() string {
	return "answers"
}

// AnswerPayload adalah isi kolom answer_data.
type AnswerPayload struct {
	Text    string `json:"text"`
	Predict string `json:"predict,omitempty"`
}

// DecodeValue mengambil nilai jawaban tunggal dari answer_data.
// Payload rusak tidak bikin error: pakai string mentahnya apa adanya.
func DecodeValue(raw string) string {
	var p AnswerPayload
	if err := json.Unmarshal([]byte(raw), &p); err == nil {
		return strings.TrimSpace(p.Text)
	}
	return strings.TrimSpace(raw)
}

// DecodeValues mengambil nilai jawaban multi (multi_choice): text boleh
// berupa JSON array of string; kalau bukan, dianggap satu nilai.
func DecodeValues(raw string) []string {
	value := DecodeValue(raw)
	if value == "" {
		return nil
	}
	var arr []string
	if err := json.Unmarshal([]byte(value), &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if t := strings.TrimSpace(v); t != "" {
				out = append(out, t)
			}
		}
		return out
	}
	return []string{value}
}
