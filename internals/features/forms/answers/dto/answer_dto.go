package dto

import (
	"github.com/google/uuid"
)

// CreateAnswerRequest: satu tulisan jawaban dari responden. answer_id adalah
// identitas attempt yang diterbitkan saat sesi dimulai — dibawa terus oleh
// klien supaya tulisan ulang (navigasi mundur) tetap satu responden.
type CreateAnswerRequest struct {
	FormID     uuid.UUID `json:"form_id" validate:"required"`
	SectionID  uuid.UUID `json:"section_id" validate:"required"`
	AnswerID   uuid.UUID `json:"answer_id" validate:"required"`
	AnswerData string    `json:"answer_data" validate:"required"`
}

// CreatedAnswerRow: bentuk kawat respons POST /api/answer — hanya PK baris
// yang baru dibuat (dipakai klien untuk panggilan prediksi/pelacakan).
type CreatedAnswerRow struct {
	AnswerSectionUUID uuid.UUID `json:"AnswerSectionUUID"`
}
