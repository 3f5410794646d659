package service

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	answerModel "formku_backend/internals/features/forms/answers/model"
	formModel "formku_backend/internals/features/forms/forms/model"
)

// BeginSession menerbitkan identitas satu attempt pengisian. Dibawa klien
// sebagai answer_id di setiap tulisan jawaban.
func BeginSession() uuid.UUID {
	return uuid.New()
}

// GuardStore: lookup yang dibutuhkan guard single-response. Interface supaya
// perilaku fail-open bisa diuji tanpa database.
type GuardStore interface {
	// FormSingleResponse: apakah form hidup dan menyalakan batas satu respons.
	FormSingleResponse(formID uuid.UUID) (bool, error)
	// HasSubmission: apakah fingerprint ini sudah pernah menulis jawaban
	// untuk form tersebut.
	HasSubmission(formID, fingerprint uuid.UUID) (bool, error)
}

// SessionService menjaga batas "satu respons per perangkat".
type SessionService struct {
	Store GuardStore
}

func NewSessionService(store GuardStore) *SessionService {
	return &SessionService{Store: store}
}

// CheckSingleResponseGuard: true kalau perangkat ini HARUS diblokir (sudah
// pernah mengisi form yang menyalakan single response). Fail-open: galat
// lookup apa pun → false + log, karena kehilangan satu duplikat lebih murah
// daripada menolak responden yang sah.
func (s *SessionService) CheckSingleResponseGuard(formID, fingerprint uuid.UUID) bool {
	single, err := s.Store.FormSingleResponse(formID)
	if err != nil {
		log.Printf("[WARN] guard single-response gagal cek form %s: %v", formID, err)
		return false
	}
	if !single {
		return false
	}

	submitted, err := s.Store.HasSubmission(formID, fingerprint)
	if err != nil {
		log.Printf("[WARN] guard single-response gagal cek fingerprint %s: %v", fingerprint, err)
		return false
	}
	return submitted
}

// gormGuardStore: implementasi GuardStore di atas tabel forms + answers.
// Fingerprint perangkat dipakai sebagai answer_uuid saat submit, jadi
// keberadaan baris answers dengan pasangan (form, fingerprint) = sudah pernah
// mengisi. Tidak perlu tabel fingerprint terpisah.
type gormGuardStore struct {
	db *gorm.DB
}

func NewGormGuardStore(db *gorm.DB) GuardStore {
	return &gormGuardStore{db: db}
}

func (g *gormGuardStore) FormSingleResponse(formID uuid.UUID) (bool, error) {
	var form formModel.FormModel
	if err := g.db.
		Select("form_single_response").
		Where("form_uuid = ? AND form_deleted = FALSE", formID).
		First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil // form tidak ada → tidak ada yang perlu dijaga
		}
		return false, err
	}
	return form.FormSingleResponse, nil
}

func (g *gormGuardStore) HasSubmission(formID, fingerprint uuid.UUID) (bool, error) {
	var count int64
	if err := g.db.Model(&answerModel.AnswerModel{}).
		Where("answer_form_id = ? AND answer_uuid = ?", formID, fingerprint).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
