package service

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"formku_backend/internals/features/forms/answers/dto"
	"formku_backend/internals/features/forms/answers/model"
	formModel "formku_backend/internals/features/forms/forms/model"
	sectionModel "formku_backend/internals/features/forms/sections/model"
	"formku_backend/internals/features/statistics/live"
	statService "formku_backend/internals/features/statistics/service"
)

var (
	ErrFormNotFound    = errors.New("form tidak ditemukan")
	ErrSectionNotFound = errors.New("pertanyaan tidak ditemukan")
)

// EmotionPredictor: sisi AI yang dipanggil fire-and-forget setelah jawaban
// tersimpan. Interface supaya service bisa diuji tanpa layanan AI.
type EmotionPredictor interface {
	PredictEmotionAsync(answerSectionID uuid.UUID)
}

// AnswerService menyimpan jawaban lalu mendorong statistik terbaru ke
// dashboard yang sedang menonton.
type AnswerService struct {
	DB  *gorm.DB
	Hub *live.Hub
	AI  EmotionPredictor // boleh nil (AI dimatikan)
}

func NewAnswerService(db *gorm.DB, hub *live.Hub, ai EmotionPredictor) *AnswerService {
	return &AnswerService{DB: db, Hub: hub, AI: ai}
}

// SaveAnswer menulis satu baris jawaban. Tulisan ulang untuk (responden,
// pertanyaan) yang sama TIDAK menimpa baris lama — baris baru ditambah dan
// dedup statistik yang memilih yang otoritatif.
//
// Setelah tulisan durable: hitung ulang statistik pertanyaan itu, publish ke
// hub, lalu tembakkan prediksi emosi untuk free text. Kegagalan push/AI tidak
// pernah membatalkan jawaban yang sudah tersimpan.
func (s *AnswerService) SaveAnswer(req dto.CreateAnswerRequest) (*model.AnswerModel, error) {
	var form formModel.FormModel
	if err := s.DB.
		Where("form_uuid = ? AND form_deleted = FALSE", req.FormID).
		First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	var section sectionModel.SectionModel
	if err := s.DB.
		Where("section_uuid = ? AND section_form_id = ? AND section_deleted = FALSE", req.SectionID, req.FormID).
		First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	row := model.AnswerModel{
		AnswerSectionUUID: uuid.New(),
		AnswerUUID:        req.AnswerID,
		AnswerFormID:      req.FormID,
		AnswerSectionID:   req.SectionID,
		AnswerData:        req.AnswerData,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return nil, err
	}

	s.publishUpdate(form.FormUUID, section)

	if s.AI != nil && section.SectionType == sectionModel.SectionTypeFreeText {
		s.AI.PredictEmotionAsync(row.AnswerSectionUUID)
	}

	return &row, nil
}

// publishUpdate menghitung ulang statistik SATU pertanyaan plus jumlah
// responden form, lalu mendorongnya ke hub. Best effort: kalau query gagal,
// cukup dicatat — dashboard akan menyamakan diri di rebuild berikutnya.
func (s *AnswerService) publishUpdate(formID uuid.UUID, section sectionModel.SectionModel) {
	if s.Hub == nil || s.Hub.SubscriberCount(formID.String()) == 0 {
		return
	}

	var records []model.AnswerModel
	if err := s.DB.
		Where("answer_section_id = ?", section.SectionUUID).
		Order("answer_created_at ASC").
		Find(&records).Error; err != nil {
		log.Printf("[WARN] gagal ambil jawaban untuk push statistik (section=%s): %v", section.SectionUUID, err)
		return
	}

	deduped := statService.Deduplicate(records, map[uuid.UUID]bool{section.SectionUUID: true})
	bySection := statService.AuthoritativeBySection(deduped)

	raws := make([]string, 0, len(bySection[section.SectionUUID]))
	for _, rec := range bySection[section.SectionUUID] {
		raws = append(raws, rec.AnswerData)
	}
	stat := statService.Compute(section, raws)

	var respondents int64
	if err := s.DB.Model(&model.AnswerModel{}).
		Where("answer_form_id = ?", formID).
		Distinct("answer_uuid").
		Count(&respondents).Error; err != nil {
		log.Printf("[WARN] gagal hitung responden untuk push statistik (form=%s): %v", formID, err)
		respondents = 0 // monotonic max di sisi penerima menjaga angka tidak turun
	}

	s.Hub.Publish(formID.String(), live.Event{
		Type:            live.EventStatisticsUpdate,
		QuestionID:      section.SectionUUID.String(),
		Statistics:      &stat,
		RespondentCount: int(respondents),
	})
}
