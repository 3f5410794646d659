package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	answerDTO "formku_backend/internals/features/forms/answers/dto"
	answerService "formku_backend/internals/features/forms/answers/service"
	sectionModel "formku_backend/internals/features/forms/sections/model"
	"formku_backend/internals/features/respondents/flow"
)

// GormQuestionLoader: flow.Loader di atas tabel sections — hanya pertanyaan
// hidup, urut section_order.
type GormQuestionLoader struct {
	DB *gorm.DB
}

func (l *GormQuestionLoader) LoadQuestions(ctx context.Context, formID uuid.UUID) ([]uuid.UUID, error) {
	var sections []sectionModel.SectionModel
	if err := l.DB.WithContext(ctx).
		Select("section_uuid").
		Where("section_form_id = ? AND section_deleted = FALSE", formID).
		Order("section_order ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.SectionUUID)
	}
	return ids, nil
}

// AnswerFlowSaver: flow.Saver yang menulis lewat pipeline jawaban lengkap
// (simpan + push statistik + prediksi emosi).
type AnswerFlowSaver struct {
	Answers *answerService.AnswerService
}

func (s *AnswerFlowSaver) SaveAnswer(_ context.Context, formID, sectionID, answerID uuid.UUID, value string) error {
	_, err := s.Answers.SaveAnswer(answerDTO.CreateAnswerRequest{
		FormID:     formID,
		SectionID:  sectionID,
		AnswerID:   answerID,
		AnswerData: value,
	})
	return err
}

// NewAnswerFlow merangkai FSM pengisian untuk satu attempt di atas database
// dan pipeline jawaban yang sama dengan endpoint publik.
func NewAnswerFlow(db *gorm.DB, answers *answerService.AnswerService, formID, answerID uuid.UUID) *flow.Flow {
	return flow.New(&GormQuestionLoader{DB: db}, &AnswerFlowSaver{Answers: answers}, formID, answerID)
}
