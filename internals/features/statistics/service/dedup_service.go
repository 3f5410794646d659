package service

import (
	"github.com/google/uuid"

	answerModel "formku_backend/internals/features/forms/answers/model"
)

// Deduplicate merapikan baris answers mentah menjadi satu jawaban otoritatif
// per (responden, section). Aturan: baris dengan answer_created_at terbaru
// menang; kalau timestamp-nya persis sama, baris yang muncul BELAKANGAN di
// input yang menang (pilihan perilaku yang disengaja supaya deterministik,
// bukan ambigu). Murni: tidak menyentuh DB.
//
// liveSections membatasi hasil ke section yang masih hidup — jawaban untuk
// pertanyaan yang sudah dihapus dibuang, bukan error.
func Deduplicate(records []answerModel.AnswerModel, liveSections map[uuid.UUID]bool) map[uuid.UUID]map[uuid.UUID]answerModel.AnswerModel {
	result := make(map[uuid.UUID]map[uuid.UUID]answerModel.AnswerModel)

	for _, rec := range records {
		if liveSections != nil && !liveSections[rec.AnswerSectionID] {
			continue
		}

		perSection, ok := result[rec.AnswerUUID]
		if !ok {
			perSection = make(map[uuid.UUID]answerModel.AnswerModel)
			result[rec.AnswerUUID] = perSection
		}

		current, exists := perSection[rec.AnswerSectionID]
		// >= : seri timestamp → yang terakhir dilihat menang
		if !exists || !rec.AnswerCreatedAt.Before(current.AnswerCreatedAt) {
			perSection[rec.AnswerSectionID] = rec
		}
	}

	return result
}

// AuthoritativeBySection membalik hasil dedup menjadi daftar jawaban
// otoritatif per section (dipakai engine statistik).
func AuthoritativeBySection(deduped map[uuid.UUID]map[uuid.UUID]answerModel.AnswerModel) map[uuid.UUID][]answerModel.AnswerModel {
	bySection := make(map[uuid.UUID][]answerModel.AnswerModel)
	for _, perSection := range deduped {
		for sectionID, rec := range perSection {
			bySection[sectionID] = append(bySection[sectionID], rec)
		}
	}
	return bySection
}
