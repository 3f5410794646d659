package service

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	answerModel "formku_backend/internals/features/forms/answers/model"
	sectionModel "formku_backend/internals/features/forms/sections/model"
	"formku_backend/internals/features/statistics/dto"
)

// BuildSnapshot membangun snapshot lengkap dari nol: dedup → engine per
// section → total responden unik & rata-rata respons per pertanyaan.
// Idempotent: input sama → snapshot identik bit-per-bit (urutan jawaban
// per section diurutkan deterministik sebelum dihitung).
func BuildSnapshot(formID uuid.UUID, sections []sectionModel.SectionModel, records []answerModel.AnswerModel) *dto.StatisticsSnapshot {
	live := make([]sectionModel.SectionModel, 0, len(sections))
	liveSet := make(map[uuid.UUID]bool, len(sections))
	for _, s := range sections {
		if !s.SectionDeleted {
			live = append(live, s)
			liveSet[s.SectionUUID] = true
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].SectionOrder < live[j].SectionOrder
	})

	deduped := Deduplicate(records, liveSet)
	bySection := AuthoritativeBySection(deduped)

	snapshot := &dto.StatisticsSnapshot{
		FormUUID:       formID,
		TotalQuestions: len(live),
		Questions:      make([]dto.QuestionStatistic, 0, len(live)),
	}

	sumResponses := 0
	for _, section := range live {
		answers := bySection[section.SectionUUID]
		// urutan kedatangan deterministik: created_at, lalu pk baris
		sort.SliceStable(answers, func(i, j int) bool {
			if answers[i].AnswerCreatedAt.Equal(answers[j].AnswerCreatedAt) {
				return answers[i].AnswerSectionUUID.String() < answers[j].AnswerSectionUUID.String()
			}
			return answers[i].AnswerCreatedAt.Before(answers[j].AnswerCreatedAt)
		})

		raws := make([]string, 0, len(answers))
		for _, a := range answers {
			raws = append(raws, a.AnswerData)
		}

		stat := Compute(section, raws)
		sumResponses += stat.Total
		snapshot.Questions = append(snapshot.Questions, stat)
	}

	// responden yang menjawab minimal satu pertanyaan dihitung sekali
	snapshot.TotalRespondents = len(deduped)
	if len(live) > 0 {
		snapshot.AvgResponsesPerQuestion = round2(float64(sumResponses) / float64(len(live)))
	}

	return snapshot
}

// Aggregator memiliki snapshot "current" milik satu sesi dashboard dan
// menjaga merge basi tidak menimpa hasil rebuild yang lebih baru: merge
// hanya diterima kalau snapshot yang dipatch masih snapshot current
// (cek referensi, bukan lock data — semua jalan di satu event loop,
// tapi callback rebuild lama tetap bisa mendarat belakangan).
type Aggregator struct {
	mu      sync.Mutex
	current *dto.StatisticsSnapshot
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Rebuild membangun snapshot baru dan menjadikannya current.
func (a *Aggregator) Rebuild(formID uuid.UUID, sections []sectionModel.SectionModel, records []answerModel.AnswerModel) *dto.StatisticsSnapshot {
	snapshot := BuildSnapshot(formID, sections, records)
	a.Install(snapshot)
	return snapshot
}

// Install menjadikan snapshot hasil rebuild eksternal (mis. dari server)
// sebagai current. Merge yang masih memegang snapshot lama otomatis basi.
func (a *Aggregator) Install(snapshot *dto.StatisticsSnapshot) {
	a.mu.Lock()
	a.current = snapshot
	a.mu.Unlock()
}

// Current mengembalikan snapshot yang sedang dipegang (bisa nil).
func (a *Aggregator) Current() *dto.StatisticsSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// MergeIncremental mengganti statistik satu pertanyaan in place dan
// menaikkan total responden secara monotonic max — BUKAN hitung ulang,
// karena push event hanya membawa pandangan parsial; ini aproksimasi
// yang disadari, bukan jaminan kebenaran. Aturan:
//   - snapshot yang dipatch bukan current → merge basi, no-op (false)
//   - pertanyaan tidak dikenal snapshot → no-op (false), tidak pernah
//     menghapus statistik yang sudah ada
func (a *Aggregator) MergeIncremental(snapshot *dto.StatisticsSnapshot, sectionID uuid.UUID, stat dto.QuestionStatistic, respondentCount int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if snapshot == nil || snapshot != a.current {
		return false
	}

	idx := -1
	for i := range snapshot.Questions {
		if snapshot.Questions[i].SectionUUID == sectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	snapshot.Questions[idx] = stat

	if respondentCount > snapshot.TotalRespondents {
		snapshot.TotalRespondents = respondentCount
	}

	// rata-rata respons per pertanyaan ikut disegarkan dari total terbaru
	if snapshot.TotalQuestions > 0 {
		sum := 0
		for i := range snapshot.Questions {
			sum += snapshot.Questions[i].Total
		}
		snapshot.AvgResponsesPerQuestion = round2(float64(sum) / float64(snapshot.TotalQuestions))
	}

	return true
}
