package service

import (
	"math"
	"strconv"
	"strings"

	answerModel "formku_backend/internals/features/forms/answers/model"
	sectionModel "formku_backend/internals/features/forms/sections/model"
	"formku_backend/internals/features/statistics/dto"
)

// Compute menghitung statistik satu pertanyaan dari jawaban otoritatif
// (payload answer_data mentah, urut kedatangan). Murni dan tidak pernah
// error: nilai yang tidak valid di-skip diam-diam, descriptor rusak jatuh
// ke default — satu metadata jelek tidak boleh menggagalkan agregasi.
func Compute(section sectionModel.SectionModel, rawAnswers []string) dto.QuestionStatistic {
	stat := dto.QuestionStatistic{
		SectionUUID: section.SectionUUID,
		SectionName: section.SectionName,
		SectionType: section.SectionType,
	}

	desc := sectionModel.ParseDescriptor(section.SectionType, section.SectionDesc)

	switch section.SectionType {
	case sectionModel.SectionTypeSingleChoice:
		computeChoice(&stat, desc.Options, rawAnswers, false)
	case sectionModel.SectionTypeMultiChoice:
		computeChoice(&stat, desc.Options, rawAnswers, true)
	case sectionModel.SectionTypeRating:
		computeRating(&stat, desc.Steps, rawAnswers)
	case sectionModel.SectionTypeBinaryChoice:
		computeBinary(&stat, rawAnswers)
	case sectionModel.SectionTypeSlider:
		computeSlider(&stat, desc, rawAnswers)
	case sectionModel.SectionTypeFreeText:
		computeFreeText(&stat, rawAnswers)
	default:
		// tipe di luar closed set: jangan panik, bawa total saja
		stat.Kind = dto.StatKindUnknown
		stat.Total = len(rawAnswers)
	}

	return stat
}

// --- choice (single & multi) ---
// Jawaban yang bukan salah satu opsi terdeklarasi di-skip diam-diam:
// toleransi terhadap daftar opsi yang sudah diedit setelah jawaban masuk.
func computeChoice(stat *dto.QuestionStatistic, options []string, rawAnswers []string, multi bool) {
	stat.Kind = dto.StatKindChoice
	stat.Counts = make(map[string]int, len(options))

	declared := make(map[string]bool, len(options))
	for _, opt := range options {
		stat.Counts[opt] = 0
		declared[opt] = true
	}

	for _, raw := range rawAnswers {
		var values []string
		if multi {
			values = answerModel.DecodeValues(raw)
		} else {
			if v := answerModel.DecodeValue(raw); v != "" {
				values = []string{v}
			}
		}

		counted := false
		for _, v := range values {
			if declared[v] {
				stat.Counts[v]++
				counted = true
			}
		}
		if counted {
			stat.Total++
		}
	}
}

// --- rating ---
func computeRating(stat *dto.QuestionStatistic, steps int, rawAnswers []string) {
	stat.Kind = dto.StatKindRating
	if steps <= 0 {
		steps = sectionModel.DefaultRatingSteps
	}

	stat.Counts = make(map[string]int, steps)
	for i := 1; i <= steps; i++ {
		stat.Counts[strconv.Itoa(i)] = 0
	}

	sum := 0
	for _, raw := range rawAnswers {
		v := answerModel.DecodeValue(raw)
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 || n > steps {
			continue // non-numerik / di luar range: keluar dari count DAN mean
		}
		stat.Counts[strconv.Itoa(n)]++
		stat.Total++
		sum += n
	}

	if stat.Total > 0 {
		avg := round2(float64(sum) / float64(stat.Total))
		stat.Average = &avg
	}
}

// --- binary ---
// Menerima boolean true/false atau string yang berarti ya/tidak.
func computeBinary(stat *dto.QuestionStatistic, rawAnswers []string) {
	stat.Kind = dto.StatKindBinary
	stat.Counts = map[string]int{"yes": 0, "no": 0}

	for _, raw := range rawAnswers {
		v := strings.ToLower(strings.TrimSpace(answerModel.DecodeValue(raw)))
		switch v {
		case "true", "yes", "ya":
			stat.Counts["yes"]++
			stat.Total++
		case "false", "no", "tidak":
			stat.Counts["no"]++
			stat.Total++
		}
		// selain itu: dikecualikan
	}
}

// --- slider ---
func computeSlider(stat *dto.QuestionStatistic, desc sectionModel.SectionDescriptor, rawAnswers []string) {
	stat.Kind = dto.StatKindSlider
	stat.Slider = &dto.SliderConfig{
		Min:       desc.Min,
		Max:       desc.Max,
		Divisions: desc.Divisions,
		Labels:    desc.Labels,
	}

	sum := 0.0
	var observedMin, observedMax float64
	for _, raw := range rawAnswers {
		v := answerModel.DecodeValue(raw)
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			continue // non-numerik dikecualikan
		}
		if stat.Total == 0 {
			observedMin, observedMax = n, n
		} else {
			observedMin = math.Min(observedMin, n)
			observedMax = math.Max(observedMax, n)
		}
		stat.Total++
		sum += n
	}

	if stat.Total > 0 {
		avg := round2(sum / float64(stat.Total))
		stat.Average = &avg
		stat.Min = &observedMin
		stat.Max = &observedMax
	}
}

// --- free text ---
func computeFreeText(stat *dto.QuestionStatistic, rawAnswers []string) {
	stat.Kind = dto.StatKindText
	stat.Texts = []string{}

	for _, raw := range rawAnswers {
		v := strings.TrimSpace(answerModel.DecodeValue(raw))
		if v == "" {
			continue
		}
		stat.Texts = append(stat.Texts, v)
	}
	stat.Total = len(stat.Texts)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
