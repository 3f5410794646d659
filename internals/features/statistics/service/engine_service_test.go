package service

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	sectionModel "formku_backend/internals/features/forms/sections/model"
	"formku_backend/internals/features/statistics/dto"
)

func section(sType string, desc string) sectionModel.SectionModel {
	s := sectionModel.SectionModel{
		SectionUUID: uuid.New(),
		SectionName: "Pertanyaan",
		SectionType: sType,
	}
	if desc != "" {
		s.SectionDesc = datatypes.JSON([]byte(desc))
	}
	return s
}

func answers(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, `{"text":"`+v+`"}`)
	}
	return out
}

func TestComputeSingleChoice(t *testing.T) {
	s := section(sectionModel.SectionTypeSingleChoice, `{"options":["A","B"]}`)
	stat := Compute(s, answers("A", "A", "C"))

	if stat.Kind != dto.StatKindChoice {
		t.Fatalf("kind = %s", stat.Kind)
	}
	want := map[string]int{"A": 2, "B": 0}
	if !reflect.DeepEqual(stat.Counts, want) {
		t.Fatalf("counts = %v, want %v", stat.Counts, want)
	}
	if stat.Total != 2 {
		t.Fatalf("total = %d, want 2 (undeclared option excluded)", stat.Total)
	}
}

func TestComputeMultiChoiceCountsEachSelection(t *testing.T) {
	s := section(sectionModel.SectionTypeMultiChoice, `{"options":["A","B","C"]}`)
	raws := []string{
		`{"text":"[\"A\",\"B\"]"}`,
		`{"text":"[\"B\"]"}`,
		`{"text":"[\"X\"]"}`, // semua pilihan tidak terdeklarasi
	}
	stat := Compute(s, raws)

	want := map[string]int{"A": 1, "B": 2, "C": 0}
	if !reflect.DeepEqual(stat.Counts, want) {
		t.Fatalf("counts = %v, want %v", stat.Counts, want)
	}
	// responden dihitung sekali selama minimal satu pilihannya valid
	if stat.Total != 2 {
		t.Fatalf("total = %d, want 2", stat.Total)
	}
}

func TestComputeRating(t *testing.T) {
	s := section(sectionModel.SectionTypeRating, `{"steps":5}`)
	stat := Compute(s, answers("5", "5", "4", "x"))

	want := map[string]int{"1": 0, "2": 0, "3": 0, "4": 1, "5": 2}
	if !reflect.DeepEqual(stat.Counts, want) {
		t.Fatalf("counts = %v, want %v", stat.Counts, want)
	}
	if stat.Total != 3 {
		t.Fatalf("total = %d, want 3", stat.Total)
	}
	if stat.Average == nil || *stat.Average != 4.67 {
		t.Fatalf("average = %v, want 4.67", stat.Average)
	}
}

func TestComputeRatingOutOfRangeExcluded(t *testing.T) {
	s := section(sectionModel.SectionTypeRating, `{"steps":5}`)
	stat := Compute(s, answers("0", "6", "3"))

	if stat.Total != 1 {
		t.Fatalf("total = %d, want 1", stat.Total)
	}
	if stat.Average == nil || *stat.Average != 3 {
		t.Fatalf("average = %v, want 3", stat.Average)
	}
}

func TestComputeRatingNoValidAnswers(t *testing.T) {
	s := section(sectionModel.SectionTypeRating, "")
	stat := Compute(s, answers("x", "y"))

	if stat.Total != 0 {
		t.Fatalf("total = %d, want 0", stat.Total)
	}
	if stat.Average != nil {
		t.Fatalf("average harus absen saat tidak ada jawaban valid, got %v", *stat.Average)
	}
	if len(stat.Counts) != sectionModel.DefaultRatingSteps {
		t.Fatalf("counts harus tetap berisi semua step default, got %v", stat.Counts)
	}
}

func TestComputeBinary(t *testing.T) {
	s := section(sectionModel.SectionTypeBinaryChoice, "")
	stat := Compute(s, answers("true", "Yes", "ya", "false", "maybe"))

	want := map[string]int{"yes": 3, "no": 1}
	if !reflect.DeepEqual(stat.Counts, want) {
		t.Fatalf("counts = %v, want %v", stat.Counts, want)
	}
	if stat.Total != 4 {
		t.Fatalf("total = %d, want 4", stat.Total)
	}
}

func TestComputeSlider(t *testing.T) {
	s := section(sectionModel.SectionTypeSlider, `{"min":0,"max":10,"divisions":10}`)
	stat := Compute(s, answers("2", "8", "abc"))

	if stat.Total != 2 {
		t.Fatalf("total = %d, want 2", stat.Total)
	}
	if stat.Average == nil || *stat.Average != 5 {
		t.Fatalf("average = %v, want 5", stat.Average)
	}
	if stat.Min == nil || *stat.Min != 2 {
		t.Fatalf("min = %v, want 2", stat.Min)
	}
	if stat.Max == nil || *stat.Max != 8 {
		t.Fatalf("max = %v, want 8", stat.Max)
	}
	if stat.Slider == nil || stat.Slider.Max != 10 || stat.Slider.Divisions != 10 {
		t.Fatalf("slider config tidak di-echo: %+v", stat.Slider)
	}
}

func TestComputeFreeTextKeepsArrivalOrder(t *testing.T) {
	s := section(sectionModel.SectionTypeFreeText, "")
	stat := Compute(s, answers("pertama", "", "kedua", "   "))

	if stat.Total != 2 {
		t.Fatalf("total = %d, want 2 (kosong dikecualikan)", stat.Total)
	}
	if stat.Texts[0] != "pertama" || stat.Texts[1] != "kedua" {
		t.Fatalf("urutan kedatangan tidak terjaga: %v", stat.Texts)
	}
}

func TestComputeUnknownTypeNeverPanics(t *testing.T) {
	s := section("matrix_grid", `{"rows":3}`)
	stat := Compute(s, answers("a", "b"))

	if stat.Kind != dto.StatKindUnknown {
		t.Fatalf("kind = %s, want unknown", stat.Kind)
	}
	if stat.Total != 2 {
		t.Fatalf("total = %d, want 2", stat.Total)
	}
}

func TestComputeMalformedDescriptorFallsBack(t *testing.T) {
	s := section(sectionModel.SectionTypeRating, `{not valid json`)
	stat := Compute(s, answers("3"))

	if stat.Total != 1 {
		t.Fatalf("total = %d, want 1 (descriptor rusak pakai default)", stat.Total)
	}
	if len(stat.Counts) != sectionModel.DefaultRatingSteps {
		t.Fatalf("counts = %v, want %d steps default", stat.Counts, sectionModel.DefaultRatingSteps)
	}
}
