package model

import (
	"encoding/json"
	"strings"
)

// Kind descriptor hasil parse.
const (
	DescriptorKindChoice = "choice"
	DescriptorKindRating = "rating"
	DescriptorKindSlider = "slider"
	DescriptorKindText   = "text"
	DescriptorKindLegacy = "legacy" // JSON tidak bisa diparse → simpan mentah, jangan gagalkan agregasi
)

// Default kalau descriptor kosong/rusak.
const (
	DefaultRatingSteps    = 5
	DefaultSliderMin      = 0
	DefaultSliderMax      = 10
	DefaultSliderDivision = 10
)

// SectionDescriptor adalah tagged union dari section_desc:
//   - choice  : daftar opsi
//   - rating  : jumlah step
//   - slider  : {min, max, divisions, labels}
//   - legacy  : payload mentah yang tidak bisa diparse
type SectionDescriptor struct {
	Kind      string   `json:"kind"`
	Options   []string `json:"options,omitempty"`
	Steps     int      `json:"steps,omitempty"`
	Min       float64  `json:"min,omitempty"`
	Max       float64  `json:"max,omitempty"`
	Divisions int      `json:"divisions,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	Raw       string   `json:"raw,omitempty"`
}

type sliderDescJSON struct {
	Min       *float64 `json:"min"`
	Max       *float64 `json:"max"`
	Divisions *int     `json:"divisions"`
	Labels    []string `json:"labels"`
}

type choiceDescJSON struct {
	Options []string `json:"options"`
}

type ratingDescJSON struct {
	Steps *int `json:"steps"`
}

// ParseDescriptor menafsirkan section_desc sesuai tipe section.
// TIDAK PERNAH error: descriptor kosong/rusak jatuh ke default aman
// (atau kind legacy) supaya satu metadata rusak tidak menggagalkan
// agregasi seluruh form.
func ParseDescriptor(sectionType string, raw []byte) SectionDescriptor {
	trimmed := strings.TrimSpace(string(raw))

	switch sectionType {
	case SectionTypeSingleChoice, SectionTypeMultiChoice, SectionTypeBinaryChoice:
		return parseChoiceDescriptor(trimmed)
	case SectionTypeRating:
		return parseRatingDescriptor(trimmed)
	case SectionTypeSlider:
		return parseSliderDescriptor(trimmed)
	case SectionTypeFreeText:
		return SectionDescriptor{Kind: DescriptorKindText}
	default:
		return SectionDescriptor{Kind: DescriptorKindLegacy, Raw: trimmed}
	}
}

func parseChoiceDescriptor(trimmed string) SectionDescriptor {
	desc := SectionDescriptor{Kind: DescriptorKindChoice, Options: []string{}}
	if trimmed == "" || trimmed == "null" {
		return desc
	}

	// bentuk utama: {"options": [...]}
	var obj choiceDescJSON
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil && obj.Options != nil {
		desc.Options = obj.Options
		return desc
	}

	// bentuk lama: array polos ["A","B"]
	var arr []string
	if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
		desc.Options = arr
		return desc
	}

	return SectionDescriptor{Kind: DescriptorKindLegacy, Raw: trimmed}
}

func parseRatingDescriptor(trimmed string) SectionDescriptor {
	desc := SectionDescriptor{Kind: DescriptorKindRating, Steps: DefaultRatingSteps}
	if trimmed == "" || trimmed == "null" {
		return desc
	}

	var obj ratingDescJSON
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil && obj.Steps != nil && *obj.Steps > 0 {
		desc.Steps = *obj.Steps
		return desc
	}

	// bentuk lama: angka polos
	var n int
	if err := json.Unmarshal([]byte(trimmed), &n); err == nil && n > 0 {
		desc.Steps = n
		return desc
	}

	return desc // rusak → default 5 step, agregasi jalan terus
}

func parseSliderDescriptor(trimmed string) SectionDescriptor {
	desc := SectionDescriptor{
		Kind:      DescriptorKindSlider,
		Min:       DefaultSliderMin,
		Max:       DefaultSliderMax,
		Divisions: DefaultSliderDivision,
	}
	if trimmed == "" || trimmed == "null" {
		return desc
	}

	var obj sliderDescJSON
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return desc
	}
	if obj.Min != nil {
		desc.Min = *obj.Min
	}
	if obj.Max != nil {
		desc.Max = *obj.Max
	}
	if obj.Divisions != nil && *obj.Divisions > 0 {
		desc.Divisions = *obj.Divisions
	}
	if obj.Labels != nil {
		desc.Labels = obj.Labels
	}
	return desc
}
