package model

import "testing"

func TestParseDescriptorChoice(t *testing.T) {
	desc := ParseDescriptor(SectionTypeSingleChoice, []byte(`{"options":["A","B"]}`))
	if desc.Kind != DescriptorKindChoice {
		t.Fatalf("expected choice kind, got %s", desc.Kind)
	}
	if len(desc.Options) != 2 || desc.Options[0] != "A" {
		t.Fatalf("unexpected options: %v", desc.Options)
	}
}

func TestParseDescriptorChoiceBareArray(t *testing.T) {
	desc := ParseDescriptor(SectionTypeMultiChoice, []byte(`["X","Y","Z"]`))
	if len(desc.Options) != 3 {
		t.Fatalf("expected 3 options, got %v", desc.Options)
	}
}

func TestParseDescriptorMalformedNeverFails(t *testing.T) {
	cases := []struct {
		sectionType string
		raw         string
	}{
		{SectionTypeSingleChoice, `{oops`},
		{SectionTypeRating, `{"steps":"five"}`},
		{SectionTypeSlider, `not json at all`},
		{SectionTypeSingleChoice, ``},
		{SectionTypeSlider, `null`},
	}
	for _, tc := range cases {
		desc := ParseDescriptor(tc.sectionType, []byte(tc.raw))
		if desc.Kind == "" {
			t.Fatalf("descriptor kind empty for %s %q", tc.sectionType, tc.raw)
		}
	}
}

func TestParseDescriptorRatingDefaults(t *testing.T) {
	desc := ParseDescriptor(SectionTypeRating, []byte(``))
	if desc.Steps != DefaultRatingSteps {
		t.Fatalf("expected default %d steps, got %d", DefaultRatingSteps, desc.Steps)
	}

	desc = ParseDescriptor(SectionTypeRating, []byte(`{"steps":7}`))
	if desc.Steps != 7 {
		t.Fatalf("expected 7 steps, got %d", desc.Steps)
	}

	// bentuk lama: angka polos
	desc = ParseDescriptor(SectionTypeRating, []byte(`10`))
	if desc.Steps != 10 {
		t.Fatalf("expected 10 steps, got %d", desc.Steps)
	}
}

func TestParseDescriptorSlider(t *testing.T) {
	desc := ParseDescriptor(SectionTypeSlider, []byte(`{"min":1,"max":100,"divisions":20,"labels":["low","high"]}`))
	if desc.Min != 1 || desc.Max != 100 || desc.Divisions != 20 {
		t.Fatalf("unexpected slider config: %+v", desc)
	}
	if len(desc.Labels) != 2 {
		t.Fatalf("expected 2 labels, got %v", desc.Labels)
	}

	// rusak → default
	desc = ParseDescriptor(SectionTypeSlider, []byte(`{{`))
	if desc.Min != DefaultSliderMin || desc.Max != DefaultSliderMax {
		t.Fatalf("expected defaults, got %+v", desc)
	}
}

func TestParseDescriptorUnknownTypeLegacy(t *testing.T) {
	desc := ParseDescriptor("matrix", []byte(`{"rows":3}`))
	if desc.Kind != DescriptorKindLegacy {
		t.Fatalf("expected legacy kind, got %s", desc.Kind)
	}
	if desc.Raw == "" {
		t.Fatalf("legacy descriptor should keep raw payload")
	}
}
