package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Tipe pertanyaan yang didukung (closed set).
const (
	SectionTypeSingleChoice = "single_choice"
	SectionTypeMultiChoice  = "multi_choice"
	SectionTypeRating       = "rating"
	SectionTypeFreeText     = "free_text"
	SectionTypeBinaryChoice = "binary_choice"
	SectionTypeSlider       = "slider"
)

func IsValidSectionType(t string) bool {
	switch t {
	case SectionTypeSingleChoice, SectionTypeMultiChoice, SectionTypeRating,
		SectionTypeFreeText, SectionTypeBinaryChoice, SectionTypeSlider:
		return true
	}
	return false
}

type SectionModel struct {
	SectionUUID    uuid.UUID      `gorm:"column:section_uuid;primaryKey;type:uuid;default:gen_random_uuid()" json:"section_uuid"`
	SectionFormID  uuid.UUID      `gorm:"column:section_form_id;type:uuid;not null;index" json:"section_form_id"`
	SectionName    string         `gorm:"column:section_name;type:text;not null" json:"section_name"`
	SectionOrder   int            `gorm:"column:section_order;not null" json:"section_order"` // 1..N rapat per form
	SectionType    string         `gorm:"column:section_type;type:varchar(20);not null" json:"section_type"`
	SectionDesc    datatypes.JSON `gorm:"column:section_desc;type:jsonb" json:"section_desc"` // descriptor per tipe, opaque JSON
	SectionDeleted bool           `gorm:"column:section_deleted;not null;default:false" json:"section_deleted"`
	CreatedAt      time.Time      `gorm:"column:section_created_at;autoCreateTime" json:"section_created_at"`
	UpdatedAt      time.Time      `gorm:"column:section_updated_at;autoUpdateTime" json:"section_updated_at"`
}

func (SectionModel) TableName() string {
	return "sections"
}
