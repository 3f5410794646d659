package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"formku_backend/internals/features/forms/sections/model"
)

// =============================
// 📤 Response DTO
// =============================
type SectionDTO struct {
	SectionUUID  uuid.UUID      `json:"section_uuid"`
	FormUUID     uuid.UUID      `json:"form_uuid"`
	SectionName  string         `json:"section_name"`
	SectionOrder int            `json:"section_order"`
	SectionType  string         `json:"section_type"`
	SectionDesc  datatypes.JSON `json:"section_desc"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// =============================
// 📥 Request DTO
// =============================
type CreateSectionRequest struct {
	FormUUID    uuid.UUID      `json:"form_uuid" validate:"required"`
	SectionName string         `json:"section_name" validate:"required,max=500"`
	SectionType string         `json:"section_type" validate:"required,oneof=single_choice multi_choice rating free_text binary_choice slider"`
	SectionDesc datatypes.JSON `json:"section_desc"`
}

type UpdateSectionRequest struct {
	SectionName *string         `json:"section_name" validate:"omitempty,max=500"`
	SectionType *string         `json:"section_type" validate:"omitempty,oneof=single_choice multi_choice rating free_text binary_choice slider"`
	SectionDesc *datatypes.JSON `json:"section_desc"`
}

type ReorderSectionsRequest struct {
	FormUUID     uuid.UUID   `json:"form_uuid" validate:"required"`
	SectionUUIDs []uuid.UUID `json:"section_uuids" validate:"required,min=1"`
}

// =============================
// 🔁 Converters
// =============================
func ToSectionDTO(m model.SectionModel) SectionDTO {
	return SectionDTO{
		SectionUUID:  m.SectionUUID,
		FormUUID:     m.SectionFormID,
		SectionName:  m.SectionName,
		SectionOrder: m.SectionOrder,
		SectionType:  m.SectionType,
		SectionDesc:  m.SectionDesc,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToSectionModel(req CreateSectionRequest) model.SectionModel {
	return model.SectionModel{
		SectionFormID: req.FormUUID,
		SectionName:   req.SectionName,
		SectionType:   req.SectionType,
		SectionDesc:   req.SectionDesc,
	}
}
