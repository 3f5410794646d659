package dto

import (
	"time"

	"github.com/google/uuid"

	"formku_backend/internals/features/forms/forms/model"
)

// =============================
// 📤 Response DTO
// =============================
type FormDTO struct {
	FormUUID           uuid.UUID `json:"form_uuid"`
	FormName           string    `json:"form_name"`
	FormMessage        string    `json:"form_message"`
	FormSingleResponse bool      `json:"form_single_response"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// =============================
// 📥 Request DTO (Create / Update)
// =============================
type CreateFormRequest struct {
	FormName           string `json:"form_name" validate:"required,max=200"`
	FormMessage        string `json:"form_message" validate:"omitempty,max=1000"`
	FormSingleResponse bool   `json:"form_single_response"`
}

type UpdateFormRequest struct {
	FormName           *string `json:"form_name" validate:"omitempty,max=200"`
	FormMessage        *string `json:"form_message" validate:"omitempty,max=1000"`
	FormSingleResponse *bool   `json:"form_single_response"`
}

// =============================
// 🔁 Converters
// =============================
func ToFormDTO(m model.FormModel) FormDTO {
	return FormDTO{
		FormUUID:           m.FormUUID,
		FormName:           m.FormName,
		FormMessage:        m.FormMessage,
		FormSingleResponse: m.FormSingleResponse,
		CreatedAt:          m.FormCreatedAt,
		UpdatedAt:          m.FormUpdatedAt,
	}
}

func ToFormModel(req CreateFormRequest, userID uuid.UUID) model.FormModel {
	return model.FormModel{
		FormUserID:         userID,
		FormName:           req.FormName,
		FormMessage:        req.FormMessage,
		FormSingleResponse: req.FormSingleResponse,
	}
}
