package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"formku_backend/internals/features/forms/sections/dto"
	"formku_backend/internals/features/forms/sections/model"
	helper "formku_backend/internals/helpers"
)

// PublicSectionController melayani responden (tanpa login).
// Kontrak wire lama frontend: {data: [...]} / {error}.
type PublicSectionController struct {
	DB *gorm.DB
}

func NewPublicSectionController(db *gorm.DB) *PublicSectionController {
	return &PublicSectionController{DB: db}
}

// GET /api/sections?form_id=<id>
func (ctrl *PublicSectionController) ListSections(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Query("form_id"))
	if err != nil {
		return helper.WireError(c, fiber.StatusBadRequest, "form_id is required")
	}

	var sections []model.SectionModel
	if err := ctrl.DB.
		Where("section_form_id = ? AND section_deleted = false", formID).
		Order("section_order ASC").
		Find(&sections).Error; err != nil {
		return helper.WireError(c, fiber.StatusInternalServerError, "failed to retrieve sections")
	}

	response := make([]dto.SectionDTO, 0, len(sections))
	for _, s := range sections {
		response = append(response, dto.ToSectionDTO(s))
	}
	return helper.WireData(c, response)
}
