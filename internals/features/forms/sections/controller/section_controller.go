package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	formModel "formku_backend/internals/features/forms/forms/model"
	"formku_backend/internals/features/forms/sections/dto"
	"formku_backend/internals/features/forms/sections/model"
	"formku_backend/internals/features/forms/sections/service"
	helper "formku_backend/internals/helpers"
)

var validate = validator.New()

type SectionController struct {
	DB *gorm.DB
}

func NewSectionController(db *gorm.DB) *SectionController {
	return &SectionController{DB: db}
}

// =============================
// ➕ Create Section (order otomatis N+1)
// =============================
func (ctrl *SectionController) CreateSection(c *fiber.Ctx) error {
	var req dto.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := ctrl.ensureOwnsForm(c, req.FormUUID); err != nil {
		return err
	}

	section := dto.ToSectionModel(req)
	order, err := service.NextOrder(ctrl.DB, req.FormUUID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute section order")
	}
	section.SectionOrder = order

	if err := ctrl.DB.Create(&section).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create section")
	}
	return helper.JsonCreated(c, "Section berhasil dibuat", dto.ToSectionDTO(section))
}

// =============================
// ✏️ Update Section
// =============================
func (ctrl *SectionController) UpdateSection(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section id")
	}

	var req dto.UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	section, err := ctrl.findLiveSection(c, sectionID)
	if err != nil {
		return err
	}
	if err := ctrl.ensureOwnsForm(c, section.SectionFormID); err != nil {
		return err
	}

	updates := map[string]any{}
	if req.SectionName != nil {
		updates["section_name"] = *req.SectionName
	}
	if req.SectionType != nil {
		updates["section_type"] = *req.SectionType
	}
	if req.SectionDesc != nil {
		updates["section_desc"] = *req.SectionDesc
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "nothing to update", dto.ToSectionDTO(*section))
	}

	if err := ctrl.DB.Model(section).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update section")
	}
	return helper.JsonUpdated(c, "Section berhasil diupdate", dto.ToSectionDTO(*section))
}

// =============================
// ❌ Soft Delete Section + rapetin urutan
// =============================
func (ctrl *SectionController) DeleteSection(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section id")
	}

	section, err := ctrl.findLiveSection(c, sectionID)
	if err != nil {
		return err
	}
	if err := ctrl.ensureOwnsForm(c, section.SectionFormID); err != nil {
		return err
	}

	if err := ctrl.DB.Model(section).Update("section_deleted", true).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete section")
	}
	// urutan harus tetap 1..N rapat setelah hapus
	if err := service.Compact(ctrl.DB, section.SectionFormID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compact section order")
	}
	return helper.JsonDeleted(c, "Section berhasil dihapus", fiber.Map{"section_uuid": section.SectionUUID})
}

// =============================
// 🔀 Reorder Sections (tulis ulang 1..N)
// =============================
func (ctrl *SectionController) ReorderSections(c *fiber.Ctx) error {
	var req dto.ReorderSectionsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := ctrl.ensureOwnsForm(c, req.FormUUID); err != nil {
		return err
	}

	if err := service.Reorder(ctrl.DB, req.FormUUID, req.SectionUUIDs); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reorder sections")
	}

	var sections []model.SectionModel
	if err := ctrl.DB.
		Where("section_form_id = ? AND section_deleted = false", req.FormUUID).
		Order("section_order ASC").
		Find(&sections).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload sections")
	}

	response := make([]dto.SectionDTO, 0, len(sections))
	for _, s := range sections {
		response = append(response, dto.ToSectionDTO(s))
	}
	return helper.JsonUpdated(c, "Urutan section berhasil diupdate", response)
}

// --- helper privat ---

func (ctrl *SectionController) findLiveSection(c *fiber.Ctx, sectionID uuid.UUID) (*model.SectionModel, error) {
	var section model.SectionModel
	if err := ctrl.DB.
		Where("section_uuid = ? AND section_deleted = false", sectionID).
		First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Section not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Database error")
	}
	return &section, nil
}

func (ctrl *SectionController) ensureOwnsForm(c *fiber.Ctx, formID uuid.UUID) error {
	raw, _ := c.Locals("user_id").(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var form formModel.FormModel
	if err := ctrl.DB.
		Where("form_uuid = ? AND form_user_id = ? AND form_deleted = false", formID, userID).
		First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Form not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Database error")
	}
	return nil
}
