package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"formku_backend/internals/features/forms/forms/dto"
	"formku_backend/internals/features/forms/forms/model"
	helper "formku_backend/internals/helpers"
)

type FormController struct {
	DB *gorm.DB
}

func NewFormController(db *gorm.DB) *FormController {
	return &FormController{DB: db}
}

var validate = validator.New()

// =============================
// 📄 Get My Forms (auto-create kalau user baru belum punya)
// =============================
func (ctrl *FormController) GetMyForms(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var forms []model.FormModel
	if err := ctrl.DB.
		Where("form_user_id = ? AND form_deleted = false", userID).
		Order("form_created_at ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&forms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve forms")
	}

	// ✅ User baru: buatkan satu form default supaya dashboard tidak kosong
	if len(forms) == 0 && paging.Page == 1 {
		first := model.FormModel{
			FormUserID:  userID,
			FormName:    "Untitled form",
			FormMessage: "Terima kasih sudah mengisi!",
		}
		if err := ctrl.DB.Create(&first).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create initial form")
		}
		log.Printf("[INFO] auto-created first form %s for user %s", first.FormUUID, userID)
		forms = append(forms, first)
	}

	response := make([]dto.FormDTO, 0, len(forms))
	for _, f := range forms {
		response = append(response, dto.ToFormDTO(f))
	}
	return helper.JsonOK(c, "ok", response)
}

// =============================
// ➕ Create Form
// =============================
func (ctrl *FormController) CreateForm(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	form := dto.ToFormModel(req, userID)
	if err := ctrl.DB.Create(&form).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create form")
	}

	return helper.JsonCreated(c, "Form berhasil dibuat", dto.ToFormDTO(form))
}

// =============================
// 🔍 Get Form by ID
// =============================
func (ctrl *FormController) GetFormByID(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form id")
	}

	form, err := ctrl.findOwnedForm(c, formID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToFormDTO(*form))
}

// =============================
// ✏️ Update Form
// =============================
func (ctrl *FormController) UpdateForm(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form id")
	}

	var req dto.UpdateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	form, err := ctrl.findOwnedForm(c, formID)
	if err != nil {
		return err
	}

	updates := map[string]any{}
	if req.FormName != nil {
		updates["form_name"] = *req.FormName
	}
	if req.FormMessage != nil {
		updates["form_message"] = *req.FormMessage
	}
	if req.FormSingleResponse != nil {
		updates["form_single_response"] = *req.FormSingleResponse
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "nothing to update", dto.ToFormDTO(*form))
	}

	if err := ctrl.DB.Model(form).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update form")
	}
	return helper.JsonUpdated(c, "Form berhasil diupdate", dto.ToFormDTO(*form))
}

// =============================
// ❌ Soft Delete Form (flag saja, histori jawaban dipertahankan)
// =============================
func (ctrl *FormController) DeleteForm(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form id")
	}

	form, err := ctrl.findOwnedForm(c, formID)
	if err != nil {
		return err
	}

	if err := ctrl.DB.Model(form).Update("form_deleted", true).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete form")
	}
	return helper.JsonDeleted(c, "Form berhasil dihapus", fiber.Map{"form_uuid": form.FormUUID})
}

// --- helper privat ---

func ownerID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	return uuid.Parse(raw)
}

// findOwnedForm mengambil form hidup milik user yang sedang login.
// Mengembalikan error Fiber yang sudah berupa response JSON.
func (ctrl *FormController) findOwnedForm(c *fiber.Ctx, formID uuid.UUID) (*model.FormModel, error) {
	userID, err := ownerID(c)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var form model.FormModel
	if err := ctrl.DB.
		Where("form_uuid = ? AND form_user_id = ? AND form_deleted = false", formID, userID).
		First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Form not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Database error")
	}
	return &form, nil
}
