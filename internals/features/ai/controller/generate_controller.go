package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"formku_backend/internals/features/ai/service"
	formModel "formku_backend/internals/features/forms/forms/model"
	helper "formku_backend/internals/helpers"
)

var validate = validator.New()

type GenerateController struct {
	DB *gorm.DB
	AI *service.Client
}

func NewGenerateController(db *gorm.DB, ai *service.Client) *GenerateController {
	return &GenerateController{DB: db, AI: ai}
}

type GenerateFormRequest struct {
	Prompt string    `json:"prompt" validate:"required,min=3,max=2000"`
	FormID uuid.UUID `json:"form_id" validate:"required"`
}

// ✨ POST /api/o/generate
// Minta layanan AI mengisi form dari prompt. Menunggu sampai selesai (plafon
// 60 detik) karena klien butuh tahu kapan form siap di-reload.
func (ctrl *GenerateController) GenerateForm(c *fiber.Ctx) error {
	var req GenerateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Tidak terautentikasi")
	}

	// hanya pemilik form yang boleh menyuruh AI menulisinya
	var form formModel.FormModel
	if err := ctrl.DB.
		Where("form_uuid = ? AND form_user_id = ? AND form_deleted = FALSE", req.FormID, userID).
		First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Form tidak ditemukan")
		}
		log.Printf("[ERROR] gagal ambil form %s: %v", req.FormID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses permintaan")
	}

	if err := ctrl.AI.GenerateForm(c.Context(), req.Prompt, req.FormID); err != nil {
		switch {
		case errors.Is(err, service.ErrTimeout):
			return helper.JsonError(c, fiber.StatusGatewayTimeout, "Layanan AI tidak merespons, coba lagi")
		case errors.Is(err, service.ErrUnreachable):
			return helper.JsonError(c, fiber.StatusBadGateway, "Layanan AI sedang tidak tersedia")
		default:
			log.Printf("[ERROR] generate form %s gagal: %v", req.FormID, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat form")
		}
	}

	return helper.JsonOK(c, "Form berhasil dibuat oleh AI", fiber.Map{
		"form_id": req.FormID,
	})
}
