package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"formku_backend/internals/features/forms/answers/dto"
	"formku_backend/internals/features/forms/answers/service"
	helper "formku_backend/internals/helpers"
)

var validate = validator.New()

type AnswerController struct {
	Service *service.AnswerService
}

func NewAnswerController(svc *service.AnswerService) *AnswerController {
	return &AnswerController{Service: svc}
}

// ➕ POST /api/answer
// Endpoint publik responden, bentuk kawat lama: {data:[{AnswerSectionUUID}]}
// saat sukses, {error} saat gagal.
func (ctrl *AnswerController) CreateAnswer(c *fiber.Ctx) error {
	var req dto.CreateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.WireError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.WireError(c, fiber.StatusBadRequest, "Field wajib belum lengkap")
	}

	row, err := ctrl.Service.SaveAnswer(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFormNotFound):
			return helper.WireError(c, fiber.StatusNotFound, "Form tidak ditemukan")
		case errors.Is(err, service.ErrSectionNotFound):
			return helper.WireError(c, fiber.StatusNotFound, "Pertanyaan tidak ditemukan")
		default:
			log.Printf("[ERROR] gagal simpan jawaban (form=%s section=%s): %v", req.FormID, req.SectionID, err)
			return helper.WireError(c, fiber.StatusInternalServerError, "Gagal menyimpan jawaban")
		}
	}

	return helper.WireData(c, []dto.CreatedAnswerRow{
		{AnswerSectionUUID: row.AnswerSectionUUID},
	})
}
