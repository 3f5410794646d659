package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"formku_backend/internals/features/respondents/service"
	helper "formku_backend/internals/helpers"
)

type RespondentController struct {
	Session *service.SessionService
}

func NewRespondentController(session *service.SessionService) *RespondentController {
	return &RespondentController{Session: session}
}

// 🔑 POST /api/session
// Terbitkan identitas satu attempt pengisian; klien membawanya sebagai
// answer_id di setiap tulisan jawaban.
func (ctrl *RespondentController) BeginSession(c *fiber.Ctx) error {
	return helper.WireData(c, fiber.Map{
		"answer_id": service.BeginSession(),
	})
}

// 🔍 GET /api/fingerprint?form_id=&fingerprint=
// Bentuk kawat lama: {result:true} = perangkat ini sudah mengisi dan harus
// diblokir. Parameter rusak diperlakukan fail-open, sama seperti galat lookup.
func (ctrl *RespondentController) CheckFingerprint(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Query("form_id"))
	if err != nil {
		return helper.WireResult(c, false)
	}
	fingerprint, err := uuid.Parse(c.Query("fingerprint"))
	if err != nil {
		return helper.WireResult(c, false)
	}

	return helper.WireResult(c, ctrl.Session.CheckSingleResponseGuard(formID, fingerprint))
}
