package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"formku_backend/internals/features/respondents/controller"
	"formku_backend/internals/features/respondents/service"
)

// RespondentPublicRoutes: sesi pengisian & guard single-response (tanpa
// login), base group /api.
func RespondentPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewRespondentController(
		service.NewSessionService(service.NewGormGuardStore(db)),
	)

	api.Post("/session", ctrl.BeginSession)
	api.Get("/fingerprint", ctrl.CheckFingerprint)
}
