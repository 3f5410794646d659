package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"formku_backend/internals/features/ai/controller"
	"formku_backend/internals/features/ai/service"
	"formku_backend/internals/middlewares"
)

// AIOwnerRoutes: generate form via AI, hanya pemilik, dengan rate limit ketat
// (panggilan LLM mahal). Base group sudah memakai AuthMiddleware.
func AIOwnerRoutes(owner fiber.Router, db *gorm.DB, ai *service.Client) {
	ctrl := controller.NewGenerateController(db, ai)

	owner.Post("/generate", middlewares.GenerateRateLimiter(), ctrl.GenerateForm)
}
