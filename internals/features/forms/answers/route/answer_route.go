package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"formku_backend/internals/features/forms/answers/controller"
	"formku_backend/internals/features/forms/answers/service"
	"formku_backend/internals/features/statistics/live"
)

// AnswerPublicRoutes: jalur tulis responden (tanpa login), base group /api.
func AnswerPublicRoutes(api fiber.Router, db *gorm.DB, hub *live.Hub, ai service.EmotionPredictor) {
	ctrl := controller.NewAnswerController(service.NewAnswerService(db, hub, ai))

	api.Post("/answer", ctrl.CreateAnswer)
}
