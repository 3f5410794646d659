package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	aiService "formku_backend/internals/features/ai/service"
	answerRoute "formku_backend/internals/features/forms/answers/route"
	answerService "formku_backend/internals/features/forms/answers/service"
	sectionRoute "formku_backend/internals/features/forms/sections/route"
	respondentRoute "formku_backend/internals/features/respondents/route"
	"formku_backend/internals/features/statistics/live"
	statisticsRoute "formku_backend/internals/features/statistics/route"
)

// PublicRoutes: seluruh permukaan responden + dashboard hasil, kontrak kawat
// lama ({data}/{error}/{result}), tanpa login.
func PublicRoutes(api fiber.Router, db *gorm.DB, hub *live.Hub, ai *aiService.Client) {
	sectionRoute.SectionPublicRoutes(api, db)

	var predictor answerService.EmotionPredictor
	if ai != nil {
		predictor = ai
	}
	answerRoute.AnswerPublicRoutes(api, db, hub, predictor)

	respondentRoute.RespondentPublicRoutes(api, db)
	statisticsRoute.StatisticsPublicRoutes(api, db, hub)
}
