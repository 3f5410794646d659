package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"formku_backend/internals/features/statistics/controller"
	"formku_backend/internals/features/statistics/live"
)

// StatisticsPublicRoutes: dashboard statistik dibaca tanpa login (dipakai
// tampilan hasil yang bisa dibagikan), base group /api.
func StatisticsPublicRoutes(api fiber.Router, db *gorm.DB, hub *live.Hub) {
	ctrl := controller.NewStatisticsController(db, hub)

	stats := api.Group("/statistics")
	stats.Get("/:form_id", ctrl.GetSnapshot)
	stats.Get("/:form_id/sse", ctrl.StreamStatistics)
}
