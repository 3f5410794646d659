// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"formku_backend/internals/configs"
	aiService "formku_backend/internals/features/ai/service"
	"formku_backend/internals/features/statistics/live"
	authRoute "formku_backend/internals/features/users/auth/route"
	authMiddleware "formku_backend/internals/middlewares/auth"
	routeDetails "formku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, hub *live.Hub) {
	// ===================== AUTH BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// klien AI hanya dirangkai kalau URL-nya diset
	var ai *aiService.Client
	if configs.AIServiceURL != "" {
		ai = aiService.NewClient(configs.AIServiceURL)
	} else {
		log.Println("[WARN] AI_API_URL kosong — /api/o/generate & prediksi emosi nonaktif")
	}

	// ===================== PUBLIC =====================
	// Responden & dashboard hasil: tanpa JWT
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")
	routeDetails.PublicRoutes(public, db, hub, ai)

	// ===================== OWNER =====================
	// Pembuat form: JWT wajib
	log.Println("[INFO] Setting up OWNER group (Auth)...")
	owner := app.Group("/api/o", authMiddleware.AuthMiddleware())
	routeDetails.OwnerRoutes(owner, db, ai)
}
