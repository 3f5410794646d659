package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	aiRoute "formku_backend/internals/features/ai/route"
	aiService "formku_backend/internals/features/ai/service"
	formRoute "formku_backend/internals/features/forms/forms/route"
	sectionRoute "formku_backend/internals/features/forms/sections/route"
	authRoute "formku_backend/internals/features/users/auth/route"
)

// OwnerRoutes: permukaan pembuat form (group sudah ber-AuthMiddleware).
func OwnerRoutes(owner fiber.Router, db *gorm.DB, ai *aiService.Client) {
	formRoute.FormOwnerRoutes(owner, db)
	sectionRoute.SectionOwnerRoutes(owner, db)
	authRoute.AuthProtectedRoutes(owner, db)

	if ai != nil {
		aiRoute.AIOwnerRoutes(owner, db, ai)
	}
}
