package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "formku_backend/internals/features/users/auth/service"
	"formku_backend/internals/middlewares"
)

// 🌐 AuthRoutes: register/login/refresh/logout (tanpa JWT)
func AuthRoutes(app fiber.Router, db *gorm.DB) {
	auth := app.Group("/api/auth")

	auth.Post("/register", middlewares.LoginRateLimiter(), func(c *fiber.Ctx) error {
		return authService.Register(db, c)
	})
	auth.Post("/login", middlewares.LoginRateLimiter(), func(c *fiber.Ctx) error {
		return authService.Login(db, c)
	})
	auth.Post("/refresh-token", func(c *fiber.Ctx) error {
		return authService.RefreshToken(db, c)
	})
	auth.Post("/logout", func(c *fiber.Ctx) error {
		return authService.Logout(db, c)
	})
}

// 🛡️ AuthProtectedRoutes: butuh JWT (dipasang di group /api/o)
func AuthProtectedRoutes(owner fiber.Router, db *gorm.DB) {
	owner.Post("/auth/change-password", func(c *fiber.Ctx) error {
		return authService.ChangePassword(db, c)
	})
}
