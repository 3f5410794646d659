package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"formku_backend/internals/features/forms/forms/controller"
)

// 🛡️ Route form milik owner (sudah lewat AuthMiddleware di group /api/o)
func FormOwnerRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFormController(db)

	forms := api.Group("/forms")
	forms.Get("/", ctrl.GetMyForms)         // 📄 Semua form milik user (auto-create kalau kosong)
	forms.Post("/", ctrl.CreateForm)        // ➕ Tambah form
	forms.Get("/:id", ctrl.GetFormByID)     // 🔍 Detail form
	forms.Put("/:id", ctrl.UpdateForm)      // ✏️ Ubah form
	forms.Delete("/:id", ctrl.DeleteForm)   // ❌ Soft delete
}
