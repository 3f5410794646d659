package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"formku_backend/internals/features/forms/sections/controller"
)

// 🛡️ Route section milik owner (group /api/o, sudah ber-JWT)
func SectionOwnerRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSectionController(db)

	sections := api.Group("/sections")
	sections.Post("/", ctrl.CreateSection)          // ➕ Tambah section (order otomatis)
	sections.Put("/reorder", ctrl.ReorderSections)  // 🔀 Tulis ulang urutan 1..N
	sections.Put("/:id", ctrl.UpdateSection)        // ✏️ Ubah section
	sections.Delete("/:id", ctrl.DeleteSection)     // ❌ Soft delete + compact
}

// 🌐 Route publik untuk responden
func SectionPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPublicSectionController(db)
	api.Get("/sections", ctrl.ListSections) // 📄 kontrak lama: {data: Section[]}
}
