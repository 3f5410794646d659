package controller

import (
	"bufio"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	answerModel "formku_backend/internals/features/forms/answers/model"
	formModel "formku_backend/internals/features/forms/forms/model"
	sectionModel "formku_backend/internals/features/forms/sections/model"
	"formku_backend/internals/features/statistics/live"
	"formku_backend/internals/features/statistics/service"
	helper "formku_backend/internals/helpers"
)

type StatisticsController struct {
	DB  *gorm.DB
	Hub *live.Hub
}

func NewStatisticsController(db *gorm.DB, hub *live.Hub) *StatisticsController {
	return &StatisticsController{DB: db, Hub: hub}
}

const keepAliveInterval = 25 * time.Second

// 📊 GET /api/statistics/:form_id
// Snapshot penuh: selalu dibangun ulang dari baris answers, tidak ada cache.
func (ctrl *StatisticsController) GetSnapshot(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("form_id"))
	if err != nil {
		return helper.WireError(c, fiber.StatusBadRequest, "form_id tidak valid")
	}

	var form formModel.FormModel
	if err := ctrl.DB.
		Where("form_uuid = ? AND form_deleted = FALSE", formID).
		First(&form).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.WireError(c, fiber.StatusNotFound, "Form tidak ditemukan")
		}
		log.Printf("[ERROR] gagal ambil form %s: %v", formID, err)
		return helper.WireError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}

	snapshot, err := ctrl.buildSnapshot(formID)
	if err != nil {
		log.Printf("[ERROR] gagal bangun snapshot %s: %v", formID, err)
		return helper.WireError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}

	return helper.WireData(c, snapshot)
}

// 📡 GET /api/statistics/:form_id/sse
// Stream live: kirim {type:connected} dulu, lalu teruskan setiap
// statistics_update dari hub. Koneksi hidup sampai klien menutupnya.
func (ctrl *StatisticsController) StreamStatistics(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("form_id"))
	if err != nil {
		return helper.WireError(c, fiber.StatusBadRequest, "form_id tidak valid")
	}

	var count int64
	if err := ctrl.DB.Model(&formModel.FormModel{}).
		Where("form_uuid = ? AND form_deleted = FALSE", formID).
		Count(&count).Error; err != nil || count == 0 {
		return helper.WireError(c, fiber.StatusNotFound, "Form tidak ditemukan")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	hub := ctrl.Hub
	key := formID.String()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		events, unsubscribe := hub.Subscribe(key)
		defer unsubscribe()

		if err := writeEvent(w, live.Event{Type: live.EventConnected}); err != nil {
			return
		}

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return // hub ditutup (shutdown)
				}
				if err := writeEvent(w, event); err != nil {
					return // klien sudah pergi
				}
			case <-ticker.C:
				// komentar SSE: menjaga koneksi idle tetap hidup lewat proxy
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

func writeEvent(w *bufio.Writer, event live.Event) error {
	payload, err := sonic.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := w.WriteString("data: "); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	if _, err := w.WriteString("\n\n"); err != nil {
		return err
	}
	return w.Flush()
}

// buildSnapshot menarik section + seluruh baris answers form lalu menghitung
// dari nol lewat service. Section terhapus tetap diambil — filternya di
// service, bukan di query, supaya dedup bisa membuang jawaban yatim.
func (ctrl *StatisticsController) buildSnapshot(formID uuid.UUID) (interface{}, error) {
	var sections []sectionModel.SectionModel
	if err := ctrl.DB.
		Where("section_form_id = ?", formID).
		Order("section_order ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}

	var records []answerModel.AnswerModel
	if err := ctrl.DB.
		Where("answer_form_id = ?", formID).
		Order("answer_created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return service.BuildSnapshot(formID, sections, records), nil
}
