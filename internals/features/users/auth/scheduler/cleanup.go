package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"formku_backend/internals/features/users/auth/model"
)

// StartRefreshTokenCleanupScheduler membersihkan refresh token kadaluarsa
// secara berkala. Interval bisa dioverride lewat env (jam), default 24 jam.
func StartRefreshTokenCleanupScheduler(db *gorm.DB) {
	go func() {
		intervalHours := 24
		if val := os.Getenv("TOKEN_CLEANUP_INTERVAL_HOURS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalHours = parsed
			}
		}

		for {
			log.Println("[CLEANUP] Menjalankan pembersihan refresh_tokens...")

			result := db.
				Where("expires_at < ?", time.Now()).
				Delete(&model.RefreshTokenModel{})
			if result.Error != nil {
				log.Printf("[CLEANUP ERROR] Gagal hapus token kadaluarsa: %v", result.Error)
			} else if result.RowsAffected > 0 {
				log.Printf("[CLEANUP] %d refresh token kadaluarsa dihapus", result.RowsAffected)
			} else {
				log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
			}

			time.Sleep(time.Duration(intervalHours) * time.Hour)
		}
	}()
}
