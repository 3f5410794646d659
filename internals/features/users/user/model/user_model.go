package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel: pemilik form (pembuat survei). Responden TIDAK punya akun —
// identitas mereka hanya answer_uuid per attempt.
type UserModel struct {
	UserID       uuid.UUID `gorm:"column:user_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"user_id"`
	UserName     string    `gorm:"column:user_name;type:varchar(100);not null" json:"user_name"`
	UserEmail    string    `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex" json:"user_email"`
	UserPassword string    `gorm:"column:user_password;type:text;not null" json:"-"` // hash bcrypt
	UserIsActive bool      `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`
	CreatedAt    time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UpdatedAt    time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
