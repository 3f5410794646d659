package model

import (
	"time"

	"github.com/google/uuid"
)

type FormModel struct {
	FormUUID           uuid.UUID `gorm:"column:form_uuid;primaryKey;type:uuid;default:gen_random_uuid()" json:"form_uuid"`
	FormUserID         uuid.UUID `gorm:"column:form_user_id;type:uuid;not null;index" json:"form_user_id"`
	FormName           string    `gorm:"column:form_name;type:text;not null" json:"form_name"`
	FormMessage        string    `gorm:"column:form_message;type:text" json:"form_message"` // pesan penutup setelah submit
	FormSingleResponse bool      `gorm:"column:form_single_response;not null;default:false" json:"form_single_response"`
	FormDeleted        bool      `gorm:"column:form_deleted;not null;default:false" json:"form_deleted"` // soft delete, histori jawaban tetap
	FormCreatedAt      time.Time `gorm:"column:form_created_at;autoCreateTime" json:"form_created_at"`
	FormUpdatedAt      time.Time `gorm:"column:form_updated_at;autoUpdateTime" json:"form_updated_at"`
}

func (FormModel) TableName() string {
	return "forms"
}
