package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "formku_backend/internals/features/users/auth/model"
	userModel "formku_backend/internals/features/users/user/model"
)

// =============================
// Users
// =============================

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, id uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, hashed string) error {
	return db.Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Update("user_password", hashed).Error
}

func EmailTaken(db *gorm.DB, email string) (bool, error) {
	var count int64
	if err := db.Model(&userModel.UserModel{}).
		Where("user_email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// =============================
// Refresh tokens (selalu hash, tidak pernah plaintext)
// =============================

func CreateRefreshToken(db *gorm.DB, token *authModel.RefreshTokenModel) error {
	return db.Create(token).Error
}

func RefreshTokenExists(db *gorm.DB, hash string) (bool, error) {
	var count int64
	if err := db.Model(&authModel.RefreshTokenModel{}).
		Where("token = ? AND expires_at > ?", hash, time.Now()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func DeleteRefreshTokenByHash(db *gorm.DB, hash string) error {
	return db.Where("token = ?", hash).Delete(&authModel.RefreshTokenModel{}).Error
}

func DeleteRefreshTokensByUser(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("user_id = ?", userID).Delete(&authModel.RefreshTokenModel{}).Error
}
