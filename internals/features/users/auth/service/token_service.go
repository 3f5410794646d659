package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"formku_backend/internals/configs"
	authModel "formku_backend/internals/features/users/auth/model"
	authRepo "formku_backend/internals/features/users/auth/repository"
	helper "formku_backend/internals/helpers"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

func getJWTSecret() (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}
	return configs.JWTSecret, nil
}

func getRefreshSecret() (string, error) {
	if configs.JWTRefreshSecret == "" {
		return "", errors.New("JWT_REFRESH_SECRET belum diset")
	}
	return configs.JWTRefreshSecret, nil
}

// computeRefreshHash: HMAC-SHA256 token dengan secret — yang disimpan di DB
// selalu hash, bocor tabel ≠ bocor token.
func computeRefreshHash(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

func issueAccessToken(userID uuid.UUID, userName string, now time.Time) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"name": userName,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func issueRefreshToken(db *gorm.DB, c *fiber.Ctx, userID uuid.UUID, now time.Time) (string, error) {
	secret, err := getRefreshSecret()
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTL).Unix(),
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	if err := authRepo.CreateRefreshToken(db, &authModel.RefreshTokenModel{
		UserID:    userID,
		Token:     computeRefreshHash(refresh, secret),
		ExpiresAt: now.Add(refreshTTL),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}); err != nil {
		return "", err
	}
	return refresh, nil
}

func setRefreshCookie(c *fiber.Ctx, refresh string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		Expires:  now.Add(refreshTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
	})
}

// ========================== REFRESH TOKEN ==========================
// POST /api/auth/refresh-token — rotasi: token lama dihapus, pasangan baru
// diterbitkan.
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("metode tanda tangan tidak dikenal")
		}
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// hash-nya harus masih terdaftar (belum dirotasi / di-logout)
	hash := computeRefreshHash(refreshCookie, refreshSecret)
	exists, err := authRepo.RefreshTokenExists(db, hash)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !exists {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak dikenal")
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}

	// ROTATE: hapus yang lama dulu
	if err := authRepo.DeleteRefreshTokenByHash(db, hash); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal rotasi token")
	}

	now := time.Now().UTC()
	access, err := issueAccessToken(user.UserID, user.UserName, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal buat access baru")
	}
	refresh, err := issueRefreshToken(db, c, user.UserID, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal buat refresh baru")
	}
	setRefreshCookie(c, refresh, now)

	return helper.JsonOK(c, "Token diperbarui", fiber.Map{
		"access_token": access,
	})
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
