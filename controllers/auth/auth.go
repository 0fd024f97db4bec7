package auth

import (
	"time"

	"gorm.io/gorm"
)

// AuthController serves login, registration and logout for both principal
// stores. The DB handle is injected at construction; there is no package
// global.
type AuthController struct {
	DB         *gorm.DB
	SessionTTL time.Duration
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:         db,
		SessionTTL: 24 * time.Hour,
	}
}
