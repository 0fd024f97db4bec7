package models

import "time"

// RevokedSession blacklists a session token jti when Redis is not configured.
type RevokedSession struct {
	ID        string    `json:"id" gorm:"primaryKey;size:96"`
	RevokedAt time.Time `json:"revoked_at"`
}

func (RevokedSession) TableName() string {
	return "revoked_sessions"
}
