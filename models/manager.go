package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Manager struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"size:150;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"size:255"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Manager) TableName() string {
	return "managers"
}

func (m *Manager) SetPassword(plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	m.Password = string(hashed)
	return nil
}

func (m *Manager) CheckPassword(plaintext string) bool {
	if m.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(plaintext)) == nil
}

func (m *Manager) PrincipalID() uint { return m.ID }

func (m *Manager) PrincipalUsername() string { return m.Username }

func (m *Manager) IsManager() bool { return true }
