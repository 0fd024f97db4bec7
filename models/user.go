package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"size:150;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"size:255"`
	IsBanned  bool      `json:"is_banned" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// SetPassword stores a bcrypt hash of the plaintext.
func (u *User) SetPassword(plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword reports whether plaintext matches the stored hash.
// An empty stored hash always fails instead of erroring.
func (u *User) CheckPassword(plaintext string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext)) == nil
}

func (u *User) PrincipalID() uint { return u.ID }

func (u *User) PrincipalUsername() string { return u.Username }

func (u *User) IsManager() bool { return false }
