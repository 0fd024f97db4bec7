package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNoPrincipal is returned when a session id matches neither store.
var ErrNoPrincipal = errors.New("no principal for session id")

// Principal is an authenticated actor, either a customer (User) or a Manager.
type Principal interface {
	PrincipalID() uint
	PrincipalUsername() string
	IsManager() bool
	CheckPassword(plaintext string) bool
}

// ResolvePrincipal resolves a session-carried id to a principal. The user
// store is checked first, then the manager store; the first match wins.
func ResolvePrincipal(db *gorm.DB, id uint) (Principal, error) {
	var user User
	err := db.First(&user, id).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var manager Manager
	err = db.First(&manager, id).Error
	if err == nil {
		return &manager, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return nil, ErrNoPrincipal
}
