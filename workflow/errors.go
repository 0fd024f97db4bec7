package workflow

import "errors"

var (
	// ErrAccountBanned rejects top-ups from banned customers.
	ErrAccountBanned = errors.New("akun diblokir")
	// ErrUnknownGame rejects game names outside the fixed catalog.
	ErrUnknownGame = errors.New("game tidak dikenal")
	// ErrNotFound means the referenced transaction, game or user row is absent.
	ErrNotFound = errors.New("data tidak ditemukan")
	// ErrDuplicateCredential means the username or email is already registered.
	ErrDuplicateCredential = errors.New("username atau email sudah terdaftar")
	// ErrInvalidCredential means login failed against the selected store.
	ErrInvalidCredential = errors.New("username atau password salah")
	// ErrPersistence wraps a failed write after rollback.
	ErrPersistence = errors.New("kesalahan penyimpanan")
	// ErrInvalidTransition is only returned in strict-transition mode.
	ErrInvalidTransition = errors.New("transisi status tidak diizinkan")
)
