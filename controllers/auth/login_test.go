package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Gamescriptsy/Gradegame/models"
	"github.com/Gamescriptsy/Gradegame/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db, mock
}

func hashedPassword(t *testing.T, plaintext string) string {
	t.Helper()
	var u models.User
	if err := u.SetPassword(plaintext); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return u.Password
}

func loginRequest(form url.Values) *http.Request {
	r := httptest.NewRequest("POST", "http://example.local/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestLogin_CustomerSuccess(t *testing.T) {
	os.Setenv("JWT_SECRET", "rahasia-test")
	defer os.Unsetenv("JWT_SECRET")

	db, mock := newAuthTestDB(t)
	c := NewAuthController(db)

	hash := hashedPassword(t, "rahasia1")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE username = ?")).
		WithArgs("budi", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password", "is_banned", "created_at", "updated_at"}).
			AddRow(7, "budi", "budi@example.com", hash, false, time.Now(), time.Now()))

	rec := httptest.NewRecorder()
	c.Login(rec, loginRequest(url.Values{"username": {"budi"}, "password": {"rahasia1"}, "role": {"user"}}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/?notice=") {
		t.Fatalf("expected redirect home with notice, got %q", loc)
	}

	var sessionCookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == utils.SessionCookieName {
			sessionCookie = ck
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatal("expected a session cookie on successful login")
	}
	id, _, err := utils.ValidateSessionToken(nil, sessionCookie.Value)
	if err != nil {
		t.Fatalf("session token invalid: %v", err)
	}
	if id != 7 {
		t.Fatalf("session principal id = %d, want 7", id)
	}
}

func TestLogin_WrongPasswordRedirectsWithNotice(t *testing.T) {
	os.Setenv("JWT_SECRET", "rahasia-test")
	defer os.Unsetenv("JWT_SECRET")

	db, mock := newAuthTestDB(t)
	c := NewAuthController(db)

	hash := hashedPassword(t, "rahasia1")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE username = ?")).
		WithArgs("budi", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password", "is_banned", "created_at", "updated_at"}).
			AddRow(7, "budi", "budi@example.com", hash, false, time.Now(), time.Now()))

	rec := httptest.NewRecorder()
	c.Login(rec, loginRequest(url.Values{"username": {"budi"}, "password": {"salah"}, "role": {"user"}}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?notice=") {
		t.Fatalf("expected redirect back to login with notice, got %q", loc)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no cookie may be set on a failed login")
	}
}

func TestLogin_UnknownUserLooksLikeBadCredential(t *testing.T) {
	db, mock := newAuthTestDB(t)
	c := NewAuthController(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE username = ?")).
		WithArgs("nobody", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := httptest.NewRecorder()
	c.Login(rec, loginRequest(url.Values{"username": {"nobody"}, "password": {"apapun"}}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?notice=") {
		t.Fatalf("expected redirect back to login, got %q", loc)
	}
}

func TestLogin_ManagerRoleOnlyConsultsManagerStore(t *testing.T) {
	db, mock := newAuthTestDB(t)
	c := NewAuthController(db)

	// Only the managers table is queried for role=manager, even when the
	// same username exists as a customer.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `managers` WHERE username = ?")).
		WithArgs("budi", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := httptest.NewRecorder()
	c.Login(rec, loginRequest(url.Values{"username": {"budi"}, "password": {"rahasia1"}, "role": {"manager"}}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected store consulted: %v", err)
	}
}
