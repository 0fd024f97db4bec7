package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

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

func userRows(id uint, username string, banned bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password", "is_banned", "created_at", "updated_at"}).
		AddRow(id, username, username+"@example.com", "$2a$10$abcdefghijklmnopqrstuv", banned, time.Now(), time.Now())
}

func managerRows(id uint, username string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password", "created_at", "updated_at"}).
		AddRow(id, username, username+"@example.com", "$2a$10$abcdefghijklmnopqrstuv", time.Now(), time.Now())
}

func sessionRequest(t *testing.T, target string, id uint, role string) *http.Request {
	t.Helper()
	token, _, err := utils.IssueSessionToken(id, role, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	r := httptest.NewRequest("GET", target, nil)
	r.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
	return r
}

func TestRequireCustomer_NoSessionRedirectsToLogin(t *testing.T) {
	db, _ := newAuthTestDB(t)
	a := NewSessionAuth(db)

	handler := a.RequireCustomer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "http://example.local/profile", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireCustomer_AdmitsCustomer(t *testing.T) {
	os.Setenv("JWT_SECRET", "rahasia-test")
	defer os.Unsetenv("JWT_SECRET")

	db, mock := newAuthTestDB(t)
	a := NewSessionAuth(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `revoked_sessions`")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).
		WillReturnRows(userRows(7, "budi", false))

	called := false
	handler := a.RequireCustomer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		principal, ok := utils.GetPrincipal(r)
		if !ok {
			t.Fatal("principal missing from context")
		}
		if principal.PrincipalUsername() != "budi" {
			t.Fatalf("unexpected principal %q", principal.PrincipalUsername())
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, sessionRequest(t, "http://example.local/profile", 7, "user"))
	if !called {
		t.Fatalf("handler not reached, status %d", rec.Code)
	}
}

func TestRequireCustomer_RejectsManager(t *testing.T) {
	os.Setenv("JWT_SECRET", "rahasia-test")
	defer os.Unsetenv("JWT_SECRET")

	db, mock := newAuthTestDB(t)
	a := NewSessionAuth(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `revoked_sessions`")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	// No row in users, so resolution falls through to managers.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `managers`")).
		WillReturnRows(managerRows(7, "admin"))

	handler := a.RequireCustomer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("manager must not reach a customer page")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, sessionRequest(t, "http://example.local/profile", 7, "manager"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/manager/dashboard?notice=") {
		t.Fatalf("expected redirect to the manager surface, got %q", loc)
	}
}

func TestRequireManager_RejectsCustomer(t *testing.T) {
	os.Setenv("JWT_SECRET", "rahasia-test")
	defer os.Unsetenv("JWT_SECRET")

	db, mock := newAuthTestDB(t)
	a := NewSessionAuth(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `revoked_sessions`")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).
		WillReturnRows(userRows(7, "budi", false))

	handler := a.RequireManager(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("customer must not reach the back office")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, sessionRequest(t, "http://example.local/manager/dashboard", 7, "user"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/?notice=") {
		t.Fatalf("expected redirect to the storefront, got %q", loc)
	}
}
