package utils

import (
	"net/http/httptest"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "rahasia-test")
	defer os.Unsetenv("JWT_SECRET")

	token, jti, err := IssueSessionToken(42, "user", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a non-empty jti")
	}

	id, gotJTI, err := ValidateSessionToken(nil, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
	if gotJTI != jti {
		t.Fatalf("jti mismatch: %q != %q", gotJTI, jti)
	}
}

func TestValidateSessionToken_RejectsExpired(t *testing.T) {
	os.Setenv("JWT_SECRET", "rahasia-test")
	defer os.Unsetenv("JWT_SECRET")

	token, _, err := IssueSessionToken(42, "user", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, _, err := ValidateSessionToken(nil, token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestValidateSessionToken_RejectsWrongSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "rahasia-test")
	token, _, err := IssueSessionToken(42, "user", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	os.Setenv("JWT_SECRET", "rahasia-lain")
	defer os.Unsetenv("JWT_SECRET")

	if _, _, err := ValidateSessionToken(nil, token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestValidateSessionToken_RejectsRevokedJTI(t *testing.T) {
	os.Setenv("JWT_SECRET", "rahasia-test")
	defer os.Unsetenv("JWT_SECRET")

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()
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

	token, jti, err := IssueSessionToken(42, "user", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// The jti is present in the revoked_sessions fallback table.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `revoked_sessions`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "revoked_at"}).AddRow(jti, time.Now()))

	if _, _, err := ValidateSessionToken(db, token); err == nil {
		t.Fatal("expected error for a revoked session token")
	}
}

func TestSessionTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.local/profile", nil)
	if _, ok := SessionTokenFromRequest(r); ok {
		t.Fatal("expected no token on a bare request")
	}

	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, ok := SessionTokenFromRequest(r)
	if !ok || token != "abc.def.ghi" {
		t.Fatalf("bearer token = %q ok=%v", token, ok)
	}
}

func TestSessionCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "token-isi", time.Hour)

	r := httptest.NewRequest("GET", "http://example.local/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	token, ok := SessionTokenFromRequest(r)
	if !ok || token != "token-isi" {
		t.Fatalf("cookie token = %q ok=%v", token, ok)
	}

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec)
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge != -1 {
		t.Fatal("expected an expiring session cookie")
	}
}
