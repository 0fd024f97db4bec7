package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/Gamescriptsy/Gradegame/models"
	"github.com/Gamescriptsy/Gradegame/utils"
	"github.com/Gamescriptsy/Gradegame/workflow"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newStoreTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

func topUpRequest(t *testing.T, gameName string, principal models.Principal, form url.Values) *http.Request {
	t.Helper()
	r := httptest.NewRequest("POST", "http://example.local/topup/"+gameName, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r = mux.SetURLVars(r, map[string]string{"gameName": gameName})
	if principal != nil {
		r = r.WithContext(context.WithValue(r.Context(), utils.PrincipalKey, principal))
	}
	return r
}

func TestTopUpSubmit_CreatesPendingAndRedirects(t *testing.T) {
	db, mock := newStoreTestDB(t)
	c := NewStoreController(db, workflow.NewEngine(db))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `transactions`")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	form := url.Values{
		"user_id":        {"12345"},
		"nominal":        {"100 Diamonds|15000"},
		"payment_method": {"dana"},
	}
	rec := httptest.NewRecorder()
	c.TopUpSubmit(rec, topUpRequest(t, "freefire", &models.User{ID: 7}, form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/transaksi-berhasil?") {
		t.Fatalf("expected confirmation redirect, got %q", loc)
	}
	u, err := url.Parse(loc)
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	q := u.Query()
	if q.Get("game_name") != "freefire" || q.Get("nominal") != "100 Diamonds" || q.Get("user_game_id") != "12345" {
		t.Fatalf("confirmation params incomplete: %v", q)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTopUpSubmit_BannedCustomerRedirectsToProfile(t *testing.T) {
	db, _ := newStoreTestDB(t)
	c := NewStoreController(db, workflow.NewEngine(db))

	form := url.Values{
		"user_id":        {"12345"},
		"nominal":        {"100 Diamonds|15000"},
		"payment_method": {"dana"},
	}
	rec := httptest.NewRecorder()
	c.TopUpSubmit(rec, topUpRequest(t, "freefire", &models.User{ID: 7, IsBanned: true}, form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/profile?notice=") {
		t.Fatalf("expected redirect to profile with notice, got %q", loc)
	}
}

func TestTopUpSubmit_BadNominalRedirectsBack(t *testing.T) {
	db, _ := newStoreTestDB(t)
	c := NewStoreController(db, workflow.NewEngine(db))

	form := url.Values{
		"user_id":        {"12345"},
		"nominal":        {"tanpa-harga"},
		"payment_method": {"dana"},
	}
	rec := httptest.NewRecorder()
	c.TopUpSubmit(rec, topUpRequest(t, "freefire", &models.User{ID: 7}, form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/topup/freefire?notice=") {
		t.Fatalf("expected redirect back to the form, got %q", loc)
	}
}

func TestTopUpSubmit_ManagerForbidden(t *testing.T) {
	db, _ := newStoreTestDB(t)
	c := NewStoreController(db, workflow.NewEngine(db))

	rec := httptest.NewRecorder()
	c.TopUpSubmit(rec, topUpRequest(t, "freefire", &models.Manager{ID: 1}, url.Values{}))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager principal, got %d", rec.Code)
	}
}

func TestTopUpForm_UnknownGame404(t *testing.T) {
	db, _ := newStoreTestDB(t)
	c := NewStoreController(db, workflow.NewEngine(db))

	r := httptest.NewRequest("GET", "http://example.local/topup/valorant", nil)
	r = mux.SetURLVars(r, map[string]string{"gameName": "valorant"})
	rec := httptest.NewRecorder()
	c.TopUpForm(rec, r)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for game outside the catalog, got %d", rec.Code)
	}
}
