package middleware

import (
	"context"
	"net/http"

	"github.com/Gamescriptsy/Gradegame/models"
	"github.com/Gamescriptsy/Gradegame/utils"

	"gorm.io/gorm"
)

// SessionAuth resolves the session-carried principal id at the start of every
// protected request. The user store is checked before the manager store; the
// first match wins. Requests without a resolvable principal are redirected to
// the login entry point; a principal of the wrong kind is sent back to its own
// surface with a notice.
type SessionAuth struct {
	db *gorm.DB
}

func NewSessionAuth(db *gorm.DB) *SessionAuth {
	return &SessionAuth{db: db}
}

func (a *SessionAuth) resolve(r *http.Request) (models.Principal, bool) {
	token, ok := utils.SessionTokenFromRequest(r)
	if !ok {
		return nil, false
	}
	id, _, err := utils.ValidateSessionToken(a.db, token)
	if err != nil {
		return nil, false
	}
	principal, err := models.ResolvePrincipal(a.db, id)
	if err != nil {
		return nil, false
	}
	return principal, true
}

func (a *SessionAuth) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Require admits any authenticated principal.
func (a *SessionAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := a.resolve(r)
		if !ok {
			a.redirectToLogin(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), utils.PrincipalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCustomer admits authenticated customers only.
func (a *SessionAuth) RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := a.resolve(r)
		if !ok {
			a.redirectToLogin(w, r)
			return
		}
		if principal.IsManager() {
			utils.RedirectWithNotice(w, r, "/manager/dashboard", "Akses ditolak")
			return
		}
		ctx := context.WithValue(r.Context(), utils.PrincipalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireManager admits authenticated managers only.
func (a *SessionAuth) RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := a.resolve(r)
		if !ok {
			a.redirectToLogin(w, r)
			return
		}
		if !principal.IsManager() {
			utils.RedirectWithNotice(w, r, "/", "Akses khusus manager")
			return
		}
		ctx := context.WithValue(r.Context(), utils.PrincipalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
