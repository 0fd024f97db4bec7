package auth

import (
	"log"
	"net/http"

	"github.com/Gamescriptsy/Gradegame/utils"
)

// Logout revokes the session token jti and clears the cookie. Revocation uses
// Redis when configured and falls back to the revoked_sessions table.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := utils.SessionTokenFromRequest(r); ok {
		if _, jti, err := utils.ValidateSessionToken(c.DB, token); err == nil && jti != "" {
			if err := utils.RevokeSession(c.DB, jti, c.SessionTTL); err != nil {
				log.Printf("[logout] revoke session: %v", err)
			}
		}
	}
	utils.ClearSessionCookie(w)
	utils.RedirectWithNotice(w, r, "/", "Anda telah logout")
}
