package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Gamescriptsy/Gradegame/middleware"
	"github.com/Gamescriptsy/Gradegame/models"
	"github.com/Gamescriptsy/Gradegame/utils"
	"github.com/Gamescriptsy/Gradegame/workflow"

	"gorm.io/gorm"
)

// LoginForm is the login page payload for clients that want it as JSON.
func (c *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Silakan login",
		Data:    map[string]interface{}{"roles": []string{"user", "manager"}},
	})
}

// Login authenticates against exactly one store, selected by the posted role
// discriminator. The same username may exist in both stores; the other store
// is never consulted.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.RedirectWithNotice(w, r, "/login", "Form tidak valid")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	role := r.FormValue("role")
	if role == "" {
		role = "user"
	}

	switch role {
	case "user":
		var user models.User
		if err := c.DB.Where("username = ?", username).First(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[login] DB error fetching user %s: %v", username, err)
			}
			utils.RedirectWithNotice(w, r, "/login", workflow.ErrInvalidCredential.Error())
			return
		}
		if locked, retry := middleware.IsAccountLocked("user", user.ID); locked {
			utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{
				Success: false,
				Message: "Terlalu banyak percobaan login. Coba lagi nanti.",
				Data:    map[string]interface{}{"retry_after_seconds": int(retry.Seconds())},
			})
			return
		}
		if !user.CheckPassword(password) {
			middleware.RecordFailedLogin("user", user.ID)
			utils.RedirectWithNotice(w, r, "/login", workflow.ErrInvalidCredential.Error())
			return
		}
		middleware.ResetFailedLogin("user", user.ID)
		c.openSession(w, r, &user, "/")
	case "manager":
		var manager models.Manager
		if err := c.DB.Where("username = ?", username).First(&manager).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[login] DB error fetching manager %s: %v", username, err)
			}
			utils.RedirectWithNotice(w, r, "/login", workflow.ErrInvalidCredential.Error())
			return
		}
		if locked, retry := middleware.IsAccountLocked("manager", manager.ID); locked {
			utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{
				Success: false,
				Message: "Terlalu banyak percobaan login. Coba lagi nanti.",
				Data:    map[string]interface{}{"retry_after_seconds": int(retry.Seconds())},
			})
			return
		}
		if !manager.CheckPassword(password) {
			middleware.RecordFailedLogin("manager", manager.ID)
			utils.RedirectWithNotice(w, r, "/login", workflow.ErrInvalidCredential.Error())
			return
		}
		middleware.ResetFailedLogin("manager", manager.ID)
		c.openSession(w, r, &manager, "/manager/dashboard")
	default:
		utils.RedirectWithNotice(w, r, "/login", workflow.ErrInvalidCredential.Error())
	}
}

func (c *AuthController) openSession(w http.ResponseWriter, r *http.Request, principal models.Principal, target string) {
	role := "user"
	if principal.IsManager() {
		role = "manager"
	}
	token, _, err := utils.IssueSessionToken(principal.PrincipalID(), role, c.SessionTTL)
	if err != nil {
		log.Printf("[login] issue session token: %v", err)
		utils.RedirectWithNotice(w, r, "/login", "Gagal login")
		return
	}
	utils.SetSessionCookie(w, token, c.SessionTTL)
	utils.RedirectWithNotice(w, r, target, "Login berhasil!")
}
