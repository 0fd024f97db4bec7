package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Gamescriptsy/Gradegame/models"
	"github.com/Gamescriptsy/Gradegame/utils"
	"github.com/Gamescriptsy/Gradegame/workflow"

	"gorm.io/gorm"
)

type registerForm struct {
	Username string `validate:"required,username"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,pwdmin"`
}

func registerFormFromRequest(r *http.Request) registerForm {
	return registerForm{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
}

// RegisterForm is the customer registration page payload.
func (c *AuthController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Silakan registrasi"})
}

// Register creates a customer account. A username or email already present in
// the user store fails without writing a row.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.RedirectWithNotice(w, r, "/register", "Form tidak valid")
		return
	}
	form := registerFormFromRequest(r)
	if err := utils.ValidateStruct(&form); err != nil {
		utils.RedirectWithNotice(w, r, "/register", err.Error())
		return
	}

	var existing models.User
	err := c.DB.Where("username = ? OR email = ?", form.Username, form.Email).First(&existing).Error
	if err == nil {
		utils.RedirectWithNotice(w, r, "/register", workflow.ErrDuplicateCredential.Error())
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[register] DB error checking username/email: %v", err)
		utils.RedirectWithNotice(w, r, "/register", "Server error")
		return
	}

	newUser := models.User{Username: form.Username, Email: form.Email}
	if err := newUser.SetPassword(form.Password); err != nil {
		log.Printf("[register] hash password: %v", err)
		utils.RedirectWithNotice(w, r, "/register", "Server error")
		return
	}
	if err := c.DB.Create(&newUser).Error; err != nil {
		log.Printf("[register] DB Create user error: %v", err)
		utils.RedirectWithNotice(w, r, "/register", "Registrasi gagal, silakan coba lagi")
		return
	}

	utils.RedirectWithNotice(w, r, "/login", "Registrasi berhasil! Silakan login.")
}

// RegisterManagerForm is the manager registration page payload.
func (c *AuthController) RegisterManagerForm(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Silakan registrasi manager"})
}

// RegisterManager creates a manager account in the manager store. Uniqueness
// is checked within the manager store only.
func (c *AuthController) RegisterManager(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.RedirectWithNotice(w, r, "/register_manager", "Form tidak valid")
		return
	}
	form := registerFormFromRequest(r)
	if err := utils.ValidateStruct(&form); err != nil {
		utils.RedirectWithNotice(w, r, "/register_manager", err.Error())
		return
	}

	var existing models.Manager
	err := c.DB.Where("username = ? OR email = ?", form.Username, form.Email).First(&existing).Error
	if err == nil {
		utils.RedirectWithNotice(w, r, "/register_manager", workflow.ErrDuplicateCredential.Error())
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[register_manager] DB error checking username/email: %v", err)
		utils.RedirectWithNotice(w, r, "/register_manager", "Server error")
		return
	}

	newManager := models.Manager{Username: form.Username, Email: form.Email}
	if err := newManager.SetPassword(form.Password); err != nil {
		log.Printf("[register_manager] hash password: %v", err)
		utils.RedirectWithNotice(w, r, "/register_manager", "Server error")
		return
	}
	if err := c.DB.Create(&newManager).Error; err != nil {
		log.Printf("[register_manager] DB Create manager error: %v", err)
		utils.RedirectWithNotice(w, r, "/register_manager", "Registrasi gagal, silakan coba lagi")
		return
	}

	utils.RedirectWithNotice(w, r, "/login", "Registrasi Manager berhasil!")
}
