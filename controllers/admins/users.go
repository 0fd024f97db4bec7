package admins

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Gamescriptsy/Gradegame/models"
	"github.com/Gamescriptsy/Gradegame/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Users lists every customer for the moderation screen.
func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := c.DB.Find(&users).Error; err != nil {
		log.Printf("[admin] DB error listing users: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"users": users},
	})
}

// BanUser sets is_banned on an existing customer. Existing transactions only
// add a warning to the notice; they never block the ban, and they are left
// untouched.
func (c *AdminController) BanUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.RedirectWithNotice(w, r, "/manager/users", "User tidak ditemukan!")
		return
	}

	var user models.User
	if err := c.DB.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RedirectWithNotice(w, r, "/manager/users", "User tidak ditemukan!")
			return
		}
		log.Printf("[admin] DB error fetching user %d: %v", id, err)
		utils.RedirectWithNotice(w, r, "/manager/users", "Server error")
		return
	}

	var trxCount int64
	if err := c.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&trxCount).Error; err != nil {
		log.Printf("[admin] DB error counting transactions user=%d: %v", user.ID, err)
	}

	if err := c.DB.Model(&user).Update("is_banned", true).Error; err != nil {
		log.Printf("[admin] DB error banning user %d: %v", user.ID, err)
		utils.RedirectWithNotice(w, r, "/manager/users", "Server error")
		return
	}

	notice := "User berhasil diblokir!"
	if trxCount > 0 {
		notice = "User memiliki transaksi aktif tetapi akan ditandai sebagai diblokir."
	}
	utils.RedirectWithNotice(w, r, "/manager/users", notice)
}
