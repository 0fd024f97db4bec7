package users

import (
	"errors"
	"log"
	"net/http"

	"github.com/Gamescriptsy/Gradegame/models"
	"github.com/Gamescriptsy/Gradegame/utils"

	"gorm.io/gorm"
)

// Profile shows the logged-in customer together with their most recent
// transaction, if any.
func (c *StoreController) Profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	customer, ok := principal.(*models.User)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Akses ditolak"})
		return
	}

	var last *models.Transaction
	var trx models.Transaction
	err := c.DB.Where("user_id = ?", customer.ID).Order("created_at DESC").First(&trx).Error
	if err == nil {
		last = &trx
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[profile] DB error fetching last transaction user=%d: %v", customer.ID, err)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"user":             customer,
			"last_transaction": last,
		},
	})
}
