package users

import (
	"log"
	"net/http"

	"github.com/Gamescriptsy/Gradegame/models"
	"github.com/Gamescriptsy/Gradegame/utils"
)

// Home lists every game on the storefront landing page.
func (c *StoreController) Home(w http.ResponseWriter, r *http.Request) {
	var games []models.Game
	if err := c.DB.Find(&games).Error; err != nil {
		log.Printf("[home] DB error listing games: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"games": games},
	})
}
