package admins

import (
	"log"
	"net/http"

	"github.com/Gamescriptsy/Gradegame/models"
	"github.com/Gamescriptsy/Gradegame/utils"
)

// Reports returns the income total. As with the dashboard, the sum covers
// every transaction status.
func (c *AdminController) Reports(w http.ResponseWriter, r *http.Request) {
	var totalIncome int64
	err := c.DB.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalIncome).Error
	if err != nil {
		log.Printf("[admin] DB error summing income: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"total_income": totalIncome},
	})
}
