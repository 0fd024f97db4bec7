package users

import (
	"log"
	"net/http"
	"time"

	"github.com/Gamescriptsy/Gradegame/utils"
)

type transactionRow struct {
	ID            uint      `json:"id"`
	UserGameID    string    `json:"user_game_id"`
	ItemName      string    `json:"item_name"`
	Amount        int       `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	GameName      string    `json:"game_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// Transactions lists transactions with their game names. Like the storefront
// it replaces, the listing is not filtered to the requesting customer.
func (c *StoreController) Transactions(w http.ResponseWriter, r *http.Request) {
	rows := make([]transactionRow, 0)
	err := c.DB.Table("transactions").
		Select("transactions.id, transactions.user_game_id, transactions.item_name, transactions.amount, transactions.payment_method, transactions.status, transactions.created_at, games.name AS game_name").
		Joins("LEFT JOIN games ON transactions.game_id = games.id").
		Order("transactions.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		log.Printf("[transactions] DB error listing: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"transactions": rows},
	})
}
