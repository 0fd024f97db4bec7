package admins

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Gamescriptsy/Gradegame/utils"
	"github.com/Gamescriptsy/Gradegame/workflow"
)

type TransactionResponse struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Username      string    `json:"username"`
	GameName      string    `json:"game_name"`
	UserGameID    string    `json:"user_game_id"`
	ItemName      string    `json:"item_name"`
	Amount        int       `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Transactions lists every transaction for the manager queue, newest first.
func (c *AdminController) Transactions(w http.ResponseWriter, r *http.Request) {
	response := make([]TransactionResponse, 0)
	err := c.DB.Table("transactions").
		Select("transactions.id, transactions.user_id, users.username AS username, games.name AS game_name, transactions.user_game_id, transactions.item_name, transactions.amount, transactions.payment_method, transactions.status, transactions.created_at").
		Joins("JOIN users ON transactions.user_id = users.id").
		Joins("LEFT JOIN games ON transactions.game_id = games.id").
		Order("transactions.created_at DESC").
		Scan(&response).Error
	if err != nil {
		log.Printf("[admin] DB error listing transactions: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    response,
	})
}

// UpdateTransaction overwrites a transaction status from the posted form.
// The status value is forwarded to the engine exactly as submitted; only the
// column enum constrains it.
func (c *AdminController) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.RedirectWithNotice(w, r, "/manager/transactions", "Form tidak valid")
		return
	}

	id, err := strconv.ParseUint(r.FormValue("transaction_id"), 10, 32)
	if err != nil {
		utils.RedirectWithNotice(w, r, "/manager/transactions", "Transaksi tidak ditemukan!")
		return
	}
	status := r.FormValue("status")

	_, err = c.Engine.SetTransactionStatus(r.Context(), uint(id), status)
	switch {
	case err == nil:
		utils.RedirectWithNotice(w, r, "/manager/transactions", "Status transaksi diperbarui!")
	case errors.Is(err, workflow.ErrNotFound):
		utils.RedirectWithNotice(w, r, "/manager/transactions", "Transaksi tidak ditemukan!")
	case errors.Is(err, workflow.ErrInvalidTransition):
		utils.RedirectWithNotice(w, r, "/manager/transactions", workflow.ErrInvalidTransition.Error())
	default:
		log.Printf("[admin] update transaction %d: %v", id, err)
		utils.RedirectWithNotice(w, r, "/manager/transactions", "Server error")
	}
}
