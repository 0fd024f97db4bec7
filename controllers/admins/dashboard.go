package admins

import (
	"log"
	"net/http"
	"time"

	"github.com/Gamescriptsy/Gradegame/models"
	"github.com/Gamescriptsy/Gradegame/utils"

	"gorm.io/gorm"
)

type TransactionDetail struct {
	Username  string    `json:"username"`
	ItemName  string    `json:"item_name"`
	Amount    int       `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type DashboardStats struct {
	UsersCount        int64 `json:"users_count"`
	TransactionsCount int64 `json:"transactions_count"`
	GamesCount        int64 `json:"games_count"`
	TotalIncome       int64 `json:"total_income"`
}

// DashboardSummary aggregates the manager dashboard counters. The income sum
// spans every transaction status, not only confirmed ones; that matches the
// storefront this replaces and is deliberately left unchanged. An empty
// database yields zeros, never nulls.
func DashboardSummary(db *gorm.DB) (DashboardStats, error) {
	var stats DashboardStats

	if err := db.Model(&models.User{}).Count(&stats.UsersCount).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Transaction{}).Count(&stats.TransactionsCount).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Game{}).Count(&stats.GamesCount).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalIncome).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

func (c *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := DashboardSummary(c.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// Last 10 transactions with customer names, newest first.
	last := make([]TransactionDetail, 0)
	rows, err := c.DB.Model(&models.Transaction{}).
		Select("users.username AS username, transactions.item_name, transactions.amount, transactions.status, transactions.created_at").
		Joins("JOIN users ON transactions.user_id = users.id").
		Order("transactions.created_at DESC").
		Limit(10).
		Rows()
	if err != nil {
		log.Printf("[admin] DB error listing last transactions: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var td TransactionDetail
			if scanErr := rows.Scan(&td.Username, &td.ItemName, &td.Amount, &td.Status, &td.CreatedAt); scanErr == nil {
				last = append(last, td)
			}
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"stats":             stats,
			"last_transactions": last,
		},
	})
}
