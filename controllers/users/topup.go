package users

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/Gamescriptsy/Gradegame/models"
	"github.com/Gamescriptsy/Gradegame/utils"
	"github.com/Gamescriptsy/Gradegame/workflow"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// TopUpForm serves the top-up page for one catalog game. Names outside the
// fixed catalog are a 404.
func (c *StoreController) TopUpForm(w http.ResponseWriter, r *http.Request) {
	gameName := mux.Vars(r)["gameName"]
	gameID, ok := workflow.GameID(gameName)
	if !ok {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: workflow.ErrUnknownGame.Error()})
		return
	}

	// The game row may have been deleted by a manager; the form still renders.
	var game *models.Game
	var row models.Game
	if err := c.DB.First(&row, gameID).Error; err == nil {
		game = &row
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[topup] DB error fetching game %d: %v", gameID, err)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"game_name": gameName, "game": game},
	})
}

// TopUpSubmit creates a pending transaction from the submitted form and
// forwards the submitted values to the confirmation page. The confirmation
// echoes the input rather than re-reading storage.
func (c *StoreController) TopUpSubmit(w http.ResponseWriter, r *http.Request) {
	gameName := mux.Vars(r)["gameName"]
	formTarget := "/topup/" + gameName

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

	if err := r.ParseForm(); err != nil {
		utils.RedirectWithNotice(w, r, formTarget, "Form tidak valid")
		return
	}

	userGameID := strings.TrimSpace(r.FormValue("user_id"))
	nominal, price, err := workflow.ParseNominal(r.FormValue("nominal"))
	if err != nil {
		utils.RedirectWithNotice(w, r, formTarget, "Nominal tidak valid")
		return
	}
	paymentMethod := strings.TrimSpace(r.FormValue("payment_method"))

	_, err = c.Engine.CreateTopUp(r.Context(), customer, workflow.TopUpInput{
		GameName:      gameName,
		UserGameID:    userGameID,
		ItemName:      nominal,
		Amount:        price,
		PaymentMethod: paymentMethod,
	})
	switch {
	case err == nil:
		params := url.Values{}
		params.Set("game_name", gameName)
		params.Set("user_game_id", userGameID)
		params.Set("nominal", nominal)
		params.Set("payment_method", paymentMethod)
		utils.RedirectWithNotice(w, r, "/transaksi-berhasil?"+params.Encode(), "Top up berhasil!")
	case errors.Is(err, workflow.ErrAccountBanned):
		utils.RedirectWithNotice(w, r, "/profile", "Akun Anda telah diblokir dan tidak dapat melakukan transaksi.")
	case errors.Is(err, workflow.ErrUnknownGame):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: workflow.ErrUnknownGame.Error()})
	default:
		utils.RedirectWithNotice(w, r, formTarget, "Terjadi kesalahan saat memproses transaksi.")
	}
}

// TopUpSuccess echoes the confirmation parameters back. The values come from
// the redirect, not from storage, so a concurrent update is not reflected.
func (c *StoreController) TopUpSuccess(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Top up berhasil!",
		Data: map[string]interface{}{
			"game_name":      q.Get("game_name"),
			"user_game_id":   q.Get("user_game_id"),
			"nominal":        q.Get("nominal"),
			"payment_method": q.Get("payment_method"),
		},
	})
}
