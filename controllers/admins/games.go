package admins

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Gamescriptsy/Gradegame/models"
	"github.com/Gamescriptsy/Gradegame/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Games lists the game catalog rows.
func (c *AdminController) Games(w http.ResponseWriter, r *http.Request) {
	var games []models.Game
	if err := c.DB.Find(&games).Error; err != nil {
		log.Printf("[admin] DB error listing games: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"games": games},
	})
}

// AddGame inserts a game row unconditionally; names are not unique. The
// image reference comes from the form, or from a multipart artwork upload
// pushed to R2 when object storage is configured.
func (c *AdminController) AddGame(w http.ResponseWriter, r *http.Request) {
	// Multipart first so an artwork file is seen; plain form posts fall back.
	if err := r.ParseMultipartForm(4 << 20); err != nil {
		if err := r.ParseForm(); err != nil {
			utils.RedirectWithNotice(w, r, "/manager/games", "Form tidak valid")
			return
		}
	}

	name := strings.TrimSpace(r.FormValue("name"))
	image := strings.TrimSpace(r.FormValue("image"))
	if name == "" {
		utils.RedirectWithNotice(w, r, "/manager/games", "Nama game tidak boleh kosong")
		return
	}

	if file, header, err := r.FormFile("artwork"); err == nil {
		defer file.Close()
		if utils.ArtworkStorageConfigured() {
			objectName := fmt.Sprintf("games/%d%s", time.Now().UnixNano(), filepath.Ext(header.Filename))
			url, upErr := utils.UploadArtworkAndPresign(objectName, file, 7*24*3600)
			if upErr != nil {
				log.Printf("[admin] artwork upload: %v", upErr)
				utils.RedirectWithNotice(w, r, "/manager/games", "Upload gambar gagal")
				return
			}
			image = url
		}
	}

	game := models.Game{Name: name, Image: image}
	if err := c.DB.Create(&game).Error; err != nil {
		log.Printf("[admin] DB Create game error: %v", err)
		utils.RedirectWithNotice(w, r, "/manager/games", "Server error")
		return
	}
	utils.RedirectWithNotice(w, r, "/manager/games", "Game berhasil ditambahkan!")
}

// DeleteGame removes a game row. Historical transactions referencing the id
// keep their reference; nothing cascades.
func (c *AdminController) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.RedirectWithNotice(w, r, "/manager/games", "Game tidak ditemukan!")
		return
	}

	var game models.Game
	if err := c.DB.First(&game, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RedirectWithNotice(w, r, "/manager/games", "Game tidak ditemukan!")
			return
		}
		log.Printf("[admin] DB error fetching game %d: %v", id, err)
		utils.RedirectWithNotice(w, r, "/manager/games", "Server error")
		return
	}

	if err := c.DB.Delete(&game).Error; err != nil {
		log.Printf("[admin] DB Delete game error: %v", err)
		utils.RedirectWithNotice(w, r, "/manager/games", "Server error")
		return
	}

	// Stored R2 artwork goes with the row; plain image URLs are left alone.
	if key, ok := utils.ArtworkObjectFromURL(game.Image); ok && utils.ArtworkStorageConfigured() {
		if err := utils.DeleteArtwork(key); err != nil {
			log.Printf("[admin] artwork delete %s: %v", key, err)
		}
	}

	utils.RedirectWithNotice(w, r, "/manager/games", "Game berhasil dihapus!")
}
