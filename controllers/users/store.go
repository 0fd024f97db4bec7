package users

import (
	"github.com/Gamescriptsy/Gradegame/workflow"

	"gorm.io/gorm"
)

// StoreController serves the customer-facing storefront: the game list,
// top-up forms, the confirmation page and transaction history.
type StoreController struct {
	DB     *gorm.DB
	Engine *workflow.Engine
}

func NewStoreController(db *gorm.DB, engine *workflow.Engine) *StoreController {
	return &StoreController{DB: db, Engine: engine}
}
