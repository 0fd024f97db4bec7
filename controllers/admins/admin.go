package admins

import (
	"github.com/Gamescriptsy/Gradegame/workflow"

	"gorm.io/gorm"
)

// AdminController serves every manager-facing screen: the dashboard, the
// transaction queue, game catalog administration, user moderation and
// reports.
type AdminController struct {
	DB     *gorm.DB
	Engine *workflow.Engine
}

func NewAdminController(db *gorm.DB, engine *workflow.Engine) *AdminController {
	return &AdminController{DB: db, Engine: engine}
}
