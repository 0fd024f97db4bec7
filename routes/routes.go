package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Gamescriptsy/Gradegame/controllers/admins"
	"github.com/Gamescriptsy/Gradegame/controllers/auth"
	"github.com/Gamescriptsy/Gradegame/controllers/users"
	"github.com/Gamescriptsy/Gradegame/middleware"
	"github.com/Gamescriptsy/Gradegame/workflow"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// InitRouter wires every storefront route. The DB handle and the workflow
// engine are constructed here and injected into the controllers; nothing
// reads a package-level handle.
func InitRouter(db *gorm.DB) *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint for Docker health checks
	r.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "gradegame",
		})
	})).Methods(http.MethodGet)

	// CORS - origins from CORS_ALLOWED_ORIGINS (comma-separated) or defaults
	origins := []string{"http://localhost:3000", "http://localhost:8080", "http://127.0.0.1:3000", "http://127.0.0.1:8080"}
	if originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS"); originsEnv != "" {
		for _, p := range strings.Split(originsEnv, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	var engineOpts []workflow.Option
	if strings.EqualFold(os.Getenv("STRICT_STATUS_TRANSITIONS"), "true") {
		engineOpts = append(engineOpts, workflow.WithStrictTransitions())
	}
	engine := workflow.NewEngine(db, engineOpts...)

	sessionAuth := middleware.NewSessionAuth(db)
	authController := auth.NewAuthController(db)
	storeController := users.NewStoreController(db, engine)
	adminController := admins.NewAdminController(db, engine)

	CustomerRoutes(r, sessionAuth, authController, storeController)
	ManagerRoutes(r, sessionAuth, adminController)

	return r
}
