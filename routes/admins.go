package routes

import (
	"net/http"

	"github.com/Gamescriptsy/Gradegame/controllers/admins"
	"github.com/Gamescriptsy/Gradegame/middleware"

	"github.com/gorilla/mux"
)

// ManagerRoutes registers the back office. Everything under /manager is
// reachable only with a manager session.
func ManagerRoutes(r *mux.Router, sessionAuth *middleware.SessionAuth, admin *admins.AdminController) {
	m := r.PathPrefix("/manager").Subrouter()
	m.Use(sessionAuth.RequireManager)

	m.HandleFunc("/dashboard", admin.Dashboard).Methods(http.MethodGet)

	m.HandleFunc("/transactions", admin.Transactions).Methods(http.MethodGet)
	m.HandleFunc("/transactions/update", admin.UpdateTransaction).Methods(http.MethodPost)

	m.HandleFunc("/games", admin.Games).Methods(http.MethodGet)
	m.HandleFunc("/games/add", admin.AddGame).Methods(http.MethodPost)
	// Delete and ban are links in the back office, so they ride on GET.
	m.HandleFunc("/games/delete/{id}", admin.DeleteGame).Methods(http.MethodGet)

	m.HandleFunc("/users", admin.Users).Methods(http.MethodGet)
	m.HandleFunc("/users/ban/{id}", admin.BanUser).Methods(http.MethodGet)

	m.HandleFunc("/reports", admin.Reports).Methods(http.MethodGet)
}
