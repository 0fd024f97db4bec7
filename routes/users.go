package routes

import (
	"net/http"
	"time"

	"github.com/Gamescriptsy/Gradegame/controllers/auth"
	"github.com/Gamescriptsy/Gradegame/controllers/users"
	"github.com/Gamescriptsy/Gradegame/middleware"

	"github.com/gorilla/mux"
)

// CustomerRoutes registers the public storefront pages and the
// customer-only transaction pages.
func CustomerRoutes(r *mux.Router, sessionAuth *middleware.SessionAuth, authController *auth.AuthController, store *users.StoreController) {
	// Brute force protection on the credential endpoints
	loginLimiter := middleware.NewIPRateLimiter(10, time.Minute)
	registerLimiter := middleware.NewIPRateLimiter(5, time.Minute)

	r.HandleFunc("/", store.Home).Methods(http.MethodGet)

	r.Handle("/login", http.HandlerFunc(authController.LoginForm)).Methods(http.MethodGet)
	r.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(authController.Login))).Methods(http.MethodPost)

	r.Handle("/register", http.HandlerFunc(authController.RegisterForm)).Methods(http.MethodGet)
	r.Handle("/register", registerLimiter.Middleware(http.HandlerFunc(authController.Register))).Methods(http.MethodPost)

	r.Handle("/register_manager", http.HandlerFunc(authController.RegisterManagerForm)).Methods(http.MethodGet)
	r.Handle("/register_manager", registerLimiter.Middleware(http.HandlerFunc(authController.RegisterManager))).Methods(http.MethodPost)

	r.Handle("/logout", sessionAuth.Require(http.HandlerFunc(authController.Logout))).Methods(http.MethodGet)

	r.Handle("/profile", sessionAuth.RequireCustomer(http.HandlerFunc(store.Profile))).Methods(http.MethodGet)
	r.Handle("/topup/{gameName}", sessionAuth.RequireCustomer(http.HandlerFunc(store.TopUpForm))).Methods(http.MethodGet)
	r.Handle("/topup/{gameName}", sessionAuth.RequireCustomer(http.HandlerFunc(store.TopUpSubmit))).Methods(http.MethodPost)
	r.Handle("/transaksi-berhasil", sessionAuth.RequireCustomer(http.HandlerFunc(store.TopUpSuccess))).Methods(http.MethodGet)
	r.Handle("/transactions", sessionAuth.RequireCustomer(http.HandlerFunc(store.Transactions))).Methods(http.MethodGet)
}
