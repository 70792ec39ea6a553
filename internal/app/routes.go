package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Categories
	r.HandleFunc("/api/categories", deps.CategoryHandler.List).Methods("GET")
	r.HandleFunc("/api/categories", deps.CategoryHandler.Create).Methods("POST")

	// Subscriptions
	r.HandleFunc("/api/subscriptions", deps.SubscriptionHandler.List).Methods("GET")
	r.HandleFunc("/api/subscriptions", deps.SubscriptionHandler.Create).Methods("POST")
	r.HandleFunc("/api/subscriptions/{id}", deps.SubscriptionHandler.Get).Methods("GET")
	r.HandleFunc("/api/subscriptions/{id}", deps.SubscriptionHandler.Update).Methods("PUT")
	r.HandleFunc("/api/subscriptions/{id}", deps.SubscriptionHandler.Delete).Methods("DELETE")

	// Budget
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetStatus).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.Update).Methods("PUT")

	// Analytics
	r.HandleFunc("/api/analytics", deps.AnalyticsHandler.GetDashboard).Methods("GET")
}
