package app

import (
	"database/sql"

	"github.com/subtrack/subtrack/internal/utils"
	"github.com/subtrack/subtrack/pkg/analytics"
	"github.com/subtrack/subtrack/pkg/budget"
	"github.com/subtrack/subtrack/pkg/category"
	"github.com/subtrack/subtrack/pkg/subscription"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	CategoryRepo    category.Repository
	CategoryService *category.ServiceImpl
	CategoryHandler *category.Handler

	SubscriptionRepo    subscription.Repository
	SubscriptionService *subscription.ServiceImpl
	SubscriptionHandler *subscription.Handler

	AnalyticsService *analytics.ServiceImpl
	AnalyticsHandler *analytics.Handler

	BudgetRepo    budget.Repository
	BudgetService *budget.ServiceImpl
	BudgetHandler *budget.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.CategoryRepo = category.NewRepository(db)
	deps.CategoryService = category.NewService(deps.CategoryRepo)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.SubscriptionRepo = subscription.NewRepository(db)
	deps.SubscriptionService = subscription.NewService(deps.SubscriptionRepo, deps.CategoryService, deps.Clock)
	deps.SubscriptionHandler = subscription.NewHandler(deps.SubscriptionService)

	deps.AnalyticsService = analytics.NewService(deps.SubscriptionService)
	deps.AnalyticsHandler = analytics.NewHandler(deps.AnalyticsService)

	deps.BudgetRepo = budget.NewRepository(db)
	deps.BudgetService = budget.NewService(deps.BudgetRepo, deps.AnalyticsService)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	return deps
}
