package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subtrack/subtrack/internal/utils"
	"github.com/subtrack/subtrack/pkg/category"
	"github.com/subtrack/subtrack/pkg/subscription"
)

func setupServiceTest(t *testing.T) (*ServiceImpl, *subscription.ServiceImpl, context.Context, func()) {
	subRepo := subscription.NewStubRepository()
	categoryRepo := category.NewStubRepository()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}
	subService := subscription.NewService(subRepo, category.NewService(categoryRepo), clock)

	return NewService(subService), subService, context.Background(), func() {
		t.Log("Teardown after test")
		subRepo.Cleanup()
		categoryRepo.Cleanup()
	}
}

func ptr[T any](v T) *T {
	return &v
}

func createSubscription(t *testing.T, service *subscription.ServiceImpl, ctx context.Context, name string, price float64, frequency, categoryName, status string) {
	t.Helper()
	_, err := service.Create(ctx, subscription.Input{
		Name:      ptr(name),
		Price:     ptr(price),
		Frequency: ptr(frequency),
		Category:  ptr(categoryName),
		Status:    ptr(status),
	})
	require.NoError(t, err)
}

func TestDashboard(t *testing.T) {

	t.Run("costs are normalized to monthly equivalents", func(t *testing.T) {
		service, subService, ctx, teardown := setupServiceTest(t)
		defer teardown()

		createSubscription(t, subService, ctx, "Netflix", 10.0, "Monthly", "Entertainment", "Active")
		createSubscription(t, subService, ctx, "Insurance", 120.0, "Yearly", "Utilities", "Active")

		report, err := service.Dashboard(ctx)
		require.NoError(t, err)

		assert.Equal(t, 20.0, report.Summary.TotalMonthlyCost)
		assert.Equal(t, 240.0, report.Summary.YearlyProjection)
		assert.Equal(t, 2, report.Summary.ActiveCount)
		require.Len(t, report.Breakdown, 2)
		assert.Equal(t, 10.0, report.Breakdown[1].MonthlyCost)
	})

	t.Run("paused and cancelled subscriptions are excluded", func(t *testing.T) {
		service, subService, ctx, teardown := setupServiceTest(t)
		defer teardown()

		createSubscription(t, subService, ctx, "Netflix", 10.0, "Monthly", "Entertainment", "Active")
		createSubscription(t, subService, ctx, "HBO Max", 15.0, "Monthly", "Entertainment", "Paused")
		createSubscription(t, subService, ctx, "Audible", 9.0, "Monthly", "Books", "Cancelled")

		report, err := service.Dashboard(ctx)
		require.NoError(t, err)

		assert.Equal(t, 10.0, report.Summary.TotalMonthlyCost)
		assert.Equal(t, 1, report.Summary.ActiveCount)
		require.Len(t, report.Insights.CategoryTotals, 1)
		assert.Equal(t, "Entertainment", report.Insights.CategoryTotals[0].Category)
	})

	t.Run("top category wins by monthly total", func(t *testing.T) {
		service, subService, ctx, teardown := setupServiceTest(t)
		defer teardown()

		createSubscription(t, subService, ctx, "Netflix", 10.0, "Monthly", "Entertainment", "Active")
		createSubscription(t, subService, ctx, "Spotify", 5.0, "Monthly", "Music", "Active")
		createSubscription(t, subService, ctx, "Tidal", 8.0, "Monthly", "Music", "Active")

		report, err := service.Dashboard(ctx)
		require.NoError(t, err)

		assert.Equal(t, "Music", report.Insights.TopCategory)
		assert.Equal(t, 13.0, report.Insights.TopCategoryTotal)
	})

	t.Run("a tie keeps the first-encountered category", func(t *testing.T) {
		service, subService, ctx, teardown := setupServiceTest(t)
		defer teardown()

		createSubscription(t, subService, ctx, "Netflix", 10.0, "Monthly", "Entertainment", "Active")
		createSubscription(t, subService, ctx, "Spotify", 10.0, "Monthly", "Music", "Active")

		report, err := service.Dashboard(ctx)
		require.NoError(t, err)

		assert.Equal(t, "Entertainment", report.Insights.TopCategory)
	})

	t.Run("empty active set yields a zeroed report", func(t *testing.T) {
		service, subService, ctx, teardown := setupServiceTest(t)
		defer teardown()

		createSubscription(t, subService, ctx, "HBO Max", 15.0, "Monthly", "Entertainment", "Paused")

		report, err := service.Dashboard(ctx)
		require.NoError(t, err)

		assert.Equal(t, 0.0, report.Summary.TotalMonthlyCost)
		assert.Equal(t, 0, report.Summary.ActiveCount)
		assert.Empty(t, report.Insights.TopCategory)
		assert.Empty(t, report.Insights.CategoryTotals)
		assert.Empty(t, report.Breakdown)
	})
}

func TestTotalMonthlySpend(t *testing.T) {
	service, subService, ctx, teardown := setupServiceTest(t)
	defer teardown()

	createSubscription(t, subService, ctx, "Netflix", 15.99, "Monthly", "Entertainment", "Active")
	createSubscription(t, subService, ctx, "Gym", 7.5, "Weekly", "Health", "Active")
	createSubscription(t, subService, ctx, "HBO Max", 15.0, "Monthly", "Entertainment", "Paused")

	total, err := service.TotalMonthlySpend(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 45.99, total, 1e-9)
}
