package analytics

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/subtrack/subtrack/pkg/subscription"
)

// SubscriptionLister is the read side of the subscription repository the
// aggregator consumes.
type SubscriptionLister interface {
	List(ctx context.Context, categoryFilter, statusFilter string) ([]subscription.Subscription, error)
}

type Service interface {
	Dashboard(ctx context.Context) (Report, error)
	// TotalMonthlySpend is the unrounded monthly-equivalent total over all
	// active subscriptions. The budget evaluator builds on it.
	TotalMonthlySpend(ctx context.Context) (float64, error)
}

type ServiceImpl struct {
	subscriptions SubscriptionLister
}

func NewService(subscriptions SubscriptionLister) *ServiceImpl {
	return &ServiceImpl{subscriptions: subscriptions}
}

func (s *ServiceImpl) Dashboard(ctx context.Context) (Report, error) {
	subs, err := s.activeSubscriptions(ctx)
	if err != nil {
		return Report{}, err
	}

	total := 0.0
	totalsByCategory := map[string]float64{}
	var categoryOrder []string
	breakdown := make([]SubscriptionCost, 0, len(subs))

	for _, sub := range subs {
		cost := sub.MonthlyCost()
		total += cost

		if _, seen := totalsByCategory[sub.CategoryName]; !seen {
			categoryOrder = append(categoryOrder, sub.CategoryName)
		}
		totalsByCategory[sub.CategoryName] += cost

		breakdown = append(breakdown, SubscriptionCost{
			Name:        sub.Name,
			MonthlyCost: cost,
			Category:    sub.CategoryName,
		})
	}

	insights := CategoryInsights{}
	insights.CategoryTotals = make([]CategoryTotal, 0, len(categoryOrder))
	for _, name := range categoryOrder {
		insights.CategoryTotals = append(insights.CategoryTotals, CategoryTotal{
			Category: name,
			Total:    totalsByCategory[name],
		})
		// Strict comparison: a tie keeps the first-encountered category.
		if totalsByCategory[name] > insights.TopCategoryTotal || insights.TopCategory == "" {
			insights.TopCategory = name
			insights.TopCategoryTotal = totalsByCategory[name]
		}
	}

	log.Debugf("dashboard computed: %d active subscriptions, total %.4f", len(subs), total)
	return Report{
		Summary: Summary{
			TotalMonthlyCost: total,
			YearlyProjection: total * 12,
			ActiveCount:      len(subs),
		},
		Insights:  insights,
		Breakdown: breakdown,
	}, nil
}

func (s *ServiceImpl) TotalMonthlySpend(ctx context.Context) (float64, error) {
	subs, err := s.activeSubscriptions(ctx)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, sub := range subs {
		total += sub.MonthlyCost()
	}
	return total, nil
}

func (s *ServiceImpl) activeSubscriptions(ctx context.Context) ([]subscription.Subscription, error) {
	return s.subscriptions.List(ctx, "", string(subscription.StatusActive))
}
