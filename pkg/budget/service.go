package budget

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

// ErrInvalidLimit is returned when a budget update carries a non-positive
// limit.
var ErrInvalidLimit = errors.New("budget limit must be positive")

// SpendCalculator supplies the unrounded monthly-equivalent total over all
// active subscriptions.
type SpendCalculator interface {
	TotalMonthlySpend(ctx context.Context) (float64, error)
}

type Service interface {
	// Status evaluates budget health against current spend. A missing
	// budget yields Status{Set: false}, not an error.
	Status(ctx context.Context) (Status, error)
	// Set creates or replaces the singleton budget's monthly limit.
	Set(ctx context.Context, monthlyLimit float64) (Budget, error)
}

type ServiceImpl struct {
	repo  Repository
	spend SpendCalculator
}

func NewService(repo Repository, spend SpendCalculator) *ServiceImpl {
	return &ServiceImpl{repo: repo, spend: spend}
}

func (s *ServiceImpl) Status(ctx context.Context) (Status, error) {
	b, err := s.repo.Find(ctx)
	if err != nil {
		return Status{}, err
	}
	if b == nil {
		return Status{Set: false}, nil
	}

	currentSpend, err := s.spend.TotalMonthlySpend(ctx)
	if err != nil {
		return Status{}, err
	}

	// Multiply before dividing so round percentages (e.g. exactly 85) stay
	// exact and boundary classification is stable.
	usagePercent := 0.0
	if b.MonthlyLimit > 0 {
		usagePercent = (currentSpend * 100) / b.MonthlyLimit
	}

	return Status{
		Set:          true,
		MonthlyLimit: b.MonthlyLimit,
		CurrentSpend: currentSpend,
		Remaining:    b.MonthlyLimit - currentSpend,
		UsagePercent: usagePercent,
		Health:       HealthFor(usagePercent),
	}, nil
}

func (s *ServiceImpl) Set(ctx context.Context, monthlyLimit float64) (Budget, error) {
	if monthlyLimit <= 0 {
		return Budget{}, ErrInvalidLimit
	}

	existing, err := s.repo.Find(ctx)
	if err != nil {
		return Budget{}, err
	}

	if existing == nil {
		id, err := s.repo.Store(ctx, monthlyLimit)
		if err != nil {
			return Budget{}, err
		}
		log.Debugf("budget created with limit %.2f", monthlyLimit)
		return Budget{ID: id, MonthlyLimit: monthlyLimit}, nil
	}

	updated := Budget{ID: existing.ID, MonthlyLimit: monthlyLimit}
	ok, err := s.repo.Update(ctx, updated)
	if err != nil {
		return Budget{}, err
	}
	if !ok {
		return Budget{}, errors.New("budget not updated")
	}
	log.Debugf("budget limit updated to %.2f", monthlyLimit)
	return updated, nil
}
