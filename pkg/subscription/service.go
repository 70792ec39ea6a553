package subscription

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/subtrack/subtrack/internal/utils"
	"github.com/subtrack/subtrack/pkg/category"
)

// CategoryResolver maps free-text category input to a canonical category,
// creating it when missing. Resolution itself never rejects input.
type CategoryResolver interface {
	ResolveOrCreate(ctx context.Context, name string) (category.Category, error)
}

type Service interface {
	Create(ctx context.Context, input Input) (Subscription, error)
	Get(ctx context.Context, id int) (Subscription, error)
	List(ctx context.Context, categoryFilter, statusFilter string) ([]Subscription, error)
	Update(ctx context.Context, id int, input Input) (Subscription, error)
	// Delete removes the subscription permanently and returns its last
	// known state.
	Delete(ctx context.Context, id int) (Subscription, error)
}

type ServiceImpl struct {
	repo       Repository
	categories CategoryResolver
	clock      utils.Clock
}

func NewService(repo Repository, categories CategoryResolver, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, categories: categories, clock: clock}
}

// Create validates the input and persists a new subscription. Checks run in
// a fixed order and the first failure wins; nothing is written before all
// field checks pass, except that category resolution (the final step) may
// create a category row on its own.
func (s *ServiceImpl) Create(ctx context.Context, input Input) (Subscription, error) {
	var missing []string
	if input.Name == nil {
		missing = append(missing, "name")
	}
	if input.Price == nil {
		missing = append(missing, "price")
	}
	if input.Frequency == nil {
		missing = append(missing, "frequency")
	}
	if input.Category == nil {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return Subscription{}, validationErrorf("Missing required fields: %s", strings.Join(missing, ", "))
	}

	existing, err := s.repo.FindByName(ctx, *input.Name)
	if err != nil {
		return Subscription{}, err
	}
	if existing != nil {
		return Subscription{}, fmt.Errorf("subscription %q: %w", existing.Name, ErrDuplicateName)
	}

	if *input.Price < 0 {
		return Subscription{}, validationErrorf("Price must be a non-negative number")
	}

	frequency, ok := ParseFrequency(*input.Frequency)
	if !ok {
		return Subscription{}, validationErrorf("Invalid frequency %q. Allowed: %s", *input.Frequency, allowedFrequencies())
	}

	status := StatusActive
	if input.Status != nil {
		status, ok = ParseStatus(*input.Status)
		if !ok {
			return Subscription{}, validationErrorf("Invalid status %q. Allowed: %s", *input.Status, allowedStatuses())
		}
	}

	startDate := utils.Today(s.clock)
	if input.StartDate != nil {
		startDate, err = parseDate(*input.StartDate)
		if err != nil {
			return Subscription{}, validationErrorf("Invalid start_date %q, expected format YYYY-MM-DD", *input.StartDate)
		}
	}

	cat, err := s.categories.ResolveOrCreate(ctx, *input.Category)
	if err != nil {
		return Subscription{}, err
	}

	sub := Subscription{
		Name:         *input.Name,
		Price:        *input.Price,
		Frequency:    frequency,
		StartDate:    startDate,
		Status:       status,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
	}
	id, err := s.repo.Store(ctx, sub)
	if err != nil {
		return Subscription{}, err
	}
	sub.ID = id

	log.Debugf("created subscription %q (id=%d) in category %q", sub.Name, sub.ID, sub.CategoryName)
	return sub, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Subscription, error) {
	sub, err := s.repo.Find(ctx, id)
	if err != nil {
		return Subscription{}, err
	}
	if sub == nil {
		return Subscription{}, ErrNotFound
	}
	return *sub, nil
}

func (s *ServiceImpl) List(ctx context.Context, categoryFilter, statusFilter string) ([]Subscription, error) {
	return s.repo.List(ctx, Filter{Category: categoryFilter, Status: statusFilter})
}

// Update applies each present input field independently; absent fields keep
// their current value. A category change re-resolves the category, possibly
// creating a new one.
func (s *ServiceImpl) Update(ctx context.Context, id int, input Input) (Subscription, error) {
	current, err := s.repo.Find(ctx, id)
	if err != nil {
		return Subscription{}, err
	}
	if current == nil {
		return Subscription{}, ErrNotFound
	}
	sub := *current

	if input.Name != nil {
		other, err := s.repo.FindByName(ctx, *input.Name)
		if err != nil {
			return Subscription{}, err
		}
		if other != nil && other.ID != id {
			return Subscription{}, fmt.Errorf("subscription %q: %w", other.Name, ErrDuplicateName)
		}
		sub.Name = *input.Name
	}

	if input.Price != nil {
		if *input.Price < 0 {
			return Subscription{}, validationErrorf("Price must be a non-negative number")
		}
		sub.Price = *input.Price
	}

	if input.Frequency != nil {
		frequency, ok := ParseFrequency(*input.Frequency)
		if !ok {
			return Subscription{}, validationErrorf("Invalid frequency %q. Allowed: %s", *input.Frequency, allowedFrequencies())
		}
		sub.Frequency = frequency
	}

	if input.Status != nil {
		status, ok := ParseStatus(*input.Status)
		if !ok {
			return Subscription{}, validationErrorf("Invalid status %q. Allowed: %s", *input.Status, allowedStatuses())
		}
		sub.Status = status
	}

	if input.StartDate != nil {
		startDate, err := parseDate(*input.StartDate)
		if err != nil {
			return Subscription{}, validationErrorf("Invalid start_date %q, expected format YYYY-MM-DD", *input.StartDate)
		}
		sub.StartDate = startDate
	}

	if input.Category != nil {
		cat, err := s.categories.ResolveOrCreate(ctx, *input.Category)
		if err != nil {
			return Subscription{}, err
		}
		sub.CategoryID = cat.ID
		sub.CategoryName = cat.Name
	}

	updated, err := s.repo.Update(ctx, sub)
	if err != nil {
		return Subscription{}, err
	}
	if !updated {
		return Subscription{}, ErrNotFound
	}
	return sub, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (Subscription, error) {
	sub, err := s.repo.Find(ctx, id)
	if err != nil {
		return Subscription{}, err
	}
	if sub == nil {
		return Subscription{}, ErrNotFound
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return Subscription{}, err
	}
	if !deleted {
		return Subscription{}, ErrNotFound
	}

	log.Debugf("deleted subscription %q (id=%d)", sub.Name, sub.ID)
	return *sub, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func allowedFrequencies() string {
	return joinValues(AllFrequencies())
}

func allowedStatuses() string {
	return joinValues(AllStatuses())
}

func joinValues[T ~string](values []T) string {
	strs := make([]string, 0, len(values))
	for _, v := range values {
		strs = append(strs, string(v))
	}
	return strings.Join(strs, ", ")
}
