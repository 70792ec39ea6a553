package budget

import "context"

type StubRepository struct {
	nextId int
	budget *Budget
}

func NewStubRepository() *StubRepository {
	return &StubRepository{}
}

func (s *StubRepository) Find(ctx context.Context) (*Budget, error) {
	if s.budget == nil {
		return nil, nil
	}
	found := *s.budget
	return &found, nil
}

func (s *StubRepository) Store(ctx context.Context, monthlyLimit float64) (int, error) {
	s.nextId++
	s.budget = &Budget{ID: s.nextId, MonthlyLimit: monthlyLimit}
	return s.nextId, nil
}

func (s *StubRepository) Update(ctx context.Context, budget Budget) (bool, error) {
	if s.budget == nil || s.budget.ID != budget.ID {
		return false, nil
	}
	s.budget = &budget
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.budget = nil
	s.nextId = 0
}
