package subscription

import (
	"context"
	"sort"
	"strings"
)

type StubRepository struct {
	nextId int
	data   map[int]Subscription
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int]Subscription{}}
}

func (s *StubRepository) Store(ctx context.Context, sub Subscription) (int, error) {
	s.nextId++
	sub.ID = s.nextId
	s.data[sub.ID] = sub
	return sub.ID, nil
}

func (s *StubRepository) Find(ctx context.Context, id int) (*Subscription, error) {
	sub, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (s *StubRepository) FindByName(ctx context.Context, name string) (*Subscription, error) {
	for _, sub := range s.data {
		if strings.EqualFold(sub.Name, name) {
			found := sub
			return &found, nil
		}
	}
	return nil, nil
}

func (s *StubRepository) List(ctx context.Context, filter Filter) ([]Subscription, error) {
	subs := make([]Subscription, 0, len(s.data))
	for _, sub := range s.data {
		if filter.Category != "" && !strings.EqualFold(sub.CategoryName, filter.Category) {
			continue
		}
		if filter.Status != "" && !strings.EqualFold(string(sub.Status), filter.Status) {
			continue
		}
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID < subs[j].ID })
	return subs, nil
}

func (s *StubRepository) Update(ctx context.Context, sub Subscription) (bool, error) {
	if _, ok := s.data[sub.ID]; !ok {
		return false, nil
	}
	s.data[sub.ID] = sub
	return true, nil
}

func (s *StubRepository) Delete(ctx context.Context, id int) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[int]Subscription{}
	s.nextId = 0
}
