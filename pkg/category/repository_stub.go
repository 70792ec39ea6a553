package category

import (
	"context"
	"sort"
	"strings"
)

type StubRepository struct {
	nextId int
	data   map[int]Category
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int]Category{}}
}

func (s *StubRepository) Store(ctx context.Context, name string) (int, error) {
	s.nextId++
	s.data[s.nextId] = Category{ID: s.nextId, Name: name}
	return s.nextId, nil
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Category, error) {
	categories := make([]Category, 0, len(s.data))
	for _, c := range s.data {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (s *StubRepository) FindByName(ctx context.Context, name string) (*Category, error) {
	for _, c := range s.data {
		if strings.EqualFold(c.Name, name) {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[int]Category{}
	s.nextId = 0
}
