package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

// ErrDuplicateName is returned when an explicitly created category collides
// with an existing one (case-insensitively).
var ErrDuplicateName = errors.New("category already exists")

type Service interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, name string) (Category, error)
	// ResolveOrCreate returns the existing category matching name
	// case-insensitively, or creates a new one. It never rejects input:
	// any non-empty name yields a valid category.
	ResolveOrCreate(ctx context.Context, name string) (Category, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Create(ctx context.Context, name string) (Category, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return Category{}, err
	}
	if existing != nil {
		return Category{}, fmt.Errorf("category %q: %w", existing.Name, ErrDuplicateName)
	}

	id, err := s.repo.Store(ctx, name)
	if err != nil {
		return Category{}, err
	}
	return Category{ID: id, Name: name}, nil
}

func (s *ServiceImpl) ResolveOrCreate(ctx context.Context, name string) (Category, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return Category{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	// New categories get a canonical casing: first rune upper, rest lower.
	canonical := capitalize(name)
	id, err := s.repo.Store(ctx, canonical)
	if err != nil {
		return Category{}, err
	}
	log.Debugf("created category %q (id=%d)", canonical, id)
	return Category{ID: id, Name: canonical}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
