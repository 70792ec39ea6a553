package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Store persists a new category and returns its generated id.
	Store(ctx context.Context, name string) (int, error)
	GetAll(ctx context.Context) ([]Category, error)
	// FindByName looks a category up by name, case-insensitively.
	// Returns nil when no category matches.
	FindByName(ctx context.Context, name string) (*Category, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, name string) (int, error) {
	query := "INSERT INTO category (name) VALUES (?)"
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, name)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}

	return int(lastInsertID), nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Category, error) {
	query := "SELECT id, name FROM category ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return categories, nil
}

func (r *RepositoryImpl) FindByName(ctx context.Context, name string) (*Category, error) {
	query := "SELECT id, name FROM category WHERE name = ? COLLATE NOCASE"
	row := r.db.QueryRowContext(ctx, query, name)

	var c Category
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not find category by name: %w", err)
		log.Error(err)
		return nil, err
	}
	return &c, nil
}
