package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Find returns the singleton budget, or nil when none has been set.
	Find(ctx context.Context) (*Budget, error)
	Store(ctx context.Context, monthlyLimit float64) (int, error)
	Update(ctx context.Context, budget Budget) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Find(ctx context.Context) (*Budget, error) {
	query := "SELECT id, monthly_limit FROM budget ORDER BY id LIMIT 1"
	row := r.db.QueryRowContext(ctx, query)

	var b Budget
	if err := row.Scan(&b.ID, &b.MonthlyLimit); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not find budget: %w", err)
		log.Error(err)
		return nil, err
	}
	return &b, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, monthlyLimit float64) (int, error) {
	query := "INSERT INTO budget (monthly_limit) VALUES (?)"
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, monthlyLimit)
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

func (r *RepositoryImpl) Update(ctx context.Context, budget Budget) (bool, error) {
	query := "UPDATE budget SET monthly_limit = ? WHERE id = ?"
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, budget.MonthlyLimit, budget.ID)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}
