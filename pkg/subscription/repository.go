package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Filter narrows a listing. Empty fields match everything; both set means
// both must match. Matching is case-insensitive.
type Filter struct {
	Category string
	Status   string
}

type Repository interface {
	Store(ctx context.Context, sub Subscription) (int, error)
	Find(ctx context.Context, id int) (*Subscription, error)
	// FindByName looks a subscription up by name, case-insensitively.
	// Returns nil when no subscription matches.
	FindByName(ctx context.Context, name string) (*Subscription, error)
	List(ctx context.Context, filter Filter) ([]Subscription, error)
	Update(ctx context.Context, sub Subscription) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

const dateFormat = "2006-01-02"

const selectColumns = `SELECT s.id, s.name, s.price, s.frequency, s.start_date, s.status, s.category_id, c.name
				FROM subscription s
				JOIN category c ON c.id = s.category_id`

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, sub Subscription) (int, error) {
	query := `INSERT INTO subscription (
					name,
					price,
					frequency,
					start_date,
					status,
					category_id
				) VALUES (?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		sub.Name,
		sub.Price,
		string(sub.Frequency),
		sub.StartDate.Format(dateFormat),
		string(sub.Status),
		sub.CategoryID,
	)
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

func (r *RepositoryImpl) Find(ctx context.Context, id int) (*Subscription, error) {
	query := selectColumns + " WHERE s.id = ?"
	row := r.db.QueryRowContext(ctx, query, id)

	sub, err := scanSubscription(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not find subscription: %w", err)
		log.Error(err)
		return nil, err
	}
	return sub, nil
}

func (r *RepositoryImpl) FindByName(ctx context.Context, name string) (*Subscription, error) {
	query := selectColumns + " WHERE s.name = ? COLLATE NOCASE"
	row := r.db.QueryRowContext(ctx, query, name)

	sub, err := scanSubscription(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not find subscription by name: %w", err)
		log.Error(err)
		return nil, err
	}
	return sub, nil
}

func (r *RepositoryImpl) List(ctx context.Context, filter Filter) ([]Subscription, error) {
	query := selectColumns
	where := ""
	args := make([]any, 0, 2)
	if filter.Category != "" {
		where += " AND c.name = ? COLLATE NOCASE"
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		where += " AND s.status = ? COLLATE NOCASE"
		args = append(args, filter.Status)
	}
	if where != "" {
		query += " WHERE" + where[4:]
	}
	// Ordering by id keeps category first-appearance order deterministic
	// for the dashboard aggregation.
	query += " ORDER BY s.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query subscriptions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var subs []Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan subscription: %w", err)
			log.Error(err)
			return nil, err
		}
		subs = append(subs, *sub)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return subs, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, sub Subscription) (bool, error) {
	query := `UPDATE subscription SET
					name = ?,
					price = ?,
					frequency = ?,
					start_date = ?,
					status = ?,
					category_id = ?
				WHERE id = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		sub.Name,
		sub.Price,
		string(sub.Frequency),
		sub.StartDate.Format(dateFormat),
		string(sub.Status),
		sub.CategoryID,
		sub.ID,
	)
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

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	query := "DELETE FROM subscription WHERE id = ?"
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
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

func scanSubscription(scan func(dest ...any) error) (*Subscription, error) {
	var sub Subscription
	var frequency, startDate, status string
	if err := scan(
		&sub.ID,
		&sub.Name,
		&sub.Price,
		&frequency,
		&startDate,
		&status,
		&sub.CategoryID,
		&sub.CategoryName,
	); err != nil {
		return nil, err
	}

	sub.Frequency = Frequency(frequency)
	sub.Status = Status(status)
	parsed, err := time.Parse(dateFormat, startDate)
	if err != nil {
		return nil, fmt.Errorf("could not parse start date: %w", err)
	}
	sub.StartDate = parsed
	return &sub, nil
}
