package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pacsbooking/internal/domain"
)

type orderRepository struct {
	DB *sql.DB
}

// NewOrderRepository returns a domain.OrderRepository implemented with Postgres.
// Line items are stored as a JSONB column.
func NewOrderRepository(db *sql.DB) domain.OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	query := `
		INSERT INTO orders (id, user_id, kind, items, total, slot_date, hour, center_id, center_name, token, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = r.DB.ExecContext(ctx, query,
		order.ID, order.UserID, order.Kind, items, order.Total,
		order.Date, order.Hour, order.CenterID, order.CenterName,
		order.Token, order.Status, order.CreatedAt,
	)
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, kind, items, total, slot_date, hour, center_id, center_name, token, status, created_at
		FROM orders
		WHERE id = $1
	`
	return scanOrder(r.DB.QueryRowContext(ctx, query, id))
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Order, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, kind, items, total, slot_date, hour, center_id, center_name, token, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	o := &domain.Order{}
	var items []byte
	err := row.Scan(&o.ID, &o.UserID, &o.Kind, &items, &o.Total,
		&o.Date, &o.Hour, &o.CenterID, &o.CenterName, &o.Token, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
	}
	return o, nil
}
