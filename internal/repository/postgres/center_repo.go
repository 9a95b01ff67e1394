package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pacsbooking/internal/domain"
)

type centerRepository struct {
	DB *sql.DB
}

func NewCenterRepository(db *sql.DB) domain.CenterRepository {
	return &centerRepository{DB: db}
}

func (r *centerRepository) List(ctx context.Context, district string) ([]*domain.Center, error) {
	query := `
		SELECT id, name, district, address
		FROM centers
		WHERE $1 = '' OR district = $1
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query, district)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	centers := []*domain.Center{}
	for rows.Next() {
		c := &domain.Center{}
		if err := rows.Scan(&c.ID, &c.Name, &c.District, &c.Address); err != nil {
			return nil, err
		}
		centers = append(centers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return centers, nil
}

func (r *centerRepository) GetByID(ctx context.Context, id string) (*domain.Center, error) {
	query := `
		SELECT id, name, district, address
		FROM centers
		WHERE id = $1
	`
	c := &domain.Center{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.District, &c.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
