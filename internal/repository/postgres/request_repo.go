package postgres

import (
	"context"
	"database/sql"

	"pacsbooking/internal/domain"
)

type serviceRequestRepository struct {
	DB *sql.DB
}

func NewServiceRequestRepository(db *sql.DB) domain.ServiceRequestRepository {
	return &serviceRequestRepository{DB: db}
}

func (r *serviceRequestRepository) Create(ctx context.Context, req *domain.ServiceRequest) error {
	query := `
		INSERT INTO service_requests (id, type, user_id, item, qty, preferred_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		req.ID, req.Type, req.UserID, req.Item, req.Qty, req.PreferredDate, req.Status, req.CreatedAt,
	)
	return err
}

func (r *serviceRequestRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.ServiceRequest, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM service_requests`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, type, user_id, item, qty, preferred_date, status, created_at
		FROM service_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reqs := []*domain.ServiceRequest{}
	for rows.Next() {
		req := &domain.ServiceRequest{}
		if err := rows.Scan(&req.ID, &req.Type, &req.UserID, &req.Item, &req.Qty,
			&req.PreferredDate, &req.Status, &req.CreatedAt); err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}
