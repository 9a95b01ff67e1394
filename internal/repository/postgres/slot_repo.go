package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"pacsbooking/internal/domain"
)

type slotRepository struct {
	DB *sql.DB
}

// NewSlotRepository returns a domain.SlotRepository implemented with Postgres.
// One row per (slot_date, hour); all booking mutations go through a single
// conditional upsert so the capacity check and the increment commit as one
// statement under row-level locking.
func NewSlotRepository(db *sql.DB) domain.SlotRepository {
	return &slotRepository{DB: db}
}

func (r *slotRepository) EnsureDay(ctx context.Context, date string) error {
	query := `
		INSERT INTO hour_slots (slot_date, hour, capacity, booked)
		SELECT $1, h, $2, 0
		FROM unnest($3::text[]) AS h
		ON CONFLICT (slot_date, hour) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, date, domain.DefaultSlotCapacity, pq.Array(domain.ScheduleHours))
	if err != nil {
		return mapSlotError(err)
	}
	return nil
}

func (r *slotRepository) ListByDate(ctx context.Context, date string) (map[string]*domain.HourSlot, error) {
	query := `
		SELECT slot_date, hour, capacity, booked
		FROM hour_slots
		WHERE slot_date = $1
	`
	rows, err := r.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, mapSlotError(err)
	}
	defer rows.Close()

	slots := make(map[string]*domain.HourSlot)
	for rows.Next() {
		s := &domain.HourSlot{}
		if err := rows.Scan(&s.Date, &s.Hour, &s.Capacity, &s.Booked); err != nil {
			return nil, err
		}
		slots[s.Hour] = s
	}
	if err := rows.Err(); err != nil {
		return nil, mapSlotError(err)
	}
	return slots, nil
}

func (r *slotRepository) Get(ctx context.Context, date, hour string) (*domain.HourSlot, error) {
	query := `
		SELECT slot_date, hour, capacity, booked
		FROM hour_slots
		WHERE slot_date = $1 AND hour = $2
	`
	s := &domain.HourSlot{}
	err := r.DB.QueryRowContext(ctx, query, date, hour).Scan(&s.Date, &s.Hour, &s.Capacity, &s.Booked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapSlotError(err)
	}
	return s, nil
}

func (r *slotRepository) Book(ctx context.Context, date, hour string, quantity int) (*domain.HourSlot, error) {
	// Fresh rows are inserted only when the quantity fits the default
	// capacity; existing rows are incremented only when the result stays
	// within their capacity. Either way a rejected booking yields zero rows.
	query := `
		INSERT INTO hour_slots (slot_date, hour, capacity, booked)
		SELECT $1, $2, $3, $4
		WHERE $4 <= $3
		ON CONFLICT (slot_date, hour) DO UPDATE
		SET booked = hour_slots.booked + EXCLUDED.booked
		WHERE hour_slots.booked + EXCLUDED.booked <= hour_slots.capacity
		RETURNING slot_date, hour, capacity, booked
	`
	s := &domain.HourSlot{}
	err := r.DB.QueryRowContext(ctx, query, date, hour, domain.DefaultSlotCapacity, quantity).
		Scan(&s.Date, &s.Hour, &s.Capacity, &s.Booked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSoldOut
		}
		return nil, mapSlotError(err)
	}
	return s, nil
}

// mapSlotError translates transient storage failures (statement timeout,
// serialization failure, lock timeout, context deadline) into
// domain.ErrUnavailable so callers can distinguish "retry the call" from
// a real fault.
func mapSlotError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"55P03", // lock_not_available
			"57014": // query_canceled (statement_timeout)
			return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
		}
	}
	return err
}
