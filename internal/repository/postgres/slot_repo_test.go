package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"pacsbooking/internal/domain"
)

func TestSlotRepository_Book(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		date     string
		hour     string
		quantity int
		mock     func(mock sqlmock.Sqlmock)
		wantSlot *domain.HourSlot
		wantErr  bool
		errIs    error
	}{
		{
			name:     "books into fresh cell",
			date:     "2025-06-01",
			hour:     "09:00",
			quantity: 2,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO hour_slots`).
					WithArgs("2025-06-01", "09:00", domain.DefaultSlotCapacity, 2).
					WillReturnRows(sqlmock.NewRows([]string{"slot_date", "hour", "capacity", "booked"}).
						AddRow("2025-06-01", "09:00", 20, 2))
			},
			wantSlot: &domain.HourSlot{Date: "2025-06-01", Hour: "09:00", Capacity: 20, Booked: 2},
		},
		{
			name:     "fills cell exactly to capacity",
			date:     "2025-06-01",
			hour:     "10:00",
			quantity: 20,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO hour_slots`).
					WithArgs("2025-06-01", "10:00", domain.DefaultSlotCapacity, 20).
					WillReturnRows(sqlmock.NewRows([]string{"slot_date", "hour", "capacity", "booked"}).
						AddRow("2025-06-01", "10:00", 20, 20))
			},
			wantSlot: &domain.HourSlot{Date: "2025-06-01", Hour: "10:00", Capacity: 20, Booked: 20},
		},
		{
			name:     "zero rows means sold out",
			date:     "2025-06-01",
			hour:     "11:00",
			quantity: 5,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO hour_slots`).
					WithArgs("2025-06-01", "11:00", domain.DefaultSlotCapacity, 5).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrSoldOut,
		},
		{
			name:     "statement timeout maps to unavailable",
			date:     "2025-06-01",
			hour:     "12:00",
			quantity: 1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO hour_slots`).
					WithArgs("2025-06-01", "12:00", domain.DefaultSlotCapacity, 1).
					WillReturnError(&pq.Error{Code: "57014"})
			},
			wantErr: true,
			errIs:   domain.ErrUnavailable,
		},
		{
			name:     "deadlock maps to unavailable",
			date:     "2025-06-01",
			hour:     "12:00",
			quantity: 1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO hour_slots`).
					WithArgs("2025-06-01", "12:00", domain.DefaultSlotCapacity, 1).
					WillReturnError(&pq.Error{Code: "40P01"})
			},
			wantErr: true,
			errIs:   domain.ErrUnavailable,
		},
		{
			name:     "context deadline maps to unavailable",
			date:     "2025-06-01",
			hour:     "13:00",
			quantity: 1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO hour_slots`).
					WithArgs("2025-06-01", "13:00", domain.DefaultSlotCapacity, 1).
					WillReturnError(context.DeadlineExceeded)
			},
			wantErr: true,
			errIs:   domain.ErrUnavailable,
		},
		{
			name:     "other db errors pass through unmapped",
			date:     "2025-06-01",
			hour:     "14:00",
			quantity: 1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO hour_slots`).
					WithArgs("2025-06-01", "14:00", domain.DefaultSlotCapacity, 1).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			repo := NewSlotRepository(db)
			got, err := repo.Book(ctx, tt.date, tt.hour, tt.quantity)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				if tt.errIs == domain.ErrSoldOut {
					require.NotErrorIs(t, err, domain.ErrUnavailable)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantSlot, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSlotRepository_EnsureDay(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		date    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "inserts all schedule hours",
			date: "2025-06-01",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO hour_slots`).
					WithArgs("2025-06-01", domain.DefaultSlotCapacity, pq.Array(domain.ScheduleHours)).
					WillReturnResult(sqlmock.NewResult(0, int64(len(domain.ScheduleHours))))
			},
		},
		{
			name: "idempotent when rows already exist",
			date: "2025-06-01",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO hour_slots`).
					WithArgs("2025-06-01", domain.DefaultSlotCapacity, pq.Array(domain.ScheduleHours)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "lock timeout maps to unavailable",
			date: "2025-06-01",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO hour_slots`).
					WithArgs("2025-06-01", domain.DefaultSlotCapacity, pq.Array(domain.ScheduleHours)).
					WillReturnError(&pq.Error{Code: "55P03"})
			},
			wantErr: true,
			errIs:   domain.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			repo := NewSlotRepository(db)
			err = repo.EnsureDay(ctx, tt.date)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSlotRepository_ListByDate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns slots keyed by hour", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT slot_date, hour, capacity, booked FROM hour_slots WHERE slot_date = \$1`).
			WithArgs("2025-06-01").
			WillReturnRows(sqlmock.NewRows([]string{"slot_date", "hour", "capacity", "booked"}).
				AddRow("2025-06-01", "09:00", 20, 3).
				AddRow("2025-06-01", "10:00", 20, 20))

		repo := NewSlotRepository(db)
		got, err := repo.ListByDate(ctx, "2025-06-01")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, 3, got["09:00"].Booked)
		require.Equal(t, 0, got["10:00"].Remaining())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty date yields empty map", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT slot_date, hour, capacity, booked FROM hour_slots WHERE slot_date = \$1`).
			WithArgs("2030-01-01").
			WillReturnRows(sqlmock.NewRows([]string{"slot_date", "hour", "capacity", "booked"}))

		repo := NewSlotRepository(db)
		got, err := repo.ListByDate(ctx, "2030-01-01")
		require.NoError(t, err)
		require.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSlotRepository_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		date     string
		hour     string
		mock     func(mock sqlmock.Sqlmock)
		wantSlot *domain.HourSlot
		wantErr  bool
		errIs    error
	}{
		{
			name: "success",
			date: "2025-06-01",
			hour: "09:00",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT slot_date, hour, capacity, booked FROM hour_slots`).
					WithArgs("2025-06-01", "09:00").
					WillReturnRows(sqlmock.NewRows([]string{"slot_date", "hour", "capacity", "booked"}).
						AddRow("2025-06-01", "09:00", 20, 7))
			},
			wantSlot: &domain.HourSlot{Date: "2025-06-01", Hour: "09:00", Capacity: 20, Booked: 7},
		},
		{
			name: "missing cell returns ErrNotFound",
			date: "2025-06-01",
			hour: "17:00",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT slot_date, hour, capacity, booked FROM hour_slots`).
					WithArgs("2025-06-01", "17:00").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			date: "2025-06-01",
			hour: "09:00",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT slot_date, hour, capacity, booked FROM hour_slots`).
					WithArgs("2025-06-01", "09:00").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			repo := NewSlotRepository(db)
			got, err := repo.Get(ctx, tt.date, tt.hour)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantSlot, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
