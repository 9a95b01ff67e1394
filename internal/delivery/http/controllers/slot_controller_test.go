package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pacsbooking/internal/delivery/http/helpers"
	"pacsbooking/internal/delivery/http/middleware"
	"pacsbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeSlotService implements domain.SlotService for handler tests.
type fakeSlotService struct {
	availability    []domain.HourAvailability
	availabilityErr error
	bookResult      *domain.BookingResult
	bookErr         error
	lastDate        string
	lastHour        string
	lastQuantity    int
}

func (f *fakeSlotService) GetAvailability(ctx context.Context, date string) ([]domain.HourAvailability, error) {
	f.lastDate = date
	if f.availabilityErr != nil {
		return nil, f.availabilityErr
	}
	return f.availability, nil
}

func (f *fakeSlotService) BookSlot(ctx context.Context, date, hour string, quantity int) (*domain.BookingResult, error) {
	f.lastDate, f.lastHour, f.lastQuantity = date, hour, quantity
	return f.bookResult, f.bookErr
}

func TestSlotController_GetAvailability(t *testing.T) {
	tests := []struct {
		name       string
		date       string
		fake       *fakeSlotService
		wantStatus int
		wantCode   string
	}{
		{
			name: "success",
			date: "2025-06-01",
			fake: &fakeSlotService{availability: []domain.HourAvailability{
				{Hour: "09:00", Remaining: 20},
				{Hour: "10:00", Remaining: 5},
			}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid date",
			date:       "2025-13-40",
			fake:       &fakeSlotService{availabilityErr: domain.ErrInvalidDateFormat},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeInvalidDate,
		},
		{
			name:       "storage unavailable",
			date:       "2025-06-01",
			fake:       &fakeSlotService{availabilityErr: domain.ErrUnavailable},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   helpers.ErrCodeUnavailable,
		},
		{
			name:       "unexpected error",
			date:       "2025-06-01",
			fake:       &fakeSlotService{availabilityErr: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewSlotController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodGet, "/slots/"+tt.date+"/availability", nil)
			req.SetPathValue("date", tt.date)
			rr := httptest.NewRecorder()

			ctrl.GetAvailability(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				assert.Equal(t, tt.date, tt.fake.lastDate)
				hours, ok := envelope.Data.([]any)
				require.True(t, ok)
				assert.Len(t, hours, 2)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestSlotController_BookSlot(t *testing.T) {
	confirmed := &domain.BookingResult{
		Confirmed: true, Date: "2025-06-01", Hour: "09:00", Quantity: 2, Remaining: 18,
	}
	soldOut := &domain.BookingResult{
		Confirmed: false, Date: "2025-06-01", Hour: "09:00", Quantity: 2, Remaining: 1,
	}

	tests := []struct {
		name          string
		body          string
		fake          *fakeSlotService
		noUserContext bool
		wantStatus    int
		wantCode      string
		wantQuantity  int
	}{
		{
			name:         "success",
			body:         `{"date":"2025-06-01","hour":"09:00","quantity":2}`,
			fake:         &fakeSlotService{bookResult: confirmed},
			wantStatus:   http.StatusOK,
			wantQuantity: 2,
		},
		{
			name:         "quantity defaults to one",
			body:         `{"date":"2025-06-01","hour":"09:00"}`,
			fake:         &fakeSlotService{bookResult: confirmed},
			wantStatus:   http.StatusOK,
			wantQuantity: 1,
		},
		{
			name:          "no user in context",
			body:          `{"date":"2025-06-01","hour":"09:00"}`,
			fake:          &fakeSlotService{},
			noUserContext: true,
			wantStatus:    http.StatusUnauthorized,
			wantCode:      helpers.ErrCodeUnauthorized,
		},
		{
			name:       "invalid json",
			body:       `{invalid`,
			fake:       &fakeSlotService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "missing date and hour",
			body:       `{"quantity":1}`,
			fake:       &fakeSlotService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "negative quantity",
			body:       `{"date":"2025-06-01","hour":"09:00","quantity":-1}`,
			fake:       &fakeSlotService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "invalid date",
			body:       `{"date":"2025-6-1","hour":"09:00"}`,
			fake:       &fakeSlotService{bookErr: domain.ErrInvalidDateFormat},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeInvalidDate,
		},
		{
			name:       "invalid hour",
			body:       `{"date":"2025-06-01","hour":"08:00"}`,
			fake:       &fakeSlotService{bookErr: domain.ErrInvalidHour},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeInvalidHour,
		},
		{
			name:       "sold out",
			body:       `{"date":"2025-06-01","hour":"09:00","quantity":2}`,
			fake:       &fakeSlotService{bookResult: soldOut, bookErr: domain.ErrSoldOut},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeSoldOut,
		},
		{
			name:       "storage unavailable",
			body:       `{"date":"2025-06-01","hour":"09:00"}`,
			fake:       &fakeSlotService{bookErr: domain.ErrUnavailable},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   helpers.ErrCodeUnavailable,
		},
		{
			name:       "unexpected error",
			body:       `{"date":"2025-06-01","hour":"09:00"}`,
			fake:       &fakeSlotService{bookErr: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewSlotController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodPost, "/slots/bookings", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if !tt.noUserContext {
				req = req.WithContext(middleware.SetIdentity(req.Context(), "user-123", domain.RoleFarmer))
			}
			rr := httptest.NewRecorder()

			ctrl.BookSlot(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))

			switch tt.wantStatus {
			case http.StatusOK:
				require.Nil(t, envelope.Error)
				assert.Equal(t, tt.wantQuantity, tt.fake.lastQuantity)
				data, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var result domain.BookingResult
				require.NoError(t, json.Unmarshal(data, &result))
				assert.True(t, result.Confirmed)
			case http.StatusConflict:
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				data, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var result domain.BookingResult
				require.NoError(t, json.Unmarshal(data, &result))
				assert.False(t, result.Confirmed)
				assert.Equal(t, 1, result.Remaining, "conflict response carries current remaining")
			default:
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
			}
		})
	}
}
