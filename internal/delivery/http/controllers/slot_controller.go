package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"pacsbooking/internal/delivery/http/helpers"
	"pacsbooking/internal/delivery/http/middleware"
	"pacsbooking/internal/domain"
)

type SlotController struct {
	Logger  *slog.Logger
	Service domain.SlotService
}

func NewSlotController(logger *slog.Logger, svc domain.SlotService) *SlotController {
	return &SlotController{
		Logger:  logger,
		Service: svc,
	}
}

// AvailabilitySuccessResponse is the success envelope for GET /slots/{date}/availability.
type AvailabilitySuccessResponse struct {
	Data  []domain.HourAvailability `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// GetAvailability godoc
// @Summary Get slot availability for a date
// @Description Returns remaining pickup capacity for every schedule hour of the date, in schedule order. Dates never booked before report full capacity.
// @Tags slots
// @Produce json
// @Param date path string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} controllers.AvailabilitySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_date"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots/{date}/availability [get]
func (c *SlotController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")

	availability, err := c.Service.GetAvailability(r.Context(), date)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateFormat) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInvalidDate, err.Error())
			return
		}
		if errors.Is(err, domain.ErrUnavailable) {
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "slot storage unavailable, try again")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, availability)
}

// BookSlotRequest is the request body for POST /slots/bookings.
type BookSlotRequest struct {
	Date     string `json:"date"`
	Hour     string `json:"hour"`
	Quantity int    `json:"quantity"`
}

// Validate implements helpers.Validator. A missing quantity defaults to 1;
// date and hour contents are validated by the slot service.
func (r *BookSlotRequest) Validate() []string {
	var errs []string
	if r.Date == "" {
		errs = append(errs, "date is required")
	}
	if r.Hour == "" {
		errs = append(errs, "hour is required")
	}
	if r.Quantity < 0 {
		errs = append(errs, "quantity must be positive")
	}
	if r.Quantity == 0 {
		r.Quantity = 1
	}
	return errs
}

// BookSlotSuccessResponse is the success envelope for POST /slots/bookings.
type BookSlotSuccessResponse struct {
	Data  *domain.BookingResult `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// BookSlot godoc
// @Summary Book pickup slot capacity
// @Description Atomically reserves quantity units of the (date, hour) slot. When the slot cannot hold the quantity, responds 409 sold_out and reports the current remaining capacity.
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.BookSlotRequest true "Booking request (quantity defaults to 1)"
// @Success 200 {object} controllers.BookSlotSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_date, invalid_hour, or bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: sold_out; data carries remaining"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /slots/bookings [post]
func (c *SlotController) BookSlot(w http.ResponseWriter, r *http.Request) {
	var req BookSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	result, err := c.Service.BookSlot(r.Context(), req.Date, req.Hour, req.Quantity)
	if err != nil {
		c.writeBookingError(w, r, result, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

func (c *SlotController) writeBookingError(w http.ResponseWriter, r *http.Request, result *domain.BookingResult, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDateFormat):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInvalidDate, err.Error())
	case errors.Is(err, domain.ErrInvalidHour):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInvalidHour, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrSoldOut):
		helpers.WriteJSONErrorData(w, http.StatusConflict, helpers.ErrCodeSoldOut, "slot is sold out, choose another hour", result)
	case errors.Is(err, domain.ErrUnavailable):
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "slot storage unavailable, try again")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
