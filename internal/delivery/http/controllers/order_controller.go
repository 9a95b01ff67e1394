package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"pacsbooking/internal/delivery/http/helpers"
	"pacsbooking/internal/delivery/http/middleware"
	"pacsbooking/internal/domain"
)

type OrderController struct {
	Logger  *slog.Logger
	Service domain.OrderService
}

func NewOrderController(logger *slog.Logger, svc domain.OrderService) *OrderController {
	return &OrderController{
		Logger:  logger,
		Service: svc,
	}
}

// PlaceOrderRequest is the request body for POST /orders.
type PlaceOrderRequest struct {
	Kind       string             `json:"kind"`
	Items      []domain.OrderItem `json:"items"`
	Date       string             `json:"date"`
	Hour       string             `json:"hour"`
	CenterID   string             `json:"center_id"`
	CenterName string             `json:"center_name"`
}

// Validate implements helpers.Validator.
func (r *PlaceOrderRequest) Validate() []string {
	var errs []string
	if len(r.Items) == 0 {
		errs = append(errs, "items is required")
	}
	if r.Date == "" {
		errs = append(errs, "date is required")
	}
	if r.Hour == "" {
		errs = append(errs, "hour is required")
	}
	return errs
}

// PlaceOrderSuccessResponse is the success envelope for POST /orders.
type PlaceOrderSuccessResponse struct {
	Data  *domain.Order     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PlaceOrder godoc
// @Summary Place a pickup order
// @Description Reserves one unit of the chosen slot and creates the order with a pickup token. When the slot is sold out no order is created.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.PlaceOrderRequest true "Order"
// @Success 201 {object} controllers.PlaceOrderSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_date, invalid_hour, or bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: sold_out"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /orders [post]
func (c *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	order := &domain.Order{
		UserID:     userID,
		Kind:       req.Kind,
		Items:      req.Items,
		Date:       req.Date,
		Hour:       req.Hour,
		CenterID:   req.CenterID,
		CenterName: req.CenterName,
	}
	created, err := c.Service.PlaceOrder(r.Context(), order)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDateFormat):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInvalidDate, err.Error())
		case errors.Is(err, domain.ErrInvalidHour):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInvalidHour, err.Error())
		case errors.Is(err, domain.ErrEmptyOrder), errors.Is(err, domain.ErrInvalidQuantity):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrSoldOut):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeSoldOut, "slot is sold out, choose another hour")
		case errors.Is(err, domain.ErrUnavailable):
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "slot storage unavailable, try again")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListMyOrdersSuccessResponse is the success envelope for GET /orders.
type ListMyOrdersSuccessResponse struct {
	Data  *OrderListData    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// OrderListData is the paginated order list payload.
type OrderListData struct {
	Orders []*domain.Order        `json:"orders"`
	Meta   helpers.PaginationMeta `json:"meta"`
}

// ListMyOrders godoc
// @Summary List the authenticated user's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListMyOrdersSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /orders [get]
func (c *OrderController) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	p := helpers.ParsePagination(r)
	orders, total, err := c.Service.ListMyOrders(r.Context(), userID, p)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &OrderListData{
		Orders: orders,
		Meta:   helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}
