package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"pacsbooking/internal/delivery/http/helpers"
	"pacsbooking/internal/delivery/http/middleware"
	"pacsbooking/internal/domain"
)

type DirectoryController struct {
	Logger  *slog.Logger
	Service domain.DirectoryService
}

func NewDirectoryController(logger *slog.Logger, svc domain.DirectoryService) *DirectoryController {
	return &DirectoryController{
		Logger:  logger,
		Service: svc,
	}
}

// ListCenters godoc
// @Summary List PACS service centers
// @Tags directory
// @Produce json
// @Param district query string false "Filter by district"
// @Success 200 {object} helpers.APIResponse
// @Router /pacs [get]
func (c *DirectoryController) ListCenters(w http.ResponseWriter, r *http.Request) {
	centers, err := c.Service.ListCenters(r.Context(), r.URL.Query().Get("district"))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, centers)
}

// ListEligibleSchemes godoc
// @Summary List schemes the authenticated farmer is eligible for
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Router /schemes/eligible [get]
func (c *DirectoryController) ListEligibleSchemes(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	schemes, err := c.Service.ListEligibleSchemes(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, schemes)
}

// SubmitRequestRequest is the request body for POST /requests.
type SubmitRequestRequest struct {
	Type          string `json:"type"`
	Item          string `json:"item"`
	Qty           int    `json:"qty"`
	PreferredDate string `json:"preferred_date"`
}

// Validate implements helpers.Validator.
func (r *SubmitRequestRequest) Validate() []string {
	var errs []string
	if r.Type == "" {
		errs = append(errs, "type is required")
	}
	if r.Qty < 0 {
		errs = append(errs, "qty must not be negative")
	}
	return errs
}

// SubmitRequest godoc
// @Summary Queue a fertilizer/seed/loan service request
// @Tags directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.SubmitRequestRequest true "Request"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /requests [post]
func (c *DirectoryController) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	created, err := c.Service.SubmitRequest(r.Context(), &domain.ServiceRequest{
		Type:          req.Type,
		UserID:        userID,
		Item:          req.Item,
		Qty:           req.Qty,
		PreferredDate: req.PreferredDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}
