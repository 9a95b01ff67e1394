package controllers

import (
	"log/slog"
	"net/http"

	"pacsbooking/internal/delivery/http/helpers"
	"pacsbooking/internal/domain"
)

type AdminController struct {
	Logger      *slog.Logger
	UserRepo    domain.UserRepository
	RequestRepo domain.ServiceRequestRepository
}

func NewAdminController(logger *slog.Logger, userRepo domain.UserRepository, requestRepo domain.ServiceRequestRepository) *AdminController {
	return &AdminController{
		Logger:      logger,
		UserRepo:    userRepo,
		RequestRepo: requestRepo,
	}
}

// ListRequests godoc
// @Summary List queued service requests (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/requests [get]
func (c *AdminController) ListRequests(w http.ResponseWriter, r *http.Request) {
	p := helpers.ParsePagination(r)
	reqs, total, err := c.RequestRepo.List(r.Context(), p)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]any{
		"requests": reqs,
		"meta":     helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// ListUsers godoc
// @Summary List registered users (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	p := helpers.ParsePagination(r)
	users, total, err := c.UserRepo.List(r.Context(), p)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]any{
		"users": users,
		"meta":  helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}
