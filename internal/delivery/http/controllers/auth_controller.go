package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"pacsbooking/internal/delivery/http/helpers"
	"pacsbooking/internal/domain"
)

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
	// RevealCode returns the OTP in the send-otp response. Demo/dev only;
	// production delivers codes out of band.
	RevealCode bool
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService, revealCode bool) *AuthController {
	return &AuthController{
		Logger:     logger,
		Service:    svc,
		RevealCode: revealCode,
	}
}

// SendOTPRequest is the request body for POST /auth/send-otp.
type SendOTPRequest struct {
	Phone string `json:"phone"`
}

// Validate implements helpers.Validator.
func (r *SendOTPRequest) Validate() []string {
	if r.Phone == "" {
		return []string{"phone is required"}
	}
	return nil
}

// SendOTPData is the payload for a successful send-otp call.
type SendOTPData struct {
	OK   bool   `json:"ok"`
	TTL  int    `json:"ttl"`
	Code string `json:"code,omitempty"`
}

// SendOTP godoc
// @Summary Send a login OTP to a phone number
// @Tags auth
// @Accept json
// @Produce json
// @Param body body controllers.SendOTPRequest true "Phone (10 digits)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /auth/send-otp [post]
func (c *AuthController) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req SendOTPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Service.SendOTP(r.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPhone) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	data := &SendOTPData{OK: true, TTL: int(result.TTL.Seconds())}
	if c.RevealCode {
		data.Code = result.Code
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, data)
}

// VerifyOTPRequest is the request body for POST /auth/verify-otp.
type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// Validate implements helpers.Validator.
func (r *VerifyOTPRequest) Validate() []string {
	var errs []string
	if r.Phone == "" {
		errs = append(errs, "phone is required")
	}
	if r.Code == "" {
		errs = append(errs, "code is required")
	}
	return errs
}

// VerifyOTPData is the payload for a successful login.
type VerifyOTPData struct {
	OK    bool         `json:"ok"`
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// VerifyOTP godoc
// @Summary Verify an OTP and log in
// @Description Consumes the code, creates the user on first login, and returns a Bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body controllers.VerifyOTPRequest true "Phone and code"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: otp_not_sent or otp_invalid"
// @Router /auth/verify-otp [post]
func (c *AuthController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	token, user, err := c.Service.VerifyOTP(r.Context(), req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPhone):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrOTPNotSent):
			helpers.WriteJSONError(w, http.StatusBadRequest, "otp_not_sent", err.Error())
		case errors.Is(err, domain.ErrOTPInvalid):
			helpers.WriteJSONError(w, http.StatusBadRequest, "otp_invalid", err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &VerifyOTPData{OK: true, Token: token, User: user})
}
