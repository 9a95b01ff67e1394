package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidPhone = errors.New("phone must be a 10-digit number")
	ErrOTPNotSent   = errors.New("no code was sent to this phone")
	ErrOTPInvalid   = errors.New("code is invalid or expired")
)

// LoginCode is a single-use OTP issued to a phone number.
type LoginCode struct {
	ID        string
	Phone     string
	CodeHash  string
	ExpiresAt time.Time
}

// LoginCodeRepository defines storage operations for OTP login codes.
type LoginCodeRepository interface {
	Create(ctx context.Context, phone, codeHash string, expiresAt time.Time) error
	// GetLatest returns the newest unexpired code for the phone, or
	// ErrNotFound when none exists.
	GetLatest(ctx context.Context, phone string) (*LoginCode, error)
	// Delete removes a code after it has been consumed (or rejected).
	Delete(ctx context.Context, id string) error
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, phone, role string, expiry time.Duration) (string, error)
}

// TokenVerifier validates an access token and returns its subject and role.
type TokenVerifier interface {
	Verify(token string) (userID, role string, err error)
}

// OTPResult is returned by SendOTP. Code is only populated in demo mode,
// where no SMS gateway is configured.
type OTPResult struct {
	Code string
	TTL  time.Duration
}

// AuthService implements passwordless phone login: a short-lived OTP is
// issued per phone, and verifying it returns a signed access token,
// creating the user on first login.
type AuthService interface {
	SendOTP(ctx context.Context, phone string) (*OTPResult, error)
	VerifyOTP(ctx context.Context, phone, code string) (token string, user *User, err error)
}
