package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"
	"pacsbooking/internal/domain"
)

const (
	otpLength     = 6
	otpTTL        = 5 * time.Minute
	otpBcryptCost = 10
	tokenExpiry   = 30 * 24 * time.Hour
)

var phoneRegexp = regexp.MustCompile(`^\d{10}$`)

type authService struct {
	userRepo      domain.UserRepository
	loginCodeRepo domain.LoginCodeRepository
	tokenIssuer   domain.TokenIssuer
}

// NewAuthService creates the passwordless phone-login service.
func NewAuthService(
	userRepo domain.UserRepository,
	loginCodeRepo domain.LoginCodeRepository,
	tokenIssuer domain.TokenIssuer,
) domain.AuthService {
	return &authService{
		userRepo:      userRepo,
		loginCodeRepo: loginCodeRepo,
		tokenIssuer:   tokenIssuer,
	}
}

func (s *authService) SendOTP(ctx context.Context, phone string) (*domain.OTPResult, error) {
	if !phoneRegexp.MatchString(phone) {
		return nil, domain.ErrInvalidPhone
	}

	code, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), otpBcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash otp: %w", err)
	}
	if err := s.loginCodeRepo.Create(ctx, phone, string(hash), time.Now().Add(otpTTL)); err != nil {
		return nil, fmt.Errorf("store otp: %w", err)
	}
	return &domain.OTPResult{Code: code, TTL: otpTTL}, nil
}

func (s *authService) VerifyOTP(ctx context.Context, phone, code string) (string, *domain.User, error) {
	if !phoneRegexp.MatchString(phone) {
		return "", nil, domain.ErrInvalidPhone
	}

	stored, err := s.loginCodeRepo.GetLatest(ctx, phone)
	if err != nil {
		if err == domain.ErrNotFound {
			return "", nil, domain.ErrOTPNotSent
		}
		return "", nil, fmt.Errorf("get login code: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.CodeHash), []byte(code)) != nil {
		return "", nil, domain.ErrOTPInvalid
	}
	// Single use.
	if err := s.loginCodeRepo.Delete(ctx, stored.ID); err != nil {
		return "", nil, fmt.Errorf("consume login code: %w", err)
	}

	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err == domain.ErrNotFound {
		now := time.Now()
		user = &domain.User{Phone: phone, Role: domain.RoleFarmer, CreatedAt: now, UpdatedAt: now}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return "", nil, fmt.Errorf("create user: %w", err)
		}
	} else if err != nil {
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.Phone, user.Role, tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func generateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpLength, n.Int64()), nil
}
