package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pacsbooking/internal/domain"
)

type profileService struct {
	userRepo domain.UserRepository
}

func NewProfileService(userRepo domain.UserRepository) domain.ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, update *domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Email != nil {
		user.Email = strings.TrimSpace(strings.ToLower(*update.Email))
	}
	if update.Village != nil {
		user.Village = strings.TrimSpace(*update.Village)
	}
	if update.District != nil {
		user.District = strings.TrimSpace(*update.District)
	}
	if update.CenterID != nil {
		user.CenterID = strings.TrimSpace(*update.CenterID)
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
