package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pacsbooking/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestProfileService_GetProfile(t *testing.T) {
	ctx := context.Background()
	userRepo := newMockUserRepository()
	userRepo.add(&domain.User{ID: "user-1", Phone: "9876543210", Name: "Asha"})
	svc := NewProfileService(userRepo)

	t.Run("success", func(t *testing.T) {
		user, err := svc.GetProfile(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Asha", user.Name)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GetProfile(ctx, "user-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("nil fields are left unchanged", func(t *testing.T) {
		userRepo := newMockUserRepository()
		userRepo.add(&domain.User{ID: "user-1", Phone: "9876543210", Name: "Asha", Village: "Rampur"})
		svc := NewProfileService(userRepo)

		user, err := svc.UpdateProfile(ctx, "user-1", &domain.ProfileUpdate{
			District: strPtr("Nashik"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Asha", user.Name)
		assert.Equal(t, "Rampur", user.Village)
		assert.Equal(t, "Nashik", user.District)
		assert.False(t, user.UpdatedAt.IsZero())
	})

	t.Run("fields are trimmed and email lowercased", func(t *testing.T) {
		userRepo := newMockUserRepository()
		userRepo.add(&domain.User{ID: "user-1", Phone: "9876543210"})
		svc := NewProfileService(userRepo)

		user, err := svc.UpdateProfile(ctx, "user-1", &domain.ProfileUpdate{
			Name:  strPtr("  Asha Patil "),
			Email: strPtr(" Asha@Example.COM "),
		})
		require.NoError(t, err)
		assert.Equal(t, "Asha Patil", user.Name)
		assert.Equal(t, "asha@example.com", user.Email)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewProfileService(newMockUserRepository())
		_, err := svc.UpdateProfile(ctx, "user-missing", &domain.ProfileUpdate{Name: strPtr("X")})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
