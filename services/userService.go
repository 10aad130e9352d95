package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/prostore-api/models"
	"github.com/Kariqs/prostore-api/repositories"
	"gorm.io/datatypes"
)

type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindUserByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateAddress(ctx context.Context, userID uint, address models.ShippingAddress) error {
	return s.update(ctx, userID, map[string]any{"address": datatypes.NewJSONType(address)})
}

func (s *UserService) UpdatePaymentMethod(ctx context.Context, userID uint, method string) error {
	return s.update(ctx, userID, map[string]any{"payment_method": method})
}

// UpdateProfile changes the display name. The email address is fixed.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, form models.ProfileForm) error {
	return s.update(ctx, userID, map[string]any{"name": form.Name})
}

func (s *UserService) update(ctx context.Context, userID uint, fields map[string]any) error {
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.UpdateUser(ctx, userID, fields); err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}
