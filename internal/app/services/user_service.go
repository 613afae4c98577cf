package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nvera/donaescuela/internal/app/models"
	"github.com/nvera/donaescuela/internal/app/models/dto"
	"github.com/nvera/donaescuela/internal/app/repositories"
	"github.com/nvera/donaescuela/internal/pkg/apperrors"
)

// UserService handles profile operations
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetProfile retrieves the signed-in user's profile
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile updates name and donor location fields. The role is
// never updatable; representatives cannot acquire donor coordinates.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	user.Name = strings.TrimSpace(req.Name)

	if user.RoleType == models.RoleDonor {
		// Latitude and longitude only make sense together.
		if (req.Latitude == nil) != (req.Longitude == nil) {
			return nil, fmt.Errorf("%w: latitude and longitude must be provided together", apperrors.ErrValidationFailed)
		}
		user.Address = req.Address
		user.District = req.District
		user.Department = req.Department
		user.Latitude = req.Latitude
		user.Longitude = req.Longitude
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
