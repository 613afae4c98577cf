package services

import (
	"context"

	"github.com/nvera/donaescuela/internal/app/auth"
	"github.com/nvera/donaescuela/internal/app/models"
	"github.com/nvera/donaescuela/internal/app/repositories"
	"github.com/nvera/donaescuela/internal/pkg/apperrors"
)

// DonationService reads the append-only donation record
type DonationService struct {
	donationRepo *repositories.DonationRepository
}

// NewDonationService creates a new DonationService
func NewDonationService(donationRepo *repositories.DonationRepository) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
	}
}

// ListForActor retrieves the donations visible to the actor: donors see
// their own history, representatives what their schools received, mec
// everything.
func (s *DonationService) ListForActor(ctx context.Context, actor auth.Actor, offset, limit uint64) ([]*models.Donation, int64, error) {
	switch actor.Role {
	case models.RoleDonor:
		return s.donationRepo.ListByDonor(ctx, actor.UserID, offset, limit)
	case models.RoleSchoolRep:
		return s.donationRepo.ListBySchoolOwner(ctx, actor.UserID, offset, limit)
	case models.RoleMEC:
		return s.donationRepo.ListAll(ctx, offset, limit)
	}
	return nil, 0, apperrors.NewForbiddenError("unknown role")
}
