package services

import (
	"context"

	"github.com/nvera/donaescuela/internal/app/models"
	"github.com/nvera/donaescuela/internal/app/repositories"
)

// districtSearchLimit caps autocomplete responses
const districtSearchLimit = 20

// DistrictService handles district autocomplete lookups
type DistrictService struct {
	districtRepo *repositories.DistrictRepository
}

// NewDistrictService creates a new DistrictService
func NewDistrictService(districtRepo *repositories.DistrictRepository) *DistrictService {
	return &DistrictService{
		districtRepo: districtRepo,
	}
}

// Search returns districts whose name starts with the query,
// case-insensitively. An empty query lists the first page of districts.
func (s *DistrictService) Search(ctx context.Context, query string) ([]*models.District, error) {
	return s.districtRepo.SearchByPrefix(ctx, query, districtSearchLimit)
}
