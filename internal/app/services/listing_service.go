package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/nvera/donaescuela/internal/app/auth"
	"github.com/nvera/donaescuela/internal/app/models"
	"github.com/nvera/donaescuela/internal/app/models/dto"
	"github.com/nvera/donaescuela/internal/app/repositories"
	"github.com/nvera/donaescuela/internal/db"
	"github.com/nvera/donaescuela/internal/pkg/apperrors"
	"github.com/nvera/donaescuela/internal/pkg/geo"
)

// NearbyListing pairs a listing with its resolved driving distance
type NearbyListing struct {
	Listing        *models.Listing
	DistanceMeters float64
}

// ListingService handles listings, their items and the nearby filter
type ListingService struct {
	listingRepo *repositories.ListingRepository
	schoolRepo  *repositories.SchoolRepository
	userRepo    *repositories.UserRepository
	policy      *auth.Policy
	database    *db.PostgresDB
	geoFilter   *geo.Filter
}

// NewListingService creates a new ListingService
func NewListingService(
	listingRepo *repositories.ListingRepository,
	schoolRepo *repositories.SchoolRepository,
	userRepo *repositories.UserRepository,
	policy *auth.Policy,
	database *db.PostgresDB,
	geoFilter *geo.Filter,
) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		schoolRepo:  schoolRepo,
		userRepo:    userRepo,
		policy:      policy,
		database:    database,
		geoFilter:   geoFilter,
	}
}

// Create publishes a listing with its items for one of the caller's
// schools. When the request carries no coordinates the school's are
// inherited, so the listing stays reachable by the distance filter.
func (s *ListingService) Create(ctx context.Context, actor auth.Actor, req *dto.CreateListingRequest) (*models.Listing, error) {
	school, err := s.schoolRepo.GetByID(ctx, req.SchoolID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanCreateListing(actor, school); err != nil {
		return nil, err
	}

	institute, err := s.schoolRepo.GetInstituteByID(ctx, req.InstituteID)
	if err != nil {
		return nil, err
	}
	if institute.SchoolID != school.ID {
		return nil, apperrors.ErrInstituteNotFound
	}

	listing := &models.Listing{
		OwnerID:     actor.UserID,
		SchoolID:    req.SchoolID,
		InstituteID: req.InstituteID,
		Name:        req.Name,
		Note:        req.Note,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if listing.Latitude == nil || listing.Longitude == nil {
		listing.Latitude = school.Latitude
		listing.Longitude = school.Longitude
	}
	for _, item := range req.Items {
		listing.Items = append(listing.Items, &models.ListingItem{
			Article:    item.Article,
			Category:   item.Category,
			Ingredient: item.Ingredient,
			Quantity:   item.Quantity,
			Note:       item.Note,
		})
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.listingRepo.CreateTx(ctx, tx, listing)
	})
	if err != nil {
		return nil, err
	}

	return listing, nil
}

// GetByID retrieves a listing with its items
func (s *ListingService) GetByID(ctx context.Context, id int64) (*models.Listing, error) {
	return s.listingRepo.GetByID(ctx, id)
}

// GetItem retrieves a single listing item
func (s *ListingService) GetItem(ctx context.Context, listingID, itemID int64) (*models.ListingItem, error) {
	item, err := s.listingRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.ListingID != listingID {
		return nil, apperrors.ErrListingItemNotFound
	}
	return item, nil
}

// List retrieves listings matching the filter
func (s *ListingService) List(ctx context.Context, filter repositories.ListingFilter, offset, limit uint64) ([]*models.Listing, int64, error) {
	return s.listingRepo.List(ctx, filter, offset, limit)
}

// Update modifies a listing's editable fields
func (s *ListingService) Update(ctx context.Context, actor auth.Actor, id int64, req *dto.UpdateListingRequest) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanManageListing(actor, listing); err != nil {
		return nil, err
	}

	listing.Name = req.Name
	listing.Note = req.Note
	if req.Latitude != nil && req.Longitude != nil {
		listing.Latitude = req.Latitude
		listing.Longitude = req.Longitude
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// Delete soft-deletes a listing
func (s *ListingService) Delete(ctx context.Context, actor auth.Actor, id int64) error {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.CanManageListing(actor, listing); err != nil {
		return err
	}

	return s.listingRepo.SoftDelete(ctx, id)
}

// Nearby returns the open listings within radiusKm driving kilometers of
// the donor's registered location, nearest first. The donor must have
// coordinates on their profile.
func (s *ListingService) Nearby(ctx context.Context, actor auth.Actor, radiusKm int) ([]NearbyListing, error) {
	if err := s.policy.CanCommit(actor); err != nil {
		return nil, err
	}
	if !geo.ValidRadius(radiusKm) {
		return nil, fmt.Errorf("%w: radius must be one of %v km", apperrors.ErrValidationFailed, geo.RadiusOptions)
	}

	donor, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !donor.HasCoordinates() {
		return nil, apperrors.NewBadRequestError("profile has no registered location")
	}
	origin := geo.Point{Latitude: *donor.Latitude, Longitude: *donor.Longitude}

	listings, err := s.listingRepo.ListOpenWithCoordinates(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Listing, len(listings))
	candidates := make([]geo.Candidate, 0, len(listings))
	for _, listing := range listings {
		byID[listing.ID] = listing
		candidates = append(candidates, geo.Candidate{
			ID:    listing.ID,
			Point: geo.Point{Latitude: *listing.Latitude, Longitude: *listing.Longitude},
		})
	}

	results := s.geoFilter.WithinRadius(ctx, origin, candidates, radiusKm)

	nearby := make([]NearbyListing, 0, len(results))
	for _, res := range results {
		listing := byID[res.ID]
		items, err := s.listingRepo.GetItemsByListingID(ctx, listing.ID)
		if err != nil {
			return nil, err
		}
		listing.Items = items
		nearby = append(nearby, NearbyListing{Listing: listing, DistanceMeters: res.DistanceMeters})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceMeters < nearby[j].DistanceMeters
	})

	return nearby, nil
}
