package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/nvera/donaescuela/internal/app/auth"
	"github.com/nvera/donaescuela/internal/app/models"
	"github.com/nvera/donaescuela/internal/app/models/dto"
	"github.com/nvera/donaescuela/internal/app/repositories"
	"github.com/nvera/donaescuela/internal/db"
	"github.com/nvera/donaescuela/internal/pkg/apperrors"
)

// SchoolService handles school and institute management
type SchoolService struct {
	schoolRepo *repositories.SchoolRepository
	policy     *auth.Policy
	database   *db.PostgresDB
}

// NewSchoolService creates a new SchoolService
func NewSchoolService(schoolRepo *repositories.SchoolRepository, policy *auth.Policy, database *db.PostgresDB) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
		policy:     policy,
		database:   database,
	}
}

// Create registers a school with its institutes
func (s *SchoolService) Create(ctx context.Context, actor auth.Actor, req *dto.CreateSchoolRequest) (*models.School, error) {
	if err := s.policy.CanCreateSchool(actor); err != nil {
		return nil, err
	}

	school := &models.School{
		OwnerID:      actor.UserID,
		Name:         req.Name,
		Address:      req.Address,
		District:     req.District,
		Department:   req.Department,
		Neighborhood: req.Neighborhood,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}
	for _, inst := range req.Institutes {
		school.Institutes = append(school.Institutes, &models.Institute{
			Name:  inst.Name,
			Shift: inst.Shift,
		})
	}

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.schoolRepo.CreateTx(ctx, tx, school)
	})
	if err != nil {
		return nil, err
	}

	return school, nil
}

// GetByID retrieves a school with its institutes
func (s *SchoolService) GetByID(ctx context.Context, id int64) (*models.School, error) {
	return s.schoolRepo.GetByID(ctx, id)
}

// List retrieves schools. Representatives see their own schools;
// everyone else browses all non-deleted schools.
func (s *SchoolService) List(ctx context.Context, actor auth.Actor, district string, offset, limit uint64) ([]*models.School, int64, error) {
	var ownerID *int64
	if actor.Role == models.RoleSchoolRep {
		ownerID = &actor.UserID
	}
	return s.schoolRepo.List(ctx, ownerID, district, offset, limit)
}

// Update modifies a school's details
func (s *SchoolService) Update(ctx context.Context, actor auth.Actor, id int64, req *dto.UpdateSchoolRequest) (*models.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanManageSchool(actor, school); err != nil {
		return nil, err
	}

	school.Name = req.Name
	school.Address = req.Address
	school.District = req.District
	school.Department = req.Department
	school.Neighborhood = req.Neighborhood
	school.Latitude = req.Latitude
	school.Longitude = req.Longitude

	if err := s.schoolRepo.Update(ctx, school); err != nil {
		return nil, err
	}

	return school, nil
}

// Delete soft-deletes a school
func (s *SchoolService) Delete(ctx context.Context, actor auth.Actor, id int64) error {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.CanManageSchool(actor, school); err != nil {
		return err
	}

	return s.schoolRepo.SoftDelete(ctx, id)
}

// AddInstitute adds an institute to a school
func (s *SchoolService) AddInstitute(ctx context.Context, actor auth.Actor, schoolID int64, req *dto.CreateInstituteRequest) (*models.Institute, error) {
	school, err := s.schoolRepo.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanManageSchool(actor, school); err != nil {
		return nil, err
	}

	institute := &models.Institute{
		SchoolID: schoolID,
		Name:     req.Name,
		Shift:    req.Shift,
	}
	if err := s.schoolRepo.AddInstitute(ctx, institute); err != nil {
		return nil, err
	}

	return institute, nil
}

// DeleteInstitute removes an institute from a school
func (s *SchoolService) DeleteInstitute(ctx context.Context, actor auth.Actor, schoolID, instituteID int64) error {
	school, err := s.schoolRepo.GetByID(ctx, schoolID)
	if err != nil {
		return err
	}
	if err := s.policy.CanManageSchool(actor, school); err != nil {
		return err
	}

	institute, err := s.schoolRepo.GetInstituteByID(ctx, instituteID)
	if err != nil {
		return err
	}
	if institute.SchoolID != schoolID {
		return apperrors.ErrInstituteNotFound
	}

	return s.schoolRepo.DeleteInstitute(ctx, instituteID)
}
