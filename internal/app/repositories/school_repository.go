package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nvera/donaescuela/internal/app/models"
	"github.com/nvera/donaescuela/internal/pkg/apperrors"
	"github.com/nvera/donaescuela/internal/pkg/logger"
)

// SchoolRepository handles database operations for schools and their
// institutes
type SchoolRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSchoolRepository creates a new SchoolRepository
func NewSchoolRepository(db *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const schoolColumns = `id, owner_id, name, address, district, department, neighborhood,
	latitude, longitude, deleted, deleted_at, created_at`

func scanSchool(row pgx.Row) (*models.School, error) {
	var school models.School
	err := row.Scan(
		&school.ID,
		&school.OwnerID,
		&school.Name,
		&school.Address,
		&school.District,
		&school.Department,
		&school.Neighborhood,
		&school.Latitude,
		&school.Longitude,
		&school.Deleted,
		&school.DeletedAt,
		&school.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &school, nil
}

// CreateTx inserts a school and its institutes inside a transaction, so
// a school never appears without the institutes it was registered with.
func (r *SchoolRepository) CreateTx(ctx context.Context, tx pgx.Tx, school *models.School) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO schools (owner_id, name, address, district, department, neighborhood, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		school.OwnerID, school.Name, school.Address, school.District, school.Department,
		school.Neighborhood, school.Latitude, school.Longitude,
	).Scan(&school.ID, &school.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating school: %w", err)
	}

	for _, institute := range school.Institutes {
		institute.SchoolID = school.ID
		if err := r.createInstitute(ctx, tx, institute); err != nil {
			return err
		}
	}

	return nil
}

func (r *SchoolRepository) createInstitute(ctx context.Context, run dbtx, institute *models.Institute) error {
	err := run.QueryRow(ctx, `
		INSERT INTO institutes (school_id, name, shift)
		VALUES ($1, $2, $3)
		RETURNING id`,
		institute.SchoolID, institute.Name, institute.Shift,
	).Scan(&institute.ID)
	if err != nil {
		return fmt.Errorf("error creating institute: %w", err)
	}
	return nil
}

// GetByID retrieves a non-deleted school with its institutes
func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (*models.School, error) {
	query := fmt.Sprintf(`SELECT %s FROM schools WHERE id = $1 AND deleted = false`, schoolColumns)

	school, err := scanSchool(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("error retrieving school: %w", err)
	}

	institutes, err := r.GetInstitutesBySchoolID(ctx, id)
	if err != nil {
		return nil, err
	}
	school.Institutes = institutes

	return school, nil
}

// List retrieves non-deleted schools with optional owner and district
// filters, newest first.
func (r *SchoolRepository) List(ctx context.Context, ownerID *int64, district string, offset, limit uint64) ([]*models.School, int64, error) {
	base := squirrel.And{squirrel.Eq{"deleted": false}}
	if ownerID != nil {
		base = append(base, squirrel.Eq{"owner_id": *ownerID})
	}
	if district != "" {
		base = append(base, squirrel.Eq{"district": district})
	}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").From("schools").Where(base).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count schools query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting schools: %w", err)
	}

	sql, args, err := r.sb.Select(schoolColumns).
		From("schools").
		Where(base).
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list schools query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing schools: %w", err)
	}
	defer rows.Close()

	var schools []*models.School
	for rows.Next() {
		school, err := scanSchool(rows)
		if err != nil {
			return nil, 0, err
		}
		schools = append(schools, school)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, school := range schools {
		institutes, err := r.GetInstitutesBySchoolID(ctx, school.ID)
		if err != nil {
			return nil, 0, err
		}
		school.Institutes = institutes
	}

	return schools, total, nil
}

// Update updates a school's editable fields
func (r *SchoolRepository) Update(ctx context.Context, school *models.School) error {
	sql, args, err := r.sb.Update("schools").
		Set("name", school.Name).
		Set("address", school.Address).
		Set("district", school.District).
		Set("department", school.Department).
		Set("neighborhood", school.Neighborhood).
		Set("latitude", school.Latitude).
		Set("longitude", school.Longitude).
		Where(squirrel.Eq{"id": school.ID, "deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update school query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", school.ID).Msg("Error executing update school query")
		return fmt.Errorf("error updating school: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}

	return nil
}

// SoftDelete marks a school as deleted without removing the row
func (r *SchoolRepository) SoftDelete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE schools SET deleted = true, deleted_at = $1
		WHERE id = $2 AND deleted = false`,
		time.Now(), id)
	if err != nil {
		return fmt.Errorf("error deleting school: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}

	return nil
}

// GetInstitutesBySchoolID retrieves all institutes of a school
func (r *SchoolRepository) GetInstitutesBySchoolID(ctx context.Context, schoolID int64) ([]*models.Institute, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, school_id, name, shift
		FROM institutes
		WHERE school_id = $1
		ORDER BY id`, schoolID)
	if err != nil {
		return nil, fmt.Errorf("error listing institutes: %w", err)
	}
	defer rows.Close()

	var institutes []*models.Institute
	for rows.Next() {
		var institute models.Institute
		if err := rows.Scan(&institute.ID, &institute.SchoolID, &institute.Name, &institute.Shift); err != nil {
			return nil, err
		}
		institutes = append(institutes, &institute)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return institutes, nil
}

// GetInstituteByID retrieves a single institute
func (r *SchoolRepository) GetInstituteByID(ctx context.Context, id int64) (*models.Institute, error) {
	var institute models.Institute
	err := r.db.QueryRow(ctx, `
		SELECT id, school_id, name, shift
		FROM institutes
		WHERE id = $1`, id,
	).Scan(&institute.ID, &institute.SchoolID, &institute.Name, &institute.Shift)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstituteNotFound
		}
		return nil, fmt.Errorf("error retrieving institute: %w", err)
	}

	return &institute, nil
}

// AddInstitute adds an institute to an existing school
func (r *SchoolRepository) AddInstitute(ctx context.Context, institute *models.Institute) error {
	return r.createInstitute(ctx, r.db, institute)
}

// DeleteInstitute removes an institute from a school
func (r *SchoolRepository) DeleteInstitute(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM institutes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting institute: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstituteNotFound
	}
	return nil
}
