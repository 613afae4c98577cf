package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nvera/donaescuela/internal/app/models"
)

// DistrictRepository handles database operations for the district lookup
type DistrictRepository struct {
	db *pgxpool.Pool
}

// NewDistrictRepository creates a new district repository
func NewDistrictRepository(db *pgxpool.Pool) *DistrictRepository {
	return &DistrictRepository{
		db: db,
	}
}

// SearchByPrefix returns districts whose lowercased name starts with the
// given prefix. An empty prefix returns the full list up to limit.
func (r *DistrictRepository) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]*models.District, error) {
	if limit < 1 {
		limit = 20
	}

	query := `
		SELECT id, name, name_lower, department
		FROM districts
		WHERE name_lower LIKE $1 || '%'
		ORDER BY name_lower
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, strings.ToLower(prefix), limit)
	if err != nil {
		return nil, fmt.Errorf("error searching districts: %w", err)
	}
	defer rows.Close()

	var districts []*models.District
	for rows.Next() {
		var district models.District
		if err := rows.Scan(
			&district.ID,
			&district.Name,
			&district.NameLower,
			&district.Department,
		); err != nil {
			return nil, err
		}
		districts = append(districts, &district)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return districts, nil
}

// Count returns the number of district rows
func (r *DistrictRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM districts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting districts: %w", err)
	}
	return count, nil
}

// CreateBatch inserts districts, normalizing the lowercase search column
func (r *DistrictRepository) CreateBatch(ctx context.Context, districts []*models.District) error {
	for _, district := range districts {
		_, err := r.db.Exec(ctx, `
			INSERT INTO districts (name, name_lower, department)
			VALUES ($1, $2, $3)
			ON CONFLICT (name_lower, department) DO NOTHING`,
			district.Name, strings.ToLower(district.Name), district.Department)
		if err != nil {
			return fmt.Errorf("error inserting district %q: %w", district.Name, err)
		}
	}
	return nil
}
