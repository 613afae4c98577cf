package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nvera/donaescuela/internal/app/models"
	"github.com/nvera/donaescuela/internal/pkg/apperrors"
	"github.com/nvera/donaescuela/internal/pkg/dberrors"
)

// DonationRepository handles database operations for the append-only
// donation record
type DonationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDonationRepository creates a new DonationRepository
func NewDonationRepository(db *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const donationColumns = `id, match_id, listing_id, item_id, school_id, institute_id, donor_id, fulfilled_at`

func scanDonation(row pgx.Row) (*models.Donation, error) {
	var donation models.Donation
	err := row.Scan(
		&donation.ID,
		&donation.MatchID,
		&donation.ListingID,
		&donation.ItemID,
		&donation.SchoolID,
		&donation.InstituteID,
		&donation.DonorID,
		&donation.FulfilledAt,
	)
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// CreateTx records a fulfilled match. The unique index on match_id makes
// fulfillment idempotent at the database level: a second insert for the
// same match fails instead of double-counting the donation.
func (r *DonationRepository) CreateTx(ctx context.Context, tx pgx.Tx, donation *models.Donation) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO donations (match_id, listing_id, item_id, school_id, institute_id, donor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, fulfilled_at`,
		donation.MatchID, donation.ListingID, donation.ItemID,
		donation.SchoolID, donation.InstituteID, donation.DonorID,
	).Scan(&donation.ID, &donation.FulfilledAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "donations_match_id_key") {
			return apperrors.ErrAlreadyFulfilled
		}
		return fmt.Errorf("error recording donation: %w", err)
	}

	return nil
}

// GetByID retrieves a donation by ID
func (r *DonationRepository) GetByID(ctx context.Context, id int64) (*models.Donation, error) {
	query := fmt.Sprintf(`SELECT %s FROM donations WHERE id = $1`, donationColumns)

	donation, err := scanDonation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving donation: %w", err)
	}

	return donation, nil
}

// ListByDonor retrieves a donor's donation history, newest first
func (r *DonationRepository) ListByDonor(ctx context.Context, donorID int64, offset, limit uint64) ([]*models.Donation, int64, error) {
	return r.list(ctx, squirrel.Eq{"donor_id": donorID}, offset, limit)
}

// ListBySchool retrieves the donations received by a school, newest
// first.
func (r *DonationRepository) ListBySchool(ctx context.Context, schoolID int64, offset, limit uint64) ([]*models.Donation, int64, error) {
	return r.list(ctx, squirrel.Eq{"school_id": schoolID}, offset, limit)
}

// ListBySchoolOwner retrieves the donations received across all schools
// of a representative, newest first.
func (r *DonationRepository) ListBySchoolOwner(ctx context.Context, ownerID int64, offset, limit uint64) ([]*models.Donation, int64, error) {
	return r.list(ctx,
		squirrel.Expr("school_id IN (SELECT id FROM schools WHERE owner_id = ?)", ownerID),
		offset, limit)
}

// ListAll retrieves every donation, newest first. MEC-only visibility.
func (r *DonationRepository) ListAll(ctx context.Context, offset, limit uint64) ([]*models.Donation, int64, error) {
	return r.list(ctx, nil, offset, limit)
}

func (r *DonationRepository) list(ctx context.Context, where squirrel.Sqlizer, offset, limit uint64) ([]*models.Donation, int64, error) {
	countQuery := r.sb.Select("COUNT(*)").From("donations")
	listQuery := r.sb.Select(donationColumns).From("donations")
	if where != nil {
		countQuery = countQuery.Where(where)
		listQuery = listQuery.Where(where)
	}

	countSql, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count donations query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting donations: %w", err)
	}

	sql, args, err := listQuery.
		OrderBy("fulfilled_at DESC").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list donations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing donations: %w", err)
	}
	defer rows.Close()

	var donations []*models.Donation
	for rows.Next() {
		donation, err := scanDonation(rows)
		if err != nil {
			return nil, 0, err
		}
		donations = append(donations, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}
