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

// ListingFilter narrows listing queries
type ListingFilter struct {
	OwnerID  *int64
	SchoolID *int64
	Status   *models.ItemStatus
	District string
}

// ListingRepository handles database operations for listings and their
// items
type ListingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(db *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const listingColumns = `l.id, l.owner_id, l.school_id, l.institute_id, l.name, l.note, l.status,
	l.latitude, l.longitude, l.deleted, l.deleted_at, l.created_at`

func scanListing(row pgx.Row) (*models.Listing, error) {
	var listing models.Listing
	err := row.Scan(
		&listing.ID,
		&listing.OwnerID,
		&listing.SchoolID,
		&listing.InstituteID,
		&listing.Name,
		&listing.Note,
		&listing.Status,
		&listing.Latitude,
		&listing.Longitude,
		&listing.Deleted,
		&listing.DeletedAt,
		&listing.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func scanListingItem(row pgx.Row) (*models.ListingItem, error) {
	var item models.ListingItem
	err := row.Scan(
		&item.ID,
		&item.ListingID,
		&item.Article,
		&item.Category,
		&item.Ingredient,
		&item.Quantity,
		&item.Note,
		&item.Status,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateTx inserts a listing and all of its items inside a transaction.
// Both the listing and every item start out as 'pendiente'.
func (r *ListingRepository) CreateTx(ctx context.Context, tx pgx.Tx, listing *models.Listing) error {
	listing.Status = models.ItemPending

	err := tx.QueryRow(ctx, `
		INSERT INTO listings (owner_id, school_id, institute_id, name, note, status, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		listing.OwnerID, listing.SchoolID, listing.InstituteID, listing.Name, listing.Note,
		listing.Status, listing.Latitude, listing.Longitude,
	).Scan(&listing.ID, &listing.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating listing: %w", err)
	}

	for _, item := range listing.Items {
		item.ListingID = listing.ID
		item.Status = models.ItemPending
		err := tx.QueryRow(ctx, `
			INSERT INTO listing_items (listing_id, article, category, ingredient, quantity, note, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`,
			item.ListingID, item.Article, item.Category, item.Ingredient,
			item.Quantity, item.Note, item.Status,
		).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error creating listing item: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a non-deleted listing with its items
func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*models.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings l WHERE l.id = $1 AND l.deleted = false`, listingColumns)

	listing, err := scanListing(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("error retrieving listing: %w", err)
	}

	items, err := r.GetItemsByListingID(ctx, id)
	if err != nil {
		return nil, err
	}
	listing.Items = items

	return listing, nil
}

// GetItemsByListingID retrieves all items of a listing
func (r *ListingRepository) GetItemsByListingID(ctx context.Context, listingID int64) ([]*models.ListingItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, listing_id, article, category, ingredient, quantity, note, status, created_at, updated_at
		FROM listing_items
		WHERE listing_id = $1
		ORDER BY id`, listingID)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}
	defer rows.Close()

	var items []*models.ListingItem
	for rows.Next() {
		item, err := scanListingItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// GetItemByID retrieves a single listing item
func (r *ListingRepository) GetItemByID(ctx context.Context, id int64) (*models.ListingItem, error) {
	item, err := scanListingItem(r.db.QueryRow(ctx, `
		SELECT id, listing_id, article, category, ingredient, quantity, note, status, created_at, updated_at
		FROM listing_items
		WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrListingItemNotFound
		}
		return nil, fmt.Errorf("error retrieving listing item: %w", err)
	}

	return item, nil
}

// GetItemByIDTx retrieves a listing item inside a transaction, locking
// the row so concurrent workflow transitions serialize on it.
func (r *ListingRepository) GetItemByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*models.ListingItem, error) {
	item, err := scanListingItem(tx.QueryRow(ctx, `
		SELECT id, listing_id, article, category, ingredient, quantity, note, status, created_at, updated_at
		FROM listing_items
		WHERE id = $1
		FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrListingItemNotFound
		}
		return nil, fmt.Errorf("error retrieving listing item: %w", err)
	}

	return item, nil
}

// List retrieves non-deleted listings matching the filter, newest first
func (r *ListingRepository) List(ctx context.Context, filter ListingFilter, offset, limit uint64) ([]*models.Listing, int64, error) {
	base := squirrel.And{squirrel.Eq{"l.deleted": false}}
	if filter.OwnerID != nil {
		base = append(base, squirrel.Eq{"l.owner_id": *filter.OwnerID})
	}
	if filter.SchoolID != nil {
		base = append(base, squirrel.Eq{"l.school_id": *filter.SchoolID})
	}
	if filter.Status != nil {
		base = append(base, squirrel.Eq{"l.status": *filter.Status})
	}
	if filter.District != "" {
		base = append(base, squirrel.Eq{"s.district": filter.District})
	}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("listings l").
		Join("schools s ON s.id = l.school_id").
		Where(base).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count listings query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting listings: %w", err)
	}

	sql, args, err := r.sb.Select(listingColumns).
		From("listings l").
		Join("schools s ON s.id = l.school_id").
		Where(base).
		OrderBy("l.created_at DESC").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list listings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing listings: %w", err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, 0, err
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, listing := range listings {
		items, err := r.GetItemsByListingID(ctx, listing.ID)
		if err != nil {
			return nil, 0, err
		}
		listing.Items = items
	}

	return listings, total, nil
}

// ListOpenWithCoordinates retrieves all open listings that carry a
// location, as candidates for the distance filter. Listings without
// coordinates can never appear in nearby results.
func (r *ListingRepository) ListOpenWithCoordinates(ctx context.Context) ([]*models.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM listings l
		WHERE l.deleted = false
		  AND l.status = $1
		  AND l.latitude IS NOT NULL
		  AND l.longitude IS NOT NULL
		ORDER BY l.created_at DESC`, listingColumns)

	rows, err := r.db.Query(ctx, query, models.ItemPending)
	if err != nil {
		return nil, fmt.Errorf("error listing open listings: %w", err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}

// Update updates a listing's editable fields
func (r *ListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	sql, args, err := r.sb.Update("listings").
		Set("name", listing.Name).
		Set("note", listing.Note).
		Set("latitude", listing.Latitude).
		Set("longitude", listing.Longitude).
		Where(squirrel.Eq{"id": listing.ID, "deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update listing query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("listingID", listing.ID).Msg("Error executing update listing query")
		return fmt.Errorf("error updating listing: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrListingNotFound
	}

	return nil
}

// SoftDelete marks a listing as deleted without removing the row
func (r *ListingRepository) SoftDelete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE listings SET deleted = true, deleted_at = $1
		WHERE id = $2 AND deleted = false`,
		time.Now(), id)
	if err != nil {
		return fmt.Errorf("error deleting listing: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrListingNotFound
	}

	return nil
}

// UpdateItemStatusTx moves an item between statuses with a conditional
// update. It reports false when the item was not in the expected status,
// which means another transaction transitioned it first.
func (r *ListingRepository) UpdateItemStatusTx(ctx context.Context, tx pgx.Tx, itemID int64, from, to models.ItemStatus) (bool, error) {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE listing_items SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4`,
		to, time.Now(), itemID, from)
	if err != nil {
		return false, fmt.Errorf("error updating item status: %w", err)
	}

	return cmdTag.RowsAffected() == 1, nil
}

// UpdateStatusTx moves a listing between statuses with a conditional
// update, same contract as UpdateItemStatusTx.
func (r *ListingRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, listingID int64, from, to models.ItemStatus) (bool, error) {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE listings SET status = $1
		WHERE id = $2 AND status = $3 AND deleted = false`,
		to, listingID, from)
	if err != nil {
		return false, fmt.Errorf("error updating listing status: %w", err)
	}

	return cmdTag.RowsAffected() == 1, nil
}

// CountItemsNotInStatusTx counts a listing's items that are not in the
// given status. A zero count against 'concretado' means the listing can
// be closed.
func (r *ListingRepository) CountItemsNotInStatusTx(ctx context.Context, tx pgx.Tx, listingID int64, status models.ItemStatus) (int64, error) {
	var count int64
	err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM listing_items
		WHERE listing_id = $1 AND status != $2`,
		listingID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting listing items: %w", err)
	}
	return count, nil
}

// CountItemsInStatusTx counts a listing's items in the given status
func (r *ListingRepository) CountItemsInStatusTx(ctx context.Context, tx pgx.Tx, listingID int64, status models.ItemStatus) (int64, error) {
	var count int64
	err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM listing_items
		WHERE listing_id = $1 AND status = $2`,
		listingID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting listing items: %w", err)
	}
	return count, nil
}
