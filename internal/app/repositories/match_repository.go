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
	"github.com/nvera/donaescuela/internal/pkg/dberrors"
	"github.com/nvera/donaescuela/internal/pkg/logger"
)

// MatchRepository handles database operations for matches. All writes
// that participate in the workflow run inside a caller-supplied
// transaction.
type MatchRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMatchRepository creates a new MatchRepository
func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const matchColumns = `id, donor_id, representative_id, listing_id, item_id, school_id, institute_id,
	status, created_at, closed_at`

func scanMatch(row pgx.Row) (*models.Match, error) {
	var match models.Match
	err := row.Scan(
		&match.ID,
		&match.DonorID,
		&match.RepresentativeID,
		&match.ListingID,
		&match.ItemID,
		&match.SchoolID,
		&match.InstituteID,
		&match.Status,
		&match.CreatedAt,
		&match.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// CreateTx inserts a new commitment. The partial unique indexes turn a
// concurrent duplicate commitment or an already-accepted item into
// typed errors instead of a second row.
func (r *MatchRepository) CreateTx(ctx context.Context, tx pgx.Tx, match *models.Match) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO matches (donor_id, representative_id, listing_id, item_id, school_id, institute_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		match.DonorID, match.RepresentativeID, match.ListingID, match.ItemID,
		match.SchoolID, match.InstituteID, match.Status,
	).Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "matches_active_donor_item_idx") {
			return apperrors.ErrAlreadyCommitted
		}
		if dberrors.IsDuplicateConstraintError(err, "matches_accepted_item_idx") {
			return apperrors.ErrItemAlreadyMatched
		}
		logger.Error().Err(err).Int64("donorID", match.DonorID).Int64("itemID", match.ItemID).
			Msg("Error executing create match query")
		return fmt.Errorf("error creating match: %w", err)
	}

	return nil
}

// GetByID retrieves a match by ID
func (r *MatchRepository) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE id = $1`, matchColumns)

	match, err := scanMatch(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, fmt.Errorf("error retrieving match: %w", err)
	}

	return match, nil
}

// GetByIDTx retrieves a match inside a transaction, locking the row
func (r *MatchRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE id = $1 FOR UPDATE`, matchColumns)

	match, err := scanMatch(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, fmt.Errorf("error retrieving match: %w", err)
	}

	return match, nil
}

// UpdateStatusTx moves a match between statuses with a conditional
// update keyed on the expected current status. It reports false when the
// match was no longer in that status.
func (r *MatchRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, matchID int64, from, to models.MatchStatus, closedAt *time.Time) (bool, error) {
	sql, args, err := r.sb.Update("matches").
		Set("status", to).
		Set("closed_at", closedAt).
		Where(squirrel.Eq{"id": matchID, "status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build update match status query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error updating match status: %w", err)
	}

	return cmdTag.RowsAffected() == 1, nil
}

// RejectOthersByItemTx rejects every other pending commitment for an
// item. Called when one commitment is accepted.
func (r *MatchRepository) RejectOthersByItemTx(ctx context.Context, tx pgx.Tx, itemID, acceptedMatchID int64) (int64, error) {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE matches SET status = $1, closed_at = $2
		WHERE item_id = $3 AND id != $4 AND status = $5`,
		models.MatchRejected, time.Now(), itemID, acceptedMatchID, models.MatchCommitted)
	if err != nil {
		return 0, fmt.Errorf("error rejecting competing matches: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// HasActiveByItemTx reports whether the item still has any active match
// besides the one given.
func (r *MatchRepository) HasActiveByItemTx(ctx context.Context, tx pgx.Tx, itemID, excludeMatchID int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM matches
			WHERE item_id = $1 AND id != $2 AND status IN ($3, $4))`,
		itemID, excludeMatchID, models.MatchCommitted, models.MatchAccepted).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking active matches: %w", err)
	}

	return exists, nil
}

// ListByDonor retrieves a donor's matches, newest first
func (r *MatchRepository) ListByDonor(ctx context.Context, donorID int64, offset, limit uint64) ([]*models.Match, int64, error) {
	return r.list(ctx, squirrel.Eq{"donor_id": donorID}, offset, limit)
}

// ListByRepresentative retrieves the matches against a representative's
// listings, newest first.
func (r *MatchRepository) ListByRepresentative(ctx context.Context, representativeID int64, offset, limit uint64) ([]*models.Match, int64, error) {
	return r.list(ctx, squirrel.Eq{"representative_id": representativeID}, offset, limit)
}

// ListByItem retrieves all matches for a listing item, newest first
func (r *MatchRepository) ListByItem(ctx context.Context, itemID int64, offset, limit uint64) ([]*models.Match, int64, error) {
	return r.list(ctx, squirrel.Eq{"item_id": itemID}, offset, limit)
}

// ListAll retrieves all matches, newest first. MEC-only visibility.
func (r *MatchRepository) ListAll(ctx context.Context, offset, limit uint64) ([]*models.Match, int64, error) {
	return r.list(ctx, nil, offset, limit)
}

func (r *MatchRepository) list(ctx context.Context, where squirrel.Sqlizer, offset, limit uint64) ([]*models.Match, int64, error) {
	countQuery := r.sb.Select("COUNT(*)").From("matches")
	listQuery := r.sb.Select(matchColumns).From("matches")
	if where != nil {
		countQuery = countQuery.Where(where)
		listQuery = listQuery.Where(where)
	}

	countSql, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count matches query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting matches: %w", err)
	}

	sql, args, err := listQuery.
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list matches query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, 0, err
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return matches, total, nil
}
