package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nvera/donaescuela/internal/app/auth"
	"github.com/nvera/donaescuela/internal/app/models"
	"github.com/nvera/donaescuela/internal/app/repositories"
	"github.com/nvera/donaescuela/internal/db"
	"github.com/nvera/donaescuela/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// MatchService drives the donation workflow. Every transition runs
// inside one transaction: the match row is locked first, the transition
// is validated against the status tables, and every multi-entity write
// uses conditional updates so a concurrent transition rolls the whole
// operation back.
type MatchService struct {
	matchRepo          *repositories.MatchRepository
	listingRepo        *repositories.ListingRepository
	donationRepo       *repositories.DonationRepository
	policy             *auth.Policy
	database           *db.PostgresDB
	revertItemOnReject bool
	logger             zerolog.Logger
}

// NewMatchService creates a new MatchService
func NewMatchService(
	matchRepo *repositories.MatchRepository,
	listingRepo *repositories.ListingRepository,
	donationRepo *repositories.DonationRepository,
	policy *auth.Policy,
	database *db.PostgresDB,
	revertItemOnReject bool,
	logger zerolog.Logger,
) *MatchService {
	return &MatchService{
		matchRepo:          matchRepo,
		listingRepo:        listingRepo,
		donationRepo:       donationRepo,
		policy:             policy,
		database:           database,
		revertItemOnReject: revertItemOnReject,
		logger:             logger,
	}
}

// Commit records a donor's commitment to a listing item. The item must
// still be open; several donors may hold a commitment for the same item
// at once, the representative's accept decides between them.
func (s *MatchService) Commit(ctx context.Context, actor auth.Actor, listingID, itemID int64) (*models.Match, error) {
	if err := s.policy.CanCommit(actor); err != nil {
		return nil, err
	}

	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	match := &models.Match{
		DonorID:          actor.UserID,
		RepresentativeID: listing.OwnerID,
		ListingID:        listing.ID,
		ItemID:           itemID,
		SchoolID:         listing.SchoolID,
		InstituteID:      listing.InstituteID,
		Status:           models.MatchCommitted,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		item, err := s.listingRepo.GetItemByIDTx(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if item.ListingID != listing.ID {
			return apperrors.ErrListingItemNotFound
		}
		if item.Status != models.ItemPending {
			return apperrors.ErrItemClosed
		}

		return s.matchRepo.CreateTx(ctx, tx, match)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("matchID", match.ID).Int64("donorID", actor.UserID).
		Int64("itemID", itemID).Msg("Donor committed to item")

	return match, nil
}

// Accept moves a commitment to match_aceptado and the item (and its
// listing) to en_proceso. Other pending commitments for the item are
// rejected: first accept wins.
func (s *MatchService) Accept(ctx context.Context, actor auth.Actor, matchID int64) (*models.Match, error) {
	var match *models.Match

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		match, err = s.matchRepo.GetByIDTx(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if err := s.policy.CanDecideMatch(actor, match); err != nil {
			return err
		}
		if !match.Status.CanTransitionTo(models.MatchAccepted) {
			return apperrors.ErrInvalidTransition
		}

		ok, err := s.matchRepo.UpdateStatusTx(ctx, tx, match.ID, models.MatchCommitted, models.MatchAccepted, nil)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrInvalidTransition
		}

		// The conditional update doubles as the exclusivity check: a
		// concurrently accepted item is no longer pendiente.
		ok, err = s.listingRepo.UpdateItemStatusTx(ctx, tx, match.ItemID, models.ItemPending, models.ItemInProgress)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrItemAlreadyMatched
		}

		if _, err := s.listingRepo.UpdateStatusTx(ctx, tx, match.ListingID, models.ItemPending, models.ItemInProgress); err != nil {
			return err
		}

		rejected, err := s.matchRepo.RejectOthersByItemTx(ctx, tx, match.ItemID, match.ID)
		if err != nil {
			return err
		}
		if rejected > 0 {
			s.logger.Info().Int64("matchID", match.ID).Int64("rejectedCount", rejected).
				Msg("Rejected competing commitments")
		}

		match.Status = models.MatchAccepted
		return nil
	})
	if err != nil {
		return nil, err
	}

	return match, nil
}

// Reject declines a pending commitment. When reversion is enabled the
// item is put back to pendiente if this rejection leaves it without any
// active match.
func (s *MatchService) Reject(ctx context.Context, actor auth.Actor, matchID int64) (*models.Match, error) {
	var match *models.Match

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		match, err = s.matchRepo.GetByIDTx(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if err := s.policy.CanDecideMatch(actor, match); err != nil {
			return err
		}
		if !match.Status.CanTransitionTo(models.MatchRejected) {
			return apperrors.ErrInvalidTransition
		}

		now := time.Now()
		ok, err := s.matchRepo.UpdateStatusTx(ctx, tx, match.ID, models.MatchCommitted, models.MatchRejected, &now)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrInvalidTransition
		}

		if s.revertItemOnReject {
			active, err := s.matchRepo.HasActiveByItemTx(ctx, tx, match.ItemID, match.ID)
			if err != nil {
				return err
			}
			if !active {
				// Best effort: only applies when the item had moved on.
				if _, err := s.listingRepo.UpdateItemStatusTx(ctx, tx, match.ItemID, models.ItemInProgress, models.ItemPending); err != nil {
					return err
				}
			}
		}

		match.Status = models.MatchRejected
		match.ClosedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return match, nil
}

// Fulfill closes an accepted match as concretado, moves the item to its
// terminal status, closes the listing once every item is concretado and
// records exactly one donation.
func (s *MatchService) Fulfill(ctx context.Context, actor auth.Actor, matchID int64) (*models.Match, error) {
	var match *models.Match

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		match, err = s.matchRepo.GetByIDTx(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if err := s.policy.CanDecideMatch(actor, match); err != nil {
			return err
		}
		if match.Status == models.MatchFulfilled {
			return apperrors.ErrAlreadyFulfilled
		}
		if !match.Status.CanTransitionTo(models.MatchFulfilled) {
			return apperrors.ErrInvalidTransition
		}

		now := time.Now()
		ok, err := s.matchRepo.UpdateStatusTx(ctx, tx, match.ID, models.MatchAccepted, models.MatchFulfilled, &now)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrInvalidTransition
		}

		ok, err = s.listingRepo.UpdateItemStatusTx(ctx, tx, match.ItemID, models.ItemInProgress, models.ItemFulfilled)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrInvalidTransition
		}

		remaining, err := s.listingRepo.CountItemsNotInStatusTx(ctx, tx, match.ListingID, models.ItemFulfilled)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if _, err := s.listingRepo.UpdateStatusTx(ctx, tx, match.ListingID, models.ItemInProgress, models.ItemFulfilled); err != nil {
				return err
			}
		}

		donation := &models.Donation{
			MatchID:     match.ID,
			ListingID:   match.ListingID,
			ItemID:      match.ItemID,
			SchoolID:    match.SchoolID,
			InstituteID: match.InstituteID,
			DonorID:     match.DonorID,
		}
		if err := s.donationRepo.CreateTx(ctx, tx, donation); err != nil {
			return err
		}

		match.Status = models.MatchFulfilled
		match.ClosedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("matchID", match.ID).Int64("donorID", match.DonorID).
		Msg("Match fulfilled, donation recorded")

	return match, nil
}

// Cancel aborts an accepted match. The item reopens and the listing
// reverts to pendiente when no other item remains en_proceso.
func (s *MatchService) Cancel(ctx context.Context, actor auth.Actor, matchID int64) (*models.Match, error) {
	var match *models.Match

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		match, err = s.matchRepo.GetByIDTx(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if err := s.policy.CanDecideMatch(actor, match); err != nil {
			return err
		}
		if !match.Status.CanTransitionTo(models.MatchCancelled) {
			return apperrors.ErrInvalidTransition
		}

		now := time.Now()
		ok, err := s.matchRepo.UpdateStatusTx(ctx, tx, match.ID, match.Status, models.MatchCancelled, &now)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrInvalidTransition
		}

		if match.Status == models.MatchAccepted {
			ok, err = s.listingRepo.UpdateItemStatusTx(ctx, tx, match.ItemID, models.ItemInProgress, models.ItemPending)
			if err != nil {
				return err
			}
			if !ok {
				return apperrors.ErrInvalidTransition
			}

			inProgress, err := s.listingRepo.CountItemsInStatusTx(ctx, tx, match.ListingID, models.ItemInProgress)
			if err != nil {
				return err
			}
			if inProgress == 0 {
				if _, err := s.listingRepo.UpdateStatusTx(ctx, tx, match.ListingID, models.ItemInProgress, models.ItemPending); err != nil {
					return err
				}
			}
		}

		match.Status = models.MatchCancelled
		match.ClosedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return match, nil
}

// Withdraw lets the committing donor pull back a commitment the
// representative has not decided yet.
func (s *MatchService) Withdraw(ctx context.Context, actor auth.Actor, matchID int64) error {
	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		match, err := s.matchRepo.GetByIDTx(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if err := s.policy.CanWithdrawMatch(actor, match); err != nil {
			return err
		}
		if match.Status != models.MatchCommitted {
			return apperrors.ErrInvalidTransition
		}

		now := time.Now()
		ok, err := s.matchRepo.UpdateStatusTx(ctx, tx, match.ID, models.MatchCommitted, models.MatchCancelled, &now)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrInvalidTransition
		}

		return nil
	})
}

// GetByID retrieves a match visible to the actor
func (s *MatchService) GetByID(ctx context.Context, actor auth.Actor, id int64) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanViewMatch(actor, match); err != nil {
		return nil, err
	}
	return match, nil
}

// ListForActor retrieves the matches visible to the actor: donors see
// their commitments, representatives the matches against their listings,
// mec everything.
func (s *MatchService) ListForActor(ctx context.Context, actor auth.Actor, offset, limit uint64) ([]*models.Match, int64, error) {
	switch actor.Role {
	case models.RoleDonor:
		return s.matchRepo.ListByDonor(ctx, actor.UserID, offset, limit)
	case models.RoleSchoolRep:
		return s.matchRepo.ListByRepresentative(ctx, actor.UserID, offset, limit)
	case models.RoleMEC:
		return s.matchRepo.ListAll(ctx, offset, limit)
	}
	return nil, 0, apperrors.NewForbiddenError("unknown role")
}
