package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx, so repository
// helpers can run inside or outside a transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository     *UserRepository
	TokenRepository    *TokenRepository
	DistrictRepository *DistrictRepository
	SchoolRepository   *SchoolRepository
	ListingRepository  *ListingRepository
	MatchRepository    *MatchRepository
	DonationRepository *DonationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db),
		TokenRepository:    NewTokenRepository(db),
		DistrictRepository: NewDistrictRepository(db),
		SchoolRepository:   NewSchoolRepository(db),
		ListingRepository:  NewListingRepository(db),
		MatchRepository:    NewMatchRepository(db),
		DonationRepository: NewDonationRepository(db),
	}
}
