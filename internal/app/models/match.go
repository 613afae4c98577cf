package models

import "time"

// Match links one donor's commitment to one listing item ('matches'
// table). School and institute ids are denormalized onto the match the
// way the original data model stored them, so donation history stays
// readable without joins.
type Match struct {
	ID               int64       `json:"id" db:"id"`
	DonorID          int64       `json:"donorId" db:"donor_id"`
	RepresentativeID int64       `json:"representativeId" db:"representative_id"`
	ListingID        int64       `json:"listingId" db:"listing_id"`
	ItemID           int64       `json:"itemId" db:"item_id"`
	SchoolID         int64       `json:"schoolId" db:"school_id"`
	InstituteID      int64       `json:"instituteId" db:"institute_id"`
	Status           MatchStatus `json:"status" db:"status"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
	ClosedAt         *time.Time  `json:"closedAt,omitempty" db:"closed_at"` // fulfill or cancel timestamp
}
