package models

import "time"

// Donation is the immutable record of a fulfilled match ('donations'
// table). Rows are appended exactly once, at fulfillment, and never
// updated afterwards.
type Donation struct {
	ID          int64     `json:"id" db:"id"`
	MatchID     int64     `json:"matchId" db:"match_id"`
	ListingID   int64     `json:"listingId" db:"listing_id"`
	ItemID      int64     `json:"itemId" db:"item_id"`
	SchoolID    int64     `json:"schoolId" db:"school_id"`
	InstituteID int64     `json:"instituteId" db:"institute_id"`
	DonorID     int64     `json:"donorId" db:"donor_id"`
	FulfilledAt time.Time `json:"fulfilledAt" db:"fulfilled_at"`
}
