package dto

import (
	"time"

	"github.com/nvera/donaescuela/internal/app/models"
)

// MatchResponse represents a match record
type MatchResponse struct {
	ID               int64      `json:"id"`
	DonorID          int64      `json:"donorId"`
	RepresentativeID int64      `json:"representativeId"`
	ListingID        int64      `json:"listingId"`
	ItemID           int64      `json:"itemId"`
	SchoolID         int64      `json:"schoolId"`
	InstituteID      int64      `json:"instituteId"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	ClosedAt         *time.Time `json:"closedAt,omitempty"`
}

// FromMatch converts a models.Match to a MatchResponse
func FromMatch(m *models.Match) MatchResponse {
	if m == nil {
		return MatchResponse{}
	}
	return MatchResponse{
		ID:               m.ID,
		DonorID:          m.DonorID,
		RepresentativeID: m.RepresentativeID,
		ListingID:        m.ListingID,
		ItemID:           m.ItemID,
		SchoolID:         m.SchoolID,
		InstituteID:      m.InstituteID,
		Status:           string(m.Status),
		CreatedAt:        m.CreatedAt,
		ClosedAt:         m.ClosedAt,
	}
}

// DonationResponse represents an immutable donation record
type DonationResponse struct {
	ID          int64     `json:"id"`
	MatchID     int64     `json:"matchId"`
	ListingID   int64     `json:"listingId"`
	ItemID      int64     `json:"itemId"`
	SchoolID    int64     `json:"schoolId"`
	InstituteID int64     `json:"instituteId"`
	DonorID     int64     `json:"donorId"`
	FulfilledAt time.Time `json:"fulfilledAt"`
}

// FromDonation converts a models.Donation to a DonationResponse
func FromDonation(d *models.Donation) DonationResponse {
	if d == nil {
		return DonationResponse{}
	}
	return DonationResponse{
		ID:          d.ID,
		MatchID:     d.MatchID,
		ListingID:   d.ListingID,
		ItemID:      d.ItemID,
		SchoolID:    d.SchoolID,
		InstituteID: d.InstituteID,
		DonorID:     d.DonorID,
		FulfilledAt: d.FulfilledAt,
	}
}
