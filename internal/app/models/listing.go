package models

import "time"

// Listing represents a school's request for donated items ('listings'
// table, the original "pedido"). Soft-deleted, never hard-deleted.
type Listing struct {
	ID          int64      `json:"id" db:"id"`
	OwnerID     int64      `json:"ownerId" db:"owner_id"` // creating schoolRep user
	SchoolID    int64      `json:"schoolId" db:"school_id"`
	InstituteID int64      `json:"instituteId" db:"institute_id"`
	Name        string     `json:"name" db:"name"`
	Note        string     `json:"note,omitempty" db:"note"`
	Status      ItemStatus `json:"status" db:"status"`
	Latitude    *float64   `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64   `json:"longitude,omitempty" db:"longitude"`
	Deleted     bool       `json:"-" db:"deleted"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`

	Items []*ListingItem `json:"items,omitempty"` // Relation, no db tag
}

// HasCoordinates reports whether the listing carries a usable location
// for distance filtering.
func (l *Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// ListingItem is one requested article within a listing ('listing_items'
// table, the original "articulo").
type ListingItem struct {
	ID         int64      `json:"id" db:"id"`
	ListingID  int64      `json:"listingId" db:"listing_id"`
	Article    string     `json:"article" db:"article"`
	Category   string     `json:"category" db:"category"`
	Ingredient string     `json:"ingredient,omitempty" db:"ingredient"`
	Quantity   int        `json:"quantity" db:"quantity"`
	Note       string     `json:"note,omitempty" db:"note"`
	Status     ItemStatus `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}
