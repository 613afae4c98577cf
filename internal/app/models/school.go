package models

import "time"

// School represents a school owned by a representative, based on the
// 'schools' table. Schools are never hard-deleted; Deleted plus DeletedAt
// mark removal.
type School struct {
	ID           int64      `json:"id" db:"id"`
	OwnerID      int64      `json:"ownerId" db:"owner_id"` // owning schoolRep user
	Name         string     `json:"name" db:"name"`
	Address      string     `json:"address" db:"address"`
	District     string     `json:"district" db:"district"`
	Department   string     `json:"department" db:"department"`
	Neighborhood string     `json:"neighborhood,omitempty" db:"neighborhood"`
	Latitude     *float64   `json:"latitude,omitempty" db:"latitude"`
	Longitude    *float64   `json:"longitude,omitempty" db:"longitude"`
	Deleted      bool       `json:"-" db:"deleted"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`

	Institutes []*Institute `json:"institutes,omitempty"` // Relation, no db tag
}

// Institute is a teaching institution hosted at a school ('institutes'
// table, child of schools).
type Institute struct {
	ID       int64  `json:"id" db:"id"`
	SchoolID int64  `json:"schoolId" db:"school_id"`
	Name     string `json:"name" db:"name"`
	Shift    string `json:"shift,omitempty" db:"shift"` // morning/afternoon/night, free text
}
