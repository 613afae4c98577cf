package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"donante@example.com"`           // User's email address
	Password    string     `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	Name        string     `json:"name" db:"name" example:"Maria Benitez"`                   // Display name
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"donor"`                  // User's role (donor, schoolRep or mec)
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                   // Whether the user account is active
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)

	// Donor profile fields. Representatives carry no location of their
	// own; their schools do.
	Address    *string  `json:"address,omitempty" db:"address"`
	District   *string  `json:"district,omitempty" db:"district"`
	Department *string  `json:"department,omitempty" db:"department"`
	Latitude   *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude  *float64 `json:"longitude,omitempty" db:"longitude"`
}

// HasCoordinates reports whether the donor registered a usable location.
func (u *User) HasCoordinates() bool {
	return u.Latitude != nil && u.Longitude != nil
}
