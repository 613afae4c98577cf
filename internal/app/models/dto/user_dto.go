package dto

import "github.com/nvera/donaescuela/internal/app/models"

// UpdateProfileRequest represents profile update data. Role is not part
// of the request: it is immutable after registration. The location
// fields only have meaning for donors and feed the distance filter.
type UpdateProfileRequest struct {
	Name       string   `json:"name" binding:"required"`
	Address    *string  `json:"address,omitempty"`
	District   *string  `json:"district,omitempty"`
	Department *string  `json:"department,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty" binding:"omitempty,min=-90,max=90"`
	Longitude  *float64 `json:"longitude,omitempty" binding:"omitempty,min=-180,max=180"`
}

// ProfileResponse represents the signed-in user's full profile
type ProfileResponse struct {
	ID         int64    `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	RoleType   string   `json:"roleType"`
	Address    *string  `json:"address,omitempty"`
	District   *string  `json:"district,omitempty"`
	Department *string  `json:"department,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// FromUserProfile converts a models.User to a ProfileResponse
func FromUserProfile(u *models.User) ProfileResponse {
	if u == nil {
		return ProfileResponse{}
	}
	return ProfileResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		RoleType:   string(u.RoleType),
		Address:    u.Address,
		District:   u.District,
		Department: u.Department,
		Latitude:   u.Latitude,
		Longitude:  u.Longitude,
	}
}
