package dto

import "github.com/nvera/donaescuela/internal/app/models"

// DistrictResponse represents a district lookup row for the
// autocomplete select.
type DistrictResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// FromDistrict converts a models.District to a DistrictResponse
func FromDistrict(d *models.District) DistrictResponse {
	if d == nil {
		return DistrictResponse{}
	}
	return DistrictResponse{
		ID:         d.ID,
		Name:       d.Name,
		Department: d.Department,
	}
}
