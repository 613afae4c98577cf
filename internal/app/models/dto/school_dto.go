package dto

import "github.com/nvera/donaescuela/internal/app/models"

// CreateSchoolRequest represents school creation data
type CreateSchoolRequest struct {
	Name         string                   `json:"name" binding:"required"`
	Address      string                   `json:"address" binding:"required"`
	District     string                   `json:"district" binding:"required"`
	Department   string                   `json:"department" binding:"required"`
	Neighborhood string                   `json:"neighborhood"`
	Latitude     *float64                 `json:"latitude,omitempty" binding:"omitempty,min=-90,max=90"`
	Longitude    *float64                 `json:"longitude,omitempty" binding:"omitempty,min=-180,max=180"`
	Institutes   []CreateInstituteRequest `json:"institutes" binding:"omitempty,dive"`
}

// UpdateSchoolRequest represents school update data
type UpdateSchoolRequest struct {
	Name         string   `json:"name" binding:"required"`
	Address      string   `json:"address" binding:"required"`
	District     string   `json:"district" binding:"required"`
	Department   string   `json:"department" binding:"required"`
	Neighborhood string   `json:"neighborhood"`
	Latitude     *float64 `json:"latitude,omitempty" binding:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude,omitempty" binding:"omitempty,min=-180,max=180"`
}

// CreateInstituteRequest represents institute creation data
type CreateInstituteRequest struct {
	Name  string `json:"name" binding:"required"`
	Shift string `json:"shift"`
}

// SchoolResponse represents a school with its institutes
type SchoolResponse struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Address      string              `json:"address"`
	District     string              `json:"district"`
	Department   string              `json:"department"`
	Neighborhood string              `json:"neighborhood,omitempty"`
	Latitude     *float64            `json:"latitude,omitempty"`
	Longitude    *float64            `json:"longitude,omitempty"`
	Institutes   []InstituteResponse `json:"institutes"`
}

// InstituteResponse represents an institute
type InstituteResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Shift string `json:"shift,omitempty"`
}

// FromSchool converts a models.School to a SchoolResponse
func FromSchool(s *models.School) SchoolResponse {
	if s == nil {
		return SchoolResponse{}
	}
	resp := SchoolResponse{
		ID:           s.ID,
		Name:         s.Name,
		Address:      s.Address,
		District:     s.District,
		Department:   s.Department,
		Neighborhood: s.Neighborhood,
		Latitude:     s.Latitude,
		Longitude:    s.Longitude,
		Institutes:   make([]InstituteResponse, 0, len(s.Institutes)),
	}
	for _, inst := range s.Institutes {
		resp.Institutes = append(resp.Institutes, InstituteResponse{
			ID:    inst.ID,
			Name:  inst.Name,
			Shift: inst.Shift,
		})
	}
	return resp
}
