package dto

import (
	"time"

	"github.com/nvera/donaescuela/internal/app/models"
)

// CreateListingRequest represents listing creation data. Items are
// created together with the listing, the way representatives fill the
// request form.
type CreateListingRequest struct {
	SchoolID    int64                      `json:"schoolId" binding:"required,min=1"`
	InstituteID int64                      `json:"instituteId" binding:"required,min=1"`
	Name        string                     `json:"name" binding:"required"`
	Note        string                     `json:"note"`
	Latitude    *float64                   `json:"latitude,omitempty" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64                   `json:"longitude,omitempty" binding:"omitempty,min=-180,max=180"`
	Items       []CreateListingItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateListingItemRequest represents one requested article
type CreateListingItemRequest struct {
	Article    string `json:"article" binding:"required"`
	Category   string `json:"category" binding:"required"`
	Ingredient string `json:"ingredient"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	Note       string `json:"note"`
}

// UpdateListingRequest represents listing update data. Item statuses are
// owned by the match workflow and cannot be edited here.
type UpdateListingRequest struct {
	Name      string   `json:"name" binding:"required"`
	Note      string   `json:"note"`
	Latitude  *float64 `json:"latitude,omitempty" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude,omitempty" binding:"omitempty,min=-180,max=180"`
}

// ListingResponse represents a listing with its items
type ListingResponse struct {
	ID          int64                 `json:"id"`
	SchoolID    int64                 `json:"schoolId"`
	InstituteID int64                 `json:"instituteId"`
	Name        string                `json:"name"`
	Note        string                `json:"note,omitempty"`
	Status      string                `json:"status"`
	Latitude    *float64              `json:"latitude,omitempty"`
	Longitude   *float64              `json:"longitude,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	Items       []ListingItemResponse `json:"items"`
}

// ListingItemResponse represents one requested article
type ListingItemResponse struct {
	ID         int64     `json:"id"`
	ListingID  int64     `json:"listingId"`
	Article    string    `json:"article"`
	Category   string    `json:"category"`
	Ingredient string    `json:"ingredient,omitempty"`
	Quantity   int       `json:"quantity"`
	Note       string    `json:"note,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NearbyListingResponse is a listing annotated with the driving distance
// from the donor's registered location.
type NearbyListingResponse struct {
	Listing        ListingResponse `json:"listing"`
	DistanceMeters float64         `json:"distanceMeters"`
}

// FromListing converts a models.Listing to a ListingResponse
func FromListing(l *models.Listing) ListingResponse {
	if l == nil {
		return ListingResponse{}
	}
	resp := ListingResponse{
		ID:          l.ID,
		SchoolID:    l.SchoolID,
		InstituteID: l.InstituteID,
		Name:        l.Name,
		Note:        l.Note,
		Status:      string(l.Status),
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		CreatedAt:   l.CreatedAt,
		Items:       make([]ListingItemResponse, 0, len(l.Items)),
	}
	for _, item := range l.Items {
		resp.Items = append(resp.Items, FromListingItem(item))
	}
	return resp
}

// FromListingItem converts a models.ListingItem to a ListingItemResponse
func FromListingItem(item *models.ListingItem) ListingItemResponse {
	if item == nil {
		return ListingItemResponse{}
	}
	return ListingItemResponse{
		ID:         item.ID,
		ListingID:  item.ListingID,
		Article:    item.Article,
		Category:   item.Category,
		Ingredient: item.Ingredient,
		Quantity:   item.Quantity,
		Note:       item.Note,
		Status:     string(item.Status),
		CreatedAt:  item.CreatedAt,
	}
}
