package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nvera/donaescuela/internal/app/models"
	"github.com/nvera/donaescuela/internal/app/models/dto"
	"github.com/nvera/donaescuela/internal/app/repositories"
	"github.com/nvera/donaescuela/internal/app/services"
	"github.com/nvera/donaescuela/internal/middleware"
	"github.com/nvera/donaescuela/internal/pkg/helpers"
)

// ListingController handles listings, their items and the nearby filter
type ListingController struct {
	listingService *services.ListingService
}

// NewListingController creates a new ListingController
func NewListingController(listingService *services.ListingService) *ListingController {
	return &ListingController{
		listingService: listingService,
	}
}

// Create publishes a listing
// @Summary Publish a listing
// @Description Creates a listing with its requested items for one of the caller's schools
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateListingRequest true "Listing information"
// @Success 201 {object} dto.APIResponse{data=dto.ListingResponse} "Listing created"
// @Failure 400 {object} dto.ErrorResponse "Invalid listing data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "School or institute not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /listings [post]
func (c *ListingController) Create(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	listing, err := c.listingService.Create(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromListing(listing),
		Timestamp: time.Now(),
	})
}

// GetByID retrieves a listing
// @Summary Get listing by ID
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Success 200 {object} dto.APIResponse{data=dto.ListingResponse} "Listing"
// @Failure 404 {object} dto.ErrorResponse "Listing not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /listings/{id} [get]
func (c *ListingController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	listing, err := c.listingService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromListing(listing),
		Timestamp: time.Now(),
	})
}

// GetItem retrieves one item of a listing
// @Summary Get listing item
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Param itemId path int true "Item ID"
// @Success 200 {object} dto.APIResponse{data=dto.ListingItemResponse} "Item"
// @Failure 404 {object} dto.ErrorResponse "Listing or item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /listings/{id}/items/{itemId} [get]
func (c *ListingController) GetItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(ctx, "itemId")
	if !ok {
		return
	}

	item, err := c.listingService.GetItem(ctx, id, itemID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromListingItem(item),
		Timestamp: time.Now(),
	})
}

// List retrieves listings
// @Summary List listings
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param schoolId query int false "Filter by school"
// @Param status query string false "Filter by status (pendiente, en_proceso, concretado)"
// @Param district query string false "Filter by school district"
// @Param mine query bool false "Only the caller's listings"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Listings"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /listings [get]
func (c *ListingController) List(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var filter repositories.ListingFilter

	if schoolIDStr := ctx.Query("schoolId"); schoolIDStr != "" {
		schoolID, err := strconv.ParseInt(schoolIDStr, 10, 64)
		if err != nil || schoolID <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid schoolId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.SchoolID = &schoolID
	}

	if statusStr := ctx.Query("status"); statusStr != "" {
		status := models.ItemStatus(statusStr)
		if !status.Valid() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.Status = &status
	}

	filter.District = ctx.Query("district")

	if ctx.Query("mine") == "true" {
		filter.OwnerID = &actor.UserID
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	listings, total, err := c.listingService.List(ctx, filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		responses = append(responses, dto.FromListing(listing))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      responses,
			Pagination: helpers.NewPaginationInfo(page, pageSize, total),
		},
		Timestamp: time.Now(),
	})
}

// Nearby retrieves open listings within driving distance
// @Summary List nearby listings
// @Description Returns open listings within the given driving radius of the donor's registered location, nearest first
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param radius query int true "Radius in km (5, 10, 25 or 50)"
// @Success 200 {object} dto.APIResponse{data=[]dto.NearbyListingResponse} "Nearby listings"
// @Failure 400 {object} dto.ErrorResponse "Invalid radius or no registered location"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /listings/nearby [get]
func (c *ListingController) Nearby(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	radius, err := strconv.Atoi(ctx.Query("radius"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid radius").
			WithDetails("radius must be one of 5, 10, 25, 50")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	nearby, err := c.listingService.Nearby(ctx, actor, radius)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.NearbyListingResponse, 0, len(nearby))
	for _, n := range nearby {
		responses = append(responses, dto.NearbyListingResponse{
			Listing:        dto.FromListing(n.Listing),
			DistanceMeters: n.DistanceMeters,
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// Update modifies a listing
// @Summary Update a listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Param request body dto.UpdateListingRequest true "Listing information"
// @Success 200 {object} dto.APIResponse{data=dto.ListingResponse} "Updated listing"
// @Failure 400 {object} dto.ErrorResponse "Invalid listing data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Listing not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /listings/{id} [put]
func (c *ListingController) Update(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateListingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	listing, err := c.listingService.Update(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromListing(listing),
		Timestamp: time.Now(),
	})
}

// Delete soft-deletes a listing
// @Summary Delete a listing
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Listing deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Listing not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /listings/{id} [delete]
func (c *ListingController) Delete(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.listingService.Delete(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Listing deleted"},
		Timestamp: time.Now(),
	})
}
