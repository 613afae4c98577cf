package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	appauth "github.com/nvera/donaescuela/internal/app/auth"
	"github.com/nvera/donaescuela/internal/app/models"
	"github.com/nvera/donaescuela/internal/app/models/dto"
	"github.com/nvera/donaescuela/internal/app/services"
	"github.com/nvera/donaescuela/internal/middleware"
	"github.com/nvera/donaescuela/internal/pkg/helpers"
)

// MatchController handles the donation workflow
type MatchController struct {
	matchService *services.MatchService
}

// NewMatchController creates a new MatchController
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{
		matchService: matchService,
	}
}

// Commit records a donor's commitment
// @Summary Commit to a listing item
// @Description Creates a match_donante match between the caller and an open item
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Param itemId path int true "Item ID"
// @Success 201 {object} dto.APIResponse{data=dto.MatchResponse} "Commitment recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Listing or item not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate commitment or item no longer open"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /listings/{id}/items/{itemId}/matches [post]
func (c *MatchController) Commit(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	listingID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(ctx, "itemId")
	if !ok {
		return
	}

	match, err := c.matchService.Commit(ctx, actor, listingID, itemID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromMatch(match),
		Timestamp: time.Now(),
	})
}

// GetByID retrieves a match
// @Summary Get match by ID
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 200 {object} dto.APIResponse{data=dto.MatchResponse} "Match"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Match not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /matches/{id} [get]
func (c *MatchController) GetByID(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	match, err := c.matchService.GetByID(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromMatch(match),
		Timestamp: time.Now(),
	})
}

// List retrieves the caller's matches
// @Summary List matches
// @Description Donors see their commitments, representatives the matches on their listings, mec all
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Matches"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /matches [get]
func (c *MatchController) List(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	matches, total, err := c.matchService.ListForActor(ctx, actor, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.MatchResponse, 0, len(matches))
	for _, match := range matches {
		responses = append(responses, dto.FromMatch(match))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      responses,
			Pagination: helpers.NewPaginationInfo(page, pageSize, total),
		},
		Timestamp: time.Now(),
	})
}

// transition applies one representative decision endpoint
func (c *MatchController) transition(ctx *gin.Context, fn func(actor appauth.Actor, matchID int64) (*models.Match, error)) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	match, err := fn(actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromMatch(match),
		Timestamp: time.Now(),
	})
}

// Accept accepts a pending commitment
// @Summary Accept a match
// @Description Moves the match to match_aceptado and the item to en_proceso; other pending commitments for the item are rejected
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 200 {object} dto.APIResponse{data=dto.MatchResponse} "Accepted match"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Match not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition or item already matched"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /matches/{id}/accept [post]
func (c *MatchController) Accept(ctx *gin.Context) {
	c.transition(ctx, func(actor appauth.Actor, matchID int64) (*models.Match, error) {
		return c.matchService.Accept(ctx, actor, matchID)
	})
}

// Reject declines a pending commitment
// @Summary Reject a match
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 200 {object} dto.APIResponse{data=dto.MatchResponse} "Rejected match"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Match not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /matches/{id}/reject [post]
func (c *MatchController) Reject(ctx *gin.Context) {
	c.transition(ctx, func(actor appauth.Actor, matchID int64) (*models.Match, error) {
		return c.matchService.Reject(ctx, actor, matchID)
	})
}

// Fulfill closes an accepted match and records the donation
// @Summary Fulfill a match
// @Description Marks the match and item concretado, closes the listing when complete, records exactly one donation
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 200 {object} dto.APIResponse{data=dto.MatchResponse} "Fulfilled match"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Match not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition or already fulfilled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /matches/{id}/fulfill [post]
func (c *MatchController) Fulfill(ctx *gin.Context) {
	c.transition(ctx, func(actor appauth.Actor, matchID int64) (*models.Match, error) {
		return c.matchService.Fulfill(ctx, actor, matchID)
	})
}

// Cancel aborts an accepted match
// @Summary Cancel a match
// @Description Cancels the match and reopens the item
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 200 {object} dto.APIResponse{data=dto.MatchResponse} "Cancelled match"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Match not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /matches/{id}/cancel [post]
func (c *MatchController) Cancel(ctx *gin.Context) {
	c.transition(ctx, func(actor appauth.Actor, matchID int64) (*models.Match, error) {
		return c.matchService.Cancel(ctx, actor, matchID)
	})
}

// Withdraw lets a donor pull back an undecided commitment
// @Summary Withdraw a commitment
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Commitment withdrawn"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Match not found"
// @Failure 409 {object} dto.ErrorResponse "Match already decided"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /matches/{id} [delete]
func (c *MatchController) Withdraw(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.matchService.Withdraw(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Commitment withdrawn"},
		Timestamp: time.Now(),
	})
}
