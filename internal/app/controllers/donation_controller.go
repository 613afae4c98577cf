package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nvera/donaescuela/internal/app/models/dto"
	"github.com/nvera/donaescuela/internal/app/services"
	"github.com/nvera/donaescuela/internal/middleware"
	"github.com/nvera/donaescuela/internal/pkg/helpers"
)

// DonationController reads the donation record
type DonationController struct {
	donationService *services.DonationService
}

// NewDonationController creates a new DonationController
func NewDonationController(donationService *services.DonationService) *DonationController {
	return &DonationController{
		donationService: donationService,
	}
}

// List retrieves the caller's donation history
// @Summary List donations
// @Description Donors see their own history, representatives what their schools received, mec all
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Donations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /donations [get]
func (c *DonationController) List(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	donations, total, err := c.donationService.ListForActor(ctx, actor, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.DonationResponse, 0, len(donations))
	for _, donation := range donations {
		responses = append(responses, dto.FromDonation(donation))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      responses,
			Pagination: helpers.NewPaginationInfo(page, pageSize, total),
		},
		Timestamp: time.Now(),
	})
}
