package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nvera/donaescuela/internal/app/models/dto"
	"github.com/nvera/donaescuela/internal/app/services"
	"github.com/nvera/donaescuela/internal/middleware"
)

// DistrictController handles the district autocomplete lookup
type DistrictController struct {
	districtService *services.DistrictService
}

// NewDistrictController creates a new DistrictController
func NewDistrictController(districtService *services.DistrictService) *DistrictController {
	return &DistrictController{
		districtService: districtService,
	}
}

// Search returns districts matching a name prefix
// @Summary Search districts
// @Description Case-insensitive prefix search over district names
// @Tags districts
// @Produce json
// @Param q query string false "Name prefix"
// @Success 200 {object} dto.APIResponse{data=[]dto.DistrictResponse} "Matching districts"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /districts [get]
func (c *DistrictController) Search(ctx *gin.Context) {
	districts, err := c.districtService.Search(ctx, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.DistrictResponse, 0, len(districts))
	for _, district := range districts {
		responses = append(responses, dto.FromDistrict(district))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}
