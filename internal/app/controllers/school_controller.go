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

// SchoolController handles school and institute management
type SchoolController struct {
	schoolService *services.SchoolService
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(schoolService *services.SchoolService) *SchoolController {
	return &SchoolController{
		schoolService: schoolService,
	}
}

// Create registers a school
// @Summary Register a school
// @Description Creates a school with its institutes, owned by the caller
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSchoolRequest true "School information"
// @Success 201 {object} dto.APIResponse{data=dto.SchoolResponse} "School created"
// @Failure 400 {object} dto.ErrorResponse "Invalid school data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools [post]
func (c *SchoolController) Create(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateSchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	school, err := c.schoolService.Create(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromSchool(school),
		Timestamp: time.Now(),
	})
}

// GetByID retrieves a school
// @Summary Get school by ID
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse{data=dto.SchoolResponse} "School"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools/{id} [get]
func (c *SchoolController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	school, err := c.schoolService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromSchool(school),
		Timestamp: time.Now(),
	})
}

// List retrieves schools
// @Summary List schools
// @Description Representatives see their own schools, other roles browse all
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param district query string false "Filter by district"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Schools"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools [get]
func (c *SchoolController) List(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	schools, total, err := c.schoolService.List(ctx, actor, ctx.Query("district"), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.SchoolResponse, 0, len(schools))
	for _, school := range schools {
		responses = append(responses, dto.FromSchool(school))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      responses,
			Pagination: helpers.NewPaginationInfo(page, pageSize, total),
		},
		Timestamp: time.Now(),
	})
}

// Update modifies a school
// @Summary Update a school
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Param request body dto.UpdateSchoolRequest true "School information"
// @Success 200 {object} dto.APIResponse{data=dto.SchoolResponse} "Updated school"
// @Failure 400 {object} dto.ErrorResponse "Invalid school data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools/{id} [put]
func (c *SchoolController) Update(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	school, err := c.schoolService.Update(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromSchool(school),
		Timestamp: time.Now(),
	})
}

// Delete soft-deletes a school
// @Summary Delete a school
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "School deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools/{id} [delete]
func (c *SchoolController) Delete(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.schoolService.Delete(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "School deleted"},
		Timestamp: time.Now(),
	})
}

// AddInstitute adds an institute to a school
// @Summary Add an institute
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Param request body dto.CreateInstituteRequest true "Institute information"
// @Success 201 {object} dto.APIResponse{data=dto.InstituteResponse} "Institute created"
// @Failure 400 {object} dto.ErrorResponse "Invalid institute data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools/{id}/institutes [post]
func (c *SchoolController) AddInstitute(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateInstituteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	institute, err := c.schoolService.AddInstitute(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.InstituteResponse{
			ID:    institute.ID,
			Name:  institute.Name,
			Shift: institute.Shift,
		},
		Timestamp: time.Now(),
	})
}

// DeleteInstitute removes an institute
// @Summary Delete an institute
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Param instituteId path int true "Institute ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Institute deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "School or institute not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools/{id}/institutes/{instituteId} [delete]
func (c *SchoolController) DeleteInstitute(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	instituteID, ok := parseIDParam(ctx, "instituteId")
	if !ok {
		return
	}

	if err := c.schoolService.DeleteInstitute(ctx, actor, id, instituteID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Institute deleted"},
		Timestamp: time.Now(),
	})
}
