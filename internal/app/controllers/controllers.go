package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	appauth "github.com/nvera/donaescuela/internal/app/auth"
	"github.com/nvera/donaescuela/internal/app/models/dto"
	"github.com/nvera/donaescuela/internal/middleware"
)

// parseIDParam reads a positive int64 path parameter. On failure it
// writes the 400 response and reports false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// requireActor reads the authenticated actor from the context. On
// failure it writes the 401 response and reports false.
func requireActor(ctx *gin.Context) (appauth.Actor, bool) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return appauth.Actor{}, false
	}
	return actor, true
}
