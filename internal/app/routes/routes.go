package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nvera/donaescuela/internal/app/controllers"
	"github.com/nvera/donaescuela/internal/app/models"
	"github.com/nvera/donaescuela/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	districtController *controllers.DistrictController,
	schoolController *controllers.SchoolController,
	listingController *controllers.ListingController,
	matchController *controllers.MatchController,
	donationController *controllers.DonationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// District autocomplete is public, it feeds the registration form.
	v1.GET("/districts", districtController.Search)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetProfile)
			users.PUT("/me", userController.UpdateProfile)
		}

		schools := authenticated.Group("/schools")
		{
			schools.GET("", schoolController.List)
			schools.GET("/:id", schoolController.GetByID)

			schoolsRepProtected := schools.Group("")
			schoolsRepProtected.Use(authMiddleware.RoleRequired(models.RoleSchoolRep))
			{
				schoolsRepProtected.POST("", schoolController.Create)
			}

			// Update/delete stay open to mec as well; ownership is
			// decided by the policy layer.
			schools.PUT("/:id", schoolController.Update)
			schools.DELETE("/:id", schoolController.Delete)
			schools.POST("/:id/institutes", schoolController.AddInstitute)
			schools.DELETE("/:id/institutes/:instituteId", schoolController.DeleteInstitute)
		}

		listings := authenticated.Group("/listings")
		{
			listings.GET("", listingController.List)
			listings.GET("/nearby", listingController.Nearby)
			listings.GET("/:id", listingController.GetByID)
			listings.GET("/:id/items/:itemId", listingController.GetItem)

			listingsRepProtected := listings.Group("")
			listingsRepProtected.Use(authMiddleware.RoleRequired(models.RoleSchoolRep))
			{
				listingsRepProtected.POST("", listingController.Create)
			}

			// Donors commit to an item in the context of its listing.
			listingsDonorProtected := listings.Group("")
			listingsDonorProtected.Use(authMiddleware.RoleRequired(models.RoleDonor))
			{
				listingsDonorProtected.POST("/:id/items/:itemId/matches", matchController.Commit)
			}

			listings.PUT("/:id", listingController.Update)
			listings.DELETE("/:id", listingController.Delete)
		}

		matches := authenticated.Group("/matches")
		{
			matches.GET("", matchController.List)
			matches.GET("/:id", matchController.GetByID)

			matchesDonorProtected := matches.Group("")
			matchesDonorProtected.Use(authMiddleware.RoleRequired(models.RoleDonor))
			{
				matchesDonorProtected.DELETE("/:id", matchController.Withdraw)
			}

			matchesRepProtected := matches.Group("")
			matchesRepProtected.Use(authMiddleware.RoleRequired(models.RoleSchoolRep))
			{
				matchesRepProtected.POST("/:id/accept", matchController.Accept)
				matchesRepProtected.POST("/:id/reject", matchController.Reject)
				matchesRepProtected.POST("/:id/fulfill", matchController.Fulfill)
				matchesRepProtected.POST("/:id/cancel", matchController.Cancel)
			}
		}

		authenticated.GET("/donations", donationController.List)
	}
}
