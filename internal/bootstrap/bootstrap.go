package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nvera/donaescuela/docs" // Import generated swagger docs
	appAuth "github.com/nvera/donaescuela/internal/app/auth"
	appControllers "github.com/nvera/donaescuela/internal/app/controllers"
	appMigrations "github.com/nvera/donaescuela/internal/app/migrations"
	appRepos "github.com/nvera/donaescuela/internal/app/repositories"
	appRoutes "github.com/nvera/donaescuela/internal/app/routes"
	appServices "github.com/nvera/donaescuela/internal/app/services"
	"github.com/nvera/donaescuela/internal/config"
	"github.com/nvera/donaescuela/internal/db"
	appMiddleware "github.com/nvera/donaescuela/internal/middleware"
	pkgAuth "github.com/nvera/donaescuela/internal/pkg/auth"
	"github.com/nvera/donaescuela/internal/pkg/geo"
	"github.com/nvera/donaescuela/internal/pkg/helpers"
	"github.com/nvera/donaescuela/internal/pkg/logger"
	"github.com/nvera/donaescuela/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	UserService         *appServices.UserService
	DistrictService     *appServices.DistrictService
	SchoolService       *appServices.SchoolService
	ListingService      *appServices.ListingService
	MatchService        *appServices.MatchService
	DonationService     *appServices.DonationService
	AuthController      *appControllers.AuthController
	UserController      *appControllers.UserController
	DistrictController  *appControllers.DistrictController
	SchoolController    *appControllers.SchoolController
	ListingController   *appControllers.ListingController
	MatchController     *appControllers.MatchController
	DonationController  *appControllers.DonationController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Policy              *appAuth.Policy
	GeoFilter           *geo.Filter
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Seeding failure is not fatal, the catalog can be loaded later.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.Policy = appAuth.NewPolicy()

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	routingClient := geo.NewOSRMClient(
		cfg.Routing.BaseURL,
		helpers.ParseDuration(cfg.Routing.RequestTimeout, 5*time.Second),
	)
	deps.GeoFilter = geo.NewFilter(
		routingClient,
		cfg.Routing.Workers,
		helpers.ParseDuration(cfg.Routing.FilterDeadline, 20*time.Second),
	)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository)
	deps.DistrictService = appServices.NewDistrictService(deps.Repos.DistrictRepository)
	deps.SchoolService = appServices.NewSchoolService(deps.Repos.SchoolRepository, deps.Policy, database)
	deps.ListingService = appServices.NewListingService(
		deps.Repos.ListingRepository,
		deps.Repos.SchoolRepository,
		deps.Repos.UserRepository,
		deps.Policy,
		database,
		deps.GeoFilter,
	)
	deps.MatchService = appServices.NewMatchService(
		deps.Repos.MatchRepository,
		deps.Repos.ListingRepository,
		deps.Repos.DonationRepository,
		deps.Policy,
		database,
		cfg.Match.RevertItemOnReject,
		lgr,
	)
	deps.DonationService = appServices.NewDonationService(deps.Repos.DonationRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.DistrictController = appControllers.NewDistrictController(deps.DistrictService)
	deps.SchoolController = appControllers.NewSchoolController(deps.SchoolService)
	deps.ListingController = appControllers.NewListingController(deps.ListingService)
	deps.MatchController = appControllers.NewMatchController(deps.MatchService)
	deps.DonationController = appControllers.NewDonationController(deps.DonationService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.DistrictController,
		deps.SchoolController,
		deps.ListingController,
		deps.MatchController,
		deps.DonationController,
		deps.AuthMiddleware,
	)

	return router
}
