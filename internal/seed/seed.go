package seed

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	appModels "github.com/nvera/donaescuela/internal/app/models"
	appRepos "github.com/nvera/donaescuela/internal/app/repositories"
	pkgAuth "github.com/nvera/donaescuela/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// defaultMECEmail is the seeded ministry account. The mec role cannot be
// registered through the API, it only exists through seeding.
const defaultMECEmail = "mec@donaescuela.uy"

// CreateDefaultData seeds the district catalog and the default mec user
// if they don't exist yet.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	districtRepo := appRepos.NewDistrictRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	var finalErr error

	if err := seedDistricts(ctx, districtRepo, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error seeding districts")
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedMECUser(ctx, userRepo, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error seeding default mec user")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

// seedDistricts loads the locality catalog used by the registration
// autocomplete. Inserts are idempotent, re-running the seed is safe.
func seedDistricts(ctx context.Context, repo *appRepos.DistrictRepository, lgr zerolog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		lgr.Debug().Int64("count", count).Msg("District catalog already seeded, skipping")
		return nil
	}

	districts := make([]*appModels.District, 0, len(defaultDistricts))
	for _, d := range defaultDistricts {
		districts = append(districts, &appModels.District{
			Name:       d.name,
			NameLower:  strings.ToLower(d.name),
			Department: d.department,
		})
	}

	if err := repo.CreateBatch(ctx, districts); err != nil {
		return err
	}

	lgr.Info().Int("count", len(districts)).Msg("District catalog seeded")
	return nil
}

// seedMECUser creates the ministry account. The password comes from the
// MEC_DEFAULT_PASSWORD environment variable and must be changed after
// first login; a throwaway default keeps local development working.
func seedMECUser(ctx context.Context, repo *appRepos.UserRepository, lgr zerolog.Logger) error {
	exists, err := repo.EmailExists(ctx, defaultMECEmail)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	password := os.Getenv("MEC_DEFAULT_PASSWORD")
	if password == "" {
		password = "cambiame123"
		lgr.Warn().Str("email", defaultMECEmail).Msg("MEC_DEFAULT_PASSWORD not set, seeding mec user with the development default")
	}

	hashed, err := pkgAuth.HashPassword(password)
	if err != nil {
		return err
	}

	mecUser := &appModels.User{
		Email:    defaultMECEmail,
		Password: hashed,
		Name:     "Ministerio de Educación y Cultura",
		RoleType: appModels.RoleMEC,
		IsActive: true,
	}
	if err := repo.Create(ctx, mecUser); err != nil {
		return err
	}

	lgr.Info().Str("email", defaultMECEmail).Msg("Default mec user created")
	return nil
}

type seedDistrict struct {
	name       string
	department string
}

// defaultDistricts is a starter catalog of Uruguayan localities. It is
// not exhaustive; operators can extend the table directly.
var defaultDistricts = []seedDistrict{
	{"Centro", "Montevideo"},
	{"Ciudad Vieja", "Montevideo"},
	{"Cordón", "Montevideo"},
	{"Pocitos", "Montevideo"},
	{"Punta Carretas", "Montevideo"},
	{"Malvín", "Montevideo"},
	{"Carrasco", "Montevideo"},
	{"Cerro", "Montevideo"},
	{"La Teja", "Montevideo"},
	{"Sayago", "Montevideo"},
	{"Colón", "Montevideo"},
	{"Piedras Blancas", "Montevideo"},
	{"Ciudad de la Costa", "Canelones"},
	{"Las Piedras", "Canelones"},
	{"Pando", "Canelones"},
	{"La Paz", "Canelones"},
	{"Santa Lucía", "Canelones"},
	{"Atlántida", "Canelones"},
	{"Maldonado", "Maldonado"},
	{"Punta del Este", "Maldonado"},
	{"San Carlos", "Maldonado"},
	{"Salto", "Salto"},
	{"Paysandú", "Paysandú"},
	{"Rivera", "Rivera"},
	{"Tacuarembó", "Tacuarembó"},
	{"Melo", "Cerro Largo"},
	{"Artigas", "Artigas"},
	{"Bella Unión", "Artigas"},
	{"Mercedes", "Soriano"},
	{"Dolores", "Soriano"},
	{"Fray Bentos", "Río Negro"},
	{"Young", "Río Negro"},
	{"Colonia del Sacramento", "Colonia"},
	{"Carmelo", "Colonia"},
	{"Nueva Helvecia", "Colonia"},
	{"San José de Mayo", "San José"},
	{"Ciudad del Plata", "San José"},
	{"Durazno", "Durazno"},
	{"Florida", "Florida"},
	{"Trinidad", "Flores"},
	{"Minas", "Lavalleja"},
	{"Rocha", "Rocha"},
	{"Chuy", "Rocha"},
	{"Treinta y Tres", "Treinta y Tres"},
}
