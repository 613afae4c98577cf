package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nvera/donaescuela/internal/app/models"
	"github.com/nvera/donaescuela/internal/pkg/auth"
)

func newTestJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "test",
	})
}

func newAuthTestRouter(m *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no actor"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": actor.UserID, "role": string(actor.Role)})
	})
	return router
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := newAuthTestRouter(NewAuthMiddleware(newTestJWTService(time.Hour)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	router := newAuthTestRouter(NewAuthMiddleware(newTestJWTService(time.Hour)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abcdef")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := newAuthTestRouter(NewAuthMiddleware(jwtService))

	user := &models.User{ID: 42, Email: "donante@example.com", RoleType: models.RoleDonor}
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	expiredService := newTestJWTService(-time.Minute)
	router := newAuthTestRouter(NewAuthMiddleware(expiredService))

	user := &models.User{ID: 42, Email: "donante@example.com", RoleType: models.RoleDonor}
	accessToken, _, _, _, err := expiredService.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestRoleRequired(t *testing.T) {
	m := NewAuthMiddleware(newTestJWTService(time.Hour))

	tests := []struct {
		name     string
		role     string
		hasRole  bool
		required models.RoleType
		want     int
	}{
		{"matching role", string(models.RoleDonor), true, models.RoleDonor, http.StatusOK},
		{"wrong role", string(models.RoleDonor), true, models.RoleSchoolRep, http.StatusForbidden},
		{"role missing from context", "", false, models.RoleDonor, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			if tt.hasRole {
				router.Use(func(c *gin.Context) {
					c.Set("roleType", tt.role)
				})
			}
			router.GET("/restricted", m.RoleRequired(tt.required), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/restricted", nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestGetActorWithoutAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := GetActor(c); ok {
		t.Error("expected no actor on an unauthenticated context")
	}
}
