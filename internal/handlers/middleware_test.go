package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/services"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthTestRouter(t *testing.T) (*gin.Engine, *services.AuthService, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.CourseMembership{}))

	users := repository.NewUserRepository(db)
	courseID := uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Name: "Ana", Registration: "20260001", PasswordHash: string(hash)}
	require.NoError(t, users.Create(u))
	require.NoError(t, users.AddMembership(&models.CourseMembership{
		UserID:   u.ID,
		CourseID: courseID,
		Role:     models.RoleStudent,
	}))

	auth := services.NewAuthService(users, "test-secret", time.Hour)

	r := gin.New()
	r.GET("/protected", AuthMiddleware(auth), func(c *gin.Context) {
		p, ok := requirePrincipal(c)
		if !ok {
			return
		}
		scope, bound := tenant.FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"user_id":     p.ID,
			"course_id":   scope.CourseID(),
			"scope_bound": bound,
		})
	})
	return r, auth, courseID
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	r, auth, courseID := newAuthTestRouter(t)

	res, err := auth.Login("20260001", "senha123", courseID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+res.Token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), courseID.String())
	assert.Contains(t, w.Body.String(), `"scope_bound":true`)
}

func TestAuthMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	r, _, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer forged.token.here")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"unauthenticated", authz.ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", authz.Forbidden(authz.ReasonAccessDenied), http.StatusForbidden},
		{"wrong tenant", authz.Forbidden(authz.ReasonWrongTenant), http.StatusForbidden},
		{"lifecycle", authz.Lifecycle(authz.ReasonProjectFinished), http.StatusUnprocessableEntity},
		{"window closed", authz.Lifecycle(authz.ReasonDeliverableClosed), http.StatusUnprocessableEntity},
		{"conflict", authz.Conflict(authz.ReasonContentAlreadyExists), http.StatusConflict},
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"unbound scope", tenant.ErrUnboundScope, http.StatusForbidden},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			writeError(c, tt.err)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
