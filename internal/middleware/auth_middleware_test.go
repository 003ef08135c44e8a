package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abitareitalia/leads-backend/pkg/jwt"
)

func setupTestJWTService() *jwt.Service {
	return jwt.NewService("test-secret-key-123456789", time.Hour)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRequireAdmin_Success(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupTestRouter()

	adminID := uuid.New()
	token, err := jwtService.GenerateAccessToken(adminID, "admin@abitareitalia.com", jwt.RoleAdmin)
	require.NoError(t, err)

	router.GET("/admin", RequireAdmin(jwtService), func(c *gin.Context) {
		userCtx, exists := GetUserContext(c)
		require.True(t, exists)
		c.JSON(http.StatusOK, gin.H{"admin_id": userCtx.UserID})
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), adminID.String())
}

func TestRequireAdmin_MissingHeader(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupTestRouter()

	router.GET("/admin", RequireAdmin(jwtService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "should not reach here"})
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthorized")
}

func TestRequireAdmin_InvalidToken(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupTestRouter()

	router.GET("/admin", RequireAdmin(jwtService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "should not reach here"})
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer invalid.token.here")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_NonAdminRole(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupTestRouter()

	token, err := jwtService.GenerateAccessToken(uuid.New(), "user@example.com", jwt.RoleUser)
	require.NoError(t, err)

	router.GET("/admin", RequireAdmin(jwtService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "should not reach here"})
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalUser_WithValidToken(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupTestRouter()

	userID := uuid.New()
	token, err := jwtService.GenerateAccessToken(userID, "user@example.com", jwt.RoleUser)
	require.NoError(t, err)

	router.POST("/submit", OptionalUser(jwtService), func(c *gin.Context) {
		id := SessionUserID(c)
		require.NotNil(t, id)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	req := httptest.NewRequest("POST", "/submit", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestOptionalUser_WithoutToken(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupTestRouter()

	router.POST("/submit", OptionalUser(jwtService), func(c *gin.Context) {
		assert.Nil(t, SessionUserID(c))
		c.JSON(http.StatusOK, gin.H{"message": "anonymous submission accepted"})
	})

	req := httptest.NewRequest("POST", "/submit", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalUser_InvalidTokenIgnored(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupTestRouter()

	router.POST("/submit", OptionalUser(jwtService), func(c *gin.Context) {
		assert.Nil(t, SessionUserID(c))
		c.JSON(http.StatusOK, gin.H{"message": "anonymous submission accepted"})
	})

	req := httptest.NewRequest("POST", "/submit", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "invalid token must not block a public submission")
}
