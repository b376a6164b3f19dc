package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/internal/app/repository"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	"github.com/ikkim/brandsite-backend/internal/middleware"
	"github.com/ikkim/brandsite-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthControllerTest(t *testing.T) *gin.Engine {
	testDB := setupTestDB(t)

	tokens := util.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	authService := service.NewAuthService(repository.NewUserRepository(testDB), tokens, nil)
	_, _, err := authService.EnsureAdmin("admin@example.com", "admin123", "Admin")
	require.NoError(t, err)

	ctrl := NewAuthController(authService, tokens, false)
	auth := middleware.NewAuthMiddleware(tokens, nil, "/login")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/register", ctrl.Register)
	router.POST("/auth/login", ctrl.Login)
	router.POST("/auth/refresh", ctrl.Refresh)
	router.POST("/auth/logout", ctrl.Logout)
	router.GET("/auth/me", append(auth.Admin(), ctrl.GetMe)...)
	return router
}

func TestAuthController_Login(t *testing.T) {
	router := setupAuthControllerTest(t)

	tests := []struct {
		name     string
		body     map[string]string
		code     int
		expected string
	}{
		{name: "Admin credentials", body: map[string]string{"email": "admin@example.com", "password": "admin123"}, code: http.StatusOK, expected: "Login successful"},
		{name: "Wrong password", body: map[string]string{"email": "admin@example.com", "password": "nope"}, code: http.StatusUnauthorized, expected: "Invalid credentials"},
		{name: "Unknown email", body: map[string]string{"email": "ghost@example.com", "password": "admin123"}, code: http.StatusNotFound, expected: "User not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/auth/login", tt.body)
			require.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.expected, decode(t, w)["message"])
		})
	}
}

func TestAuthController_LoginSetsCookiesAndGrantsAdmin(t *testing.T) {
	router := setupAuthControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{"email": "admin@example.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := map[string]string{}
	for _, c := range w.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	assert.NotEmpty(t, cookies["access_token"])
	assert.NotEmpty(t, cookies["refresh_token"])

	tokens := decode(t, w)["tokens"].(map[string]interface{})
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokens["access_token"].(string))
	me := httptest.NewRecorder()
	router.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "admin", decode(t, me)["user"].(map[string]interface{})["role"])
}

func TestAuthController_Register(t *testing.T) {
	router := setupAuthControllerTest(t)

	body := map[string]string{"name": "Kim", "email": "kim@example.com", "password": "secret1"}
	w := doJSON(t, router, http.MethodPost, "/auth/register", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "user", decode(t, w)["user"].(map[string]interface{})["role"])

	w = doJSON(t, router, http.MethodPost, "/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decode(t, w)["message"])

	w = doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{"name": "Kim", "email": "x@example.com", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A registered non-admin cannot reach admin routes.
	w = doJSON(t, router, http.MethodPost, "/auth/login", body)
	require.Equal(t, http.StatusOK, w.Code)
	access := decode(t, w)["tokens"].(map[string]interface{})["access_token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	me := httptest.NewRecorder()
	router.ServeHTTP(me, req)
	assert.Equal(t, http.StatusForbidden, me.Code)
}

func TestAuthController_Refresh(t *testing.T) {
	router := setupAuthControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{"email": "admin@example.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)
	tokens := decode(t, w)["tokens"].(map[string]interface{})

	w = doJSON(t, router, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": tokens["refresh_token"].(string)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["access_token"])

	w = doJSON(t, router, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": tokens["access_token"].(string)})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/auth/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_LogoutClearsCookies(t *testing.T) {
	router := setupAuthControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cleared := map[string]bool{}
	for _, c := range w.Result().Cookies() {
		cleared[c.Name] = c.MaxAge < 0
	}
	assert.True(t, cleared["access_token"])
	assert.True(t, cleared["refresh_token"])
}

func TestAuthController_RefreshCamelCaseKey(t *testing.T) {
	router := setupAuthControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{"email": "admin@example.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)
	tokens := decode(t, w)["tokens"].(map[string]interface{})

	w = doJSON(t, router, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": tokens["refresh_token"].(string)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decode(t, w)["access_token"])
}
