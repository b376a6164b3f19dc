package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	apperrors "github.com/ikkim/brandsite-backend/internal/errors"
	"github.com/ikkim/brandsite-backend/internal/middleware"
	"github.com/ikkim/brandsite-backend/pkg/util"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

type AuthController struct {
	authService  service.AuthService
	tokens       *util.TokenService
	secureCookie bool
}

func NewAuthController(authService service.AuthService, tokens *util.TokenService, secureCookie bool) *AuthController {
	return &AuthController{
		authService:  authService,
		tokens:       tokens,
		secureCookie: secureCookie,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken      string `json:"refresh_token"`
	RefreshTokenCamel string `json:"refreshToken"`
}

func (r RefreshTokenRequest) token() string {
	return firstNonEmpty(r.RefreshToken, r.RefreshTokenCamel)
}

func userResponse(user *model.User) gin.H {
	return gin.H{
		"id":     user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"avatar": user.AvatarURL,
		"role":   user.Role,
	}
}

// Register handles user registration
// POST /auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, log, err, "registration")
		return
	}

	user, err := ctrl.authService.Register(service.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		AvatarURL: req.Avatar,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			log.Warn("Registration failed: email already exists", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.BadRequest(c, apperrors.AuthEmailAlreadyExists, "User already exists")
			return
		}
		respondServiceError(c, log, err, "register user")
		return
	}

	log.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    userResponse(user),
	})
}

// Login handles user login
// POST /auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, log, err, "login")
		return
	}

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			log.Warn("Login failed: user not found", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.NotFound(c, apperrors.AuthUserNotFound, "User not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid credentials")
		default:
			respondServiceError(c, log, err, "login")
		}
		return
	}

	ctrl.setTokenCookies(c, tokens)

	log.Info("Login successful", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    userResponse(user),
		"tokens":  tokens,
	})
}

// Refresh issues a new access token
// POST /auth/refresh
func (ctrl *AuthController) Refresh(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RefreshTokenRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, log, err, "refresh")
			return
		}
	}
	req.RefreshToken = req.token()
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie(refreshTokenCookie)
	}
	if req.RefreshToken == "" {
		apperrors.Unauthorized(c, "Refresh token is required")
		return
	}

	access, err := ctrl.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		log.Warn("Token refresh rejected", map[string]interface{}{
			"error": err.Error(),
		})
		if errors.Is(err, util.ErrExpiredToken) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenExpired, "Refresh token has expired")
			return
		}
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Invalid refresh token")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, access, int(ctrl.tokens.AccessTTL().Seconds()), "/", "", ctrl.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"access_token": access,
	})
}

// Logout clears the token cookies and revokes whatever tokens were presented
// POST /auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	access, _ := middleware.BearerToken(c)
	if access == "" {
		access, _ = c.Cookie(accessTokenCookie)
	}

	var req RefreshTokenRequest
	if c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&req)
	}
	req.RefreshToken = req.token()
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie(refreshTokenCookie)
	}

	if err := ctrl.authService.Logout(c.Request.Context(), access, req.RefreshToken); err != nil {
		log.Error("Failed to revoke tokens on logout", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, "", -1, "/", "", ctrl.secureCookie, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", ctrl.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetMe returns current user information
// GET /auth/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.AuthUserNotFound, "User not found")
			return
		}
		respondServiceError(c, log, err, "get user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": userResponse(user),
	})
}

func (ctrl *AuthController) setTokenCookies(c *gin.Context, tokens *util.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, tokens.AccessToken, int(ctrl.tokens.AccessTTL().Seconds()), "/", "", ctrl.secureCookie, true)
	c.SetCookie(refreshTokenCookie, tokens.RefreshToken, int(ctrl.tokens.RefreshTTL().Seconds()), "/", "", ctrl.secureCookie, true)
}
