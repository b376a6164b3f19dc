package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/internal/app/model"
	apperrors "github.com/ikkim/brandsite-backend/internal/errors"
	"github.com/ikkim/brandsite-backend/pkg/util"
)

// Context keys for user information
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
	TokenIDKey   = "token_id"
)

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthMiddleware struct {
	tokens    *util.TokenService
	revoked   RevocationChecker
	loginPath string
}

// NewAuthMiddleware builds the guard. revoked may be nil when no denylist is kept.
func NewAuthMiddleware(tokens *util.TokenService, revoked RevocationChecker, loginPath string) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:    tokens,
		revoked:   revoked,
		loginPath: loginPath,
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
// ok is false when the header is absent; a malformed header yields ok with an empty token.
func BearerToken(c *gin.Context) (token string, ok bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", false
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true
	}
	return parts[1], true
}

// wantsPage reports whether the request is a browser page navigation rather than an API call.
func wantsPage(c *gin.Context) bool {
	if c.Request.Method != http.MethodGet {
		return false
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}

func (m *AuthMiddleware) reject(c *gin.Context, status int, code, message string) {
	if m.loginPath != "" && wantsPage(c) {
		target := m.loginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
		return
	}
	apperrors.RespondWithError(c, status, code, message)
	c.Abort()
}

// Authenticate validates the bearer access token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, present := BearerToken(c)
		if !present {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			m.reject(c, http.StatusUnauthorized, apperrors.AuthUnauthorized, "Authorization token is required")
			return
		}

		claims, err := m.tokens.VerifyAccessToken(token)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if errors.Is(err, util.ErrExpiredToken) {
				m.reject(c, http.StatusUnauthorized, apperrors.AuthTokenExpired, "Token has expired")
			} else {
				m.reject(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Invalid token")
			}
			return
		}

		if m.revoked != nil {
			revoked, err := m.revoked.IsTokenRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Denylist outage does not lock admins out.
				log.Error("Failed to check token denylist", err, map[string]interface{}{
					"user_id": claims.UserID,
				})
			} else if revoked {
				log.Warn("Revoked token presented", map[string]interface{}{
					"user_id": claims.UserID,
				})
				m.reject(c, http.StatusUnauthorized, apperrors.AuthTokenRevoked, "Token has been revoked")
				return
			}
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, model.UserRole(claims.Role))
		c.Set(TokenIDKey, claims.ID)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": claims.UserID,
			"role":    claims.Role,
		})

		c.Next()
	}
}

// RequireAdmin lets only tokens carrying the admin role through. Use after Authenticate.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		role, exists := GetUserRole(c)
		if !exists {
			log.Warn("Role information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			m.reject(c, http.StatusUnauthorized, apperrors.AuthUnauthorized, "Authorization token is required")
			return
		}

		if role != model.RoleAdmin {
			userID, _ := GetUserID(c)
			log.Warn("Insufficient permissions", map[string]interface{}{
				"user_id":   userID,
				"user_role": role,
				"path":      c.Request.URL.Path,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzAdminOnly, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Admin chains Authenticate and RequireAdmin.
func (m *AuthMiddleware) Admin() []gin.HandlerFunc {
	return []gin.HandlerFunc{m.Authenticate(), m.RequireAdmin()}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUserEmail extracts user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}

// GetUserRole extracts user role from context
func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(model.UserRole)
	return r, ok
}
