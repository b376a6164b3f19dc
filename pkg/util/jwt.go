package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Identity is the subject a token is issued for.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

// Claims is the JWT payload shared by access and refresh tokens.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenService signs access and refresh tokens with separate secrets.
type TokenService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *TokenService) IssueAccessToken(id Identity) (string, error) {
	return s.sign(id, TokenTypeAccess, s.accessSecret, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(id Identity) (string, error) {
	return s.sign(id, TokenTypeRefresh, s.refreshSecret, s.refreshTTL)
}

func (s *TokenService) IssueTokenPair(id Identity) (*TokenPair, error) {
	access, err := s.IssueAccessToken(id)
	if err != nil {
		return nil, err
	}
	refresh, err := s.IssueRefreshToken(id)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) VerifyAccessToken(token string) (*Claims, error) {
	return verifyTyped(token, s.accessSecret, TokenTypeAccess)
}

func (s *TokenService) VerifyRefreshToken(token string) (*Claims, error) {
	return verifyTyped(token, s.refreshSecret, TokenTypeRefresh)
}

// Refresh issues a new access token from a valid refresh token. The refresh token
// itself is neither rotated nor extended.
func (s *TokenService) Refresh(refreshToken string) (string, error) {
	claims, err := s.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	return s.IssueAccessToken(claims.Identity())
}

func (s *TokenService) sign(id Identity, typ, secret string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: id.UserID,
		Email:  id.Email,
		Role:   id.Role,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", id.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", typ, err)
	}
	return signed, nil
}

func verifyTyped(token, secret, typ string) (*Claims, error) {
	claims, err := ValidateToken(token, secret)
	if err != nil {
		return nil, err
	}
	if claims.Type != typ {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateToken checks signature and expiry of token against secret.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
