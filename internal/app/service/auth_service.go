package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/internal/app/repository"
	"github.com/ikkim/brandsite-backend/pkg/logger"
	"github.com/ikkim/brandsite-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

const minPasswordLength = 6

// TokenDenylist remembers revoked token ids until they would have expired anyway.
type TokenDenylist interface {
	RevokeToken(ctx context.Context, tokenID string, expiry time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	AvatarURL string
}

type AuthService interface {
	Register(input RegisterInput) (*model.User, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	GetUserByID(id uint) (*model.User, error)
	EnsureAdmin(email, password, name string) (*model.User, bool, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *util.TokenService
	denylist TokenDenylist
	now      func() time.Time
}

// NewAuthService builds the service. denylist may be nil, in which case logout
// only clears client state and tokens live until expiry.
func NewAuthService(userRepo repository.UserRepository, tokens *util.TokenService, denylist TokenDenylist) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		denylist: denylist,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(input RegisterInput) (*model.User, error) {
	email := normalizeEmail(input.Email)

	logger.Info("Attempting user registration", map[string]interface{}{
		"email": email,
	})

	if blank(input.Name) {
		return nil, required("name", "Name")
	}
	if email == "" {
		return nil, required("email", "Email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("email", "Email is not valid")
	}
	if len(input.Password) < minPasswordLength {
		return nil, invalid("password", "Password must be at least 6 characters")
	}

	// Check if user already exists
	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	if existingUser != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(input.Password)
	if err != nil {
		if errors.Is(err, util.ErrPasswordTooLong) {
			return nil, invalid("password", "Password must be at most 72 bytes")
		}
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(input.Name),
		AvatarURL:    strings.TrimSpace(input.AvatarURL),
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if isDuplicateKey(err) {
			return nil, ErrEmailAlreadyExists
		}
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    user.Role,
	})
	return user, nil
}

// Login distinguishes an unknown email from a wrong password.
func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	email = normalizeEmail(email)

	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrUserNotFound
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.tokens.IssueTokenPair(identityOf(user))
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, tokens, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if s.denylist != nil {
		if claims, err := s.tokens.VerifyRefreshToken(refreshToken); err == nil {
			if revoked, err := s.denylist.IsTokenRevoked(ctx, claims.ID); err == nil && revoked {
				logger.Warn("Token refresh rejected: refresh token revoked", map[string]interface{}{
					"user_id": claims.UserID,
				})
				return "", util.ErrInvalidToken
			}
		}
	}

	access, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		logger.Warn("Token refresh rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return "", err
	}
	return access, nil
}

// Logout denylists whichever of the two tokens still verify. Unverifiable
// tokens are ignored since they are already unusable.
func (s *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if s.denylist == nil {
		return nil
	}

	var firstErr error
	revoke := func(claims *util.Claims) {
		ttl := claims.ExpiresAt.Time.Sub(s.now())
		if err := s.denylist.RevokeToken(ctx, claims.ID, ttl); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if claims, err := s.tokens.VerifyAccessToken(accessToken); err == nil {
		revoke(claims)
	}
	if claims, err := s.tokens.VerifyRefreshToken(refreshToken); err == nil {
		revoke(claims)
	}

	if firstErr != nil {
		logger.Error("Failed to revoke tokens on logout", firstErr)
	}
	return firstErr
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User not found", map[string]interface{}{
				"user_id": id,
			})
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the admin account when missing and promotes an existing
// user with that email. It reports whether anything changed.
func (s *authService) EnsureAdmin(email, password, name string) (*model.User, bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, false, invalid("email", "Admin email and password are required")
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if user != nil {
		if user.IsAdmin() {
			return user, false, nil
		}
		user.Role = model.RoleAdmin
		if err := s.userRepo.Update(user); err != nil {
			return nil, false, err
		}
		logger.Info("Existing user promoted to admin", map[string]interface{}{
			"user_id": user.ID,
		})
		return user, true, nil
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		return nil, false, err
	}
	if blank(name) {
		name = "Administrator"
	}

	user = &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(name),
		Role:         model.RoleAdmin,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, false, err
	}

	logger.Info("Admin account created", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})
	return user, true, nil
}

func identityOf(user *model.User) util.Identity {
	return util.Identity{UserID: user.ID, Email: user.Email, Role: string(user.Role)}
}
