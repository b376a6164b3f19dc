package service

import (
	"context"
	"testing"
	"time"

	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/internal/app/repository"
	"github.com/ikkim/brandsite-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T, denylist TokenDenylist) (AuthService, repository.UserRepository, *util.TokenService) {
	testDB := setupTestDB(t)

	userRepo := repository.NewUserRepository(testDB)
	tokens := util.NewTokenService("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(userRepo, tokens, denylist), userRepo, tokens
}

func TestAuthService_Register(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t, nil)

	tests := []struct {
		name      string
		input     RegisterInput
		wantErr   error
		wantField string
	}{
		{
			name:  "Valid registration",
			input: RegisterInput{Name: "Test User", Email: "Test@Example.com", Password: "password123"},
		},
		{
			name:    "Duplicate email",
			input:   RegisterInput{Name: "Another", Email: "test@example.com", Password: "password456"},
			wantErr: ErrEmailAlreadyExists,
		},
		{
			name:      "Missing name",
			input:     RegisterInput{Email: "x@example.com", Password: "password123"},
			wantField: "name",
		},
		{
			name:      "Invalid email",
			input:     RegisterInput{Name: "X", Email: "not-an-email", Password: "password123"},
			wantField: "email",
		},
		{
			name:      "Short password",
			input:     RegisterInput{Name: "X", Email: "y@example.com", Password: "123"},
			wantField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := authService.Register(tt.input)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			case tt.wantField != "":
				ve, ok := AsValidationError(err)
				require.True(t, ok, "expected validation error, got %v", err)
				assert.Equal(t, tt.wantField, ve.Field)
			default:
				require.NoError(t, err)
				assert.NotZero(t, user.ID)
				assert.Equal(t, "test@example.com", user.Email)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService, _, tokens := setupAuthServiceTest(t, nil)

	_, _, err := authService.EnsureAdmin("admin@example.com", "admin123", "Admin")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "Valid credentials", email: "admin@example.com", password: "admin123"},
		{name: "Wrong password", email: "admin@example.com", password: "wrongpassword", wantErr: ErrInvalidCredentials},
		{name: "Unknown email", email: "nobody@example.com", password: "admin123", wantErr: ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, pair, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, pair)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)

			claims, err := tokens.VerifyAccessToken(pair.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)
			assert.Equal(t, "admin", claims.Role)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	authService, _, tokens := setupAuthServiceTest(t, nil)

	_, _, err := authService.EnsureAdmin("admin@example.com", "admin123", "")
	require.NoError(t, err)
	_, pair, err := authService.Login("admin@example.com", "admin123")
	require.NoError(t, err)

	access, err := authService.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	_, err = tokens.VerifyAccessToken(access)
	assert.NoError(t, err)

	_, err = authService.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, util.ErrInvalidToken)

	_, err = authService.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, util.ErrInvalidToken)
}

func TestAuthService_LogoutRevokesTokens(t *testing.T) {
	denylist := newMemoryDenylist()
	authService, _, tokens := setupAuthServiceTest(t, denylist)

	_, _, err := authService.EnsureAdmin("admin@example.com", "admin123", "")
	require.NoError(t, err)
	_, pair, err := authService.Login("admin@example.com", "admin123")
	require.NoError(t, err)

	require.NoError(t, authService.Logout(context.Background(), pair.AccessToken, pair.RefreshToken))

	accessClaims, err := tokens.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	revoked, _ := denylist.IsTokenRevoked(context.Background(), accessClaims.ID)
	assert.True(t, revoked)
	assert.Len(t, denylist.revoked, 2)

	_, err = authService.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, util.ErrInvalidToken)
}

func TestAuthService_LogoutWithoutDenylist(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t, nil)
	assert.NoError(t, authService.Logout(context.Background(), "", ""))
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	authService, userRepo, _ := setupAuthServiceTest(t, nil)

	user, changed, err := authService.EnsureAdmin("admin@example.com", "admin123", "Admin")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, user.IsAdmin())

	again, changed, err := authService.EnsureAdmin("admin@example.com", "admin123", "Admin")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, user.ID, again.ID)

	// Promotes an existing plain user.
	plain, err := authService.Register(RegisterInput{Name: "Ops", Email: "ops@example.com", Password: "secret123"})
	require.NoError(t, err)
	_, changed, err = authService.EnsureAdmin("ops@example.com", "ignored", "")
	require.NoError(t, err)
	assert.True(t, changed)

	stored, err := userRepo.FindByID(plain.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, stored.Role)

	_, _, err = authService.EnsureAdmin("", "", "")
	_, ok := AsValidationError(err)
	assert.True(t, ok)
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t, nil)

	user, err := authService.Register(RegisterInput{Name: "Test", Email: "t@example.com", Password: "password123"})
	require.NoError(t, err)

	found, err := authService.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = authService.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// staleUserRepository misses existing rows on lookup, as a concurrent registration would.
type staleUserRepository struct {
	repository.UserRepository
}

func (staleUserRepository) FindByEmail(string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestAuthService_RegisterDuplicateCaughtByConstraint(t *testing.T) {
	testDB := setupTestDB(t)
	tokens := util.NewTokenService("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
	authService := NewAuthService(staleUserRepository{repository.NewUserRepository(testDB)}, tokens, nil)

	input := RegisterInput{Name: "Kim", Email: "kim@example.com", Password: "secret1"}
	_, err := authService.Register(input)
	require.NoError(t, err)

	_, err = authService.Register(input)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}
