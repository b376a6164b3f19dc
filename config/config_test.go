package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("NEXTAUTH_SECRET", "")
	t.Setenv("REFRESH_SECRET", "")

	cfg, err := Load()
	assert.ErrorIs(t, err, ErrMissingSecret)
	assert.Nil(t, cfg)
}

func TestLoad_DevelopmentGeneratesEphemeralSecrets(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("NEXTAUTH_SECRET", "")
	t.Setenv("REFRESH_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Len(t, cfg.JWT.AccessSecret, 64)
	assert.Len(t, cfg.JWT.RefreshSecret, 64)
	assert.NotEqual(t, cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret)
}

func TestLoad_NextAuthSecretBacksAccessSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("NEXTAUTH_SECRET", "nextauth-secret")
	t.Setenv("REFRESH_SECRET", "refresh-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "nextauth-secret", cfg.JWT.AccessSecret)
	assert.Equal(t, "refresh-secret", cfg.JWT.RefreshSecret)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "access")
	t.Setenv("REFRESH_SECRET", "refresh")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRY", "")
	t.Setenv("CATALOG_FALLBACK_PARTNERSHIP_CATEGORY_ID", "")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpiry)
	assert.Equal(t, uint(1), cfg.Catalog.FallbackPartnershipCategoryID)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, int64(5<<20), cfg.Storage.MaxUploadSize)
}

func TestParseSlice(t *testing.T) {
	assert.Empty(t, parseSlice(""))
	assert.Equal(t, []string{"a", "b"}, parseSlice("a,,b,"))
}

func TestLoad_FallbackCategoryIDValidation(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "access")
	t.Setenv("REFRESH_SECRET", "refresh")

	for _, raw := range []string{"-1", "0", "abc", "1.5"} {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("CATALOG_FALLBACK_PARTNERSHIP_CATEGORY_ID", raw)

			cfg, err := Load()
			assert.ErrorIs(t, err, ErrInvalidID)
			assert.Nil(t, cfg)
		})
	}

	t.Setenv("CATALOG_FALLBACK_PARTNERSHIP_CATEGORY_ID", "7")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint(7), cfg.Catalog.FallbackPartnershipCategoryID)
}
