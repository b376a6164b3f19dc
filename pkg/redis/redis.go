package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ikkim/brandsite-backend/config"
	"github.com/ikkim/brandsite-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// ErrDisabled is returned by helpers when no client has been initialized.
var ErrDisabled = errors.New("redis is not enabled")

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		c.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	client = c
	logger.Info("Redis connection established successfully")
	return nil
}

// Use installs an already constructed client.
func Use(c *redis.Client) {
	client = c
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Enabled reports whether a client is installed.
func Enabled() bool {
	return client != nil
}

// Close closes the Redis connection
func Close() error {
	if client == nil {
		return nil
	}
	logger.Info("Closing Redis connection")
	err := client.Close()
	client = nil
	return err
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("auth:revoked:%s", tokenID)
}

// RevokeToken denylists a token id until expiry.
func RevokeToken(ctx context.Context, tokenID string, expiry time.Duration) error {
	if client == nil {
		return ErrDisabled
	}
	if expiry <= 0 {
		return nil
	}

	logger.Debug("Adding token to denylist", map[string]interface{}{
		"expiry": expiry.String(),
	})

	if err := client.Set(ctx, revokedKey(tokenID), "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to denylist token", err)
		return err
	}
	return nil
}

// IsTokenRevoked checks if a token id is in the denylist
func IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if client == nil {
		return false, nil
	}

	val, err := client.Get(ctx, revokedKey(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token denylist", err)
		return false, err
	}
	return val == "revoked", nil
}

// IncrWindow bumps the counter for key and starts its window on the first hit.
// It returns the count and the time left in the window.
func IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if client == nil {
		return 0, 0, ErrDisabled
	}

	rk := fmt.Sprintf("ratelimit:%s", key)
	count, err := client.Incr(ctx, rk).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := client.Expire(ctx, rk, window).Err(); err != nil {
			return 0, 0, err
		}
	}
	ttl, err := client.PTTL(ctx, rk).Result()
	if err != nil {
		return 0, 0, err
	}
	if ttl < 0 {
		// Counter lost its expiry; restart the window.
		if err := client.Expire(ctx, rk, window).Err(); err != nil {
			return 0, 0, err
		}
		ttl = window
	}
	return count, ttl, nil
}

func ticketKey(ticket string) string {
	return fmt.Sprintf("ws:ticket:%s", ticket)
}

// StoreTicket saves a single-use ticket.
func StoreTicket(ctx context.Context, ticket, value string, ttl time.Duration) error {
	if client == nil {
		return ErrDisabled
	}
	return client.Set(ctx, ticketKey(ticket), value, ttl).Err()
}

// ConsumeTicket reads and deletes a ticket. ok is false when it is unknown or expired.
func ConsumeTicket(ctx context.Context, ticket string) (string, bool, error) {
	if client == nil {
		return "", false, ErrDisabled
	}
	val, err := client.GetDel(ctx, ticketKey(ticket)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Denylist exposes the token helpers as a value for callers that take an interface.
type Denylist struct{}

func (Denylist) RevokeToken(ctx context.Context, tokenID string, expiry time.Duration) error {
	return RevokeToken(ctx, tokenID, expiry)
}

func (Denylist) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	return IsTokenRevoked(ctx, tokenID)
}
