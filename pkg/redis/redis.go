package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/historin/historin-backend/config"
	"github.com/historin/historin-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes the Redis connection. Redis is optional; it only backs
// admin session revocation.
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return nil
}

// GetClient returns the Redis client instance (nil when Redis is disabled)
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection")
		return client.Close()
	}
	return nil
}

// RevokeSession marks an admin session id as logged out until its TTL would
// have expired anyway.
func RevokeSession(ctx context.Context, sessionID string, expiry time.Duration) error {
	if client == nil {
		return nil
	}

	key := fmt.Sprintf("revoked_session:%s", sessionID)
	if err := client.Set(ctx, key, "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to revoke session", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}

	logger.Debug("Session revoked", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}

// IsSessionRevoked checks whether a session id was revoked. Without Redis it
// always reports false.
func IsSessionRevoked(ctx context.Context, sessionID string) (bool, error) {
	if client == nil {
		return false, nil
	}

	key := fmt.Sprintf("revoked_session:%s", sessionID)
	_, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
