package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orgpass/orgpass/internal/model"
)

const (
	userKeyPrefix = "user:"

	// DefaultUserTTL bounds how stale a cached profile can get even
	// if an invalidation is lost.
	DefaultUserTTL = 15 * time.Minute
)

// GetUser retrieves a cached user profile by external userId.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetUser(ctx context.Context, userID string) (*model.User, error) {
	data, err := c.client.Get(ctx, userKeyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode cached user: %w", err)
	}

	return &user, nil
}

// SetUser stores a user profile in cache.
// The password hash is excluded from serialization by the model's
// json tags, so it never reaches Redis through this path.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := c.client.Set(ctx, userKeyPrefix+user.UserID, data, DefaultUserTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return nil
}

// DeleteUser removes a user profile from cache.
// Called after every profile update.
func (c *Cache) DeleteUser(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, userKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}
	return nil
}
