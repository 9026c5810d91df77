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
	orgKeyPrefix = "org:"

	// DefaultOrgTTL is the TTL for cached organisation data.
	// Organisations are immutable after creation, so this is mostly
	// a safety valve.
	DefaultOrgTTL = time.Hour
)

// GetOrganization retrieves a cached organisation by external orgId.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetOrganization(ctx context.Context, orgID string) (*model.Organization, error) {
	data, err := c.client.Get(ctx, orgKeyPrefix+orgID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var org model.Organization
	if err := json.Unmarshal(data, &org); err != nil {
		return nil, fmt.Errorf("failed to decode cached organization: %w", err)
	}

	return &org, nil
}

// SetOrganization stores an organisation in cache.
func (c *Cache) SetOrganization(ctx context.Context, org *model.Organization) error {
	data, err := json.Marshal(org)
	if err != nil {
		return fmt.Errorf("failed to encode organization: %w", err)
	}

	if err := c.client.Set(ctx, orgKeyPrefix+org.OrgID, data, DefaultOrgTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache organization: %w", err)
	}

	return nil
}

// DeleteOrganization removes an organisation from cache.
func (c *Cache) DeleteOrganization(ctx context.Context, orgID string) error {
	if err := c.client.Del(ctx, orgKeyPrefix+orgID).Err(); err != nil {
		return fmt.Errorf("failed to delete organization from cache: %w", err)
	}
	return nil
}
