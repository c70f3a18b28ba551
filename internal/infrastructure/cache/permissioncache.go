package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/claimdesk/claimdesk/internal/domain/permission"
)

const (
	// PermissionCachePrefix is the Redis key prefix for resolved permission sets
	PermissionCachePrefix = "claimdesk:perm:"
	// PermissionCacheTTL bounds how long a resolved set survives without invalidation
	PermissionCacheTTL = 10 * time.Minute

	scanBatch = 200
)

// PermissionCache stores resolved permission sets keyed by role and user.
type PermissionCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewPermissionCache(client *redis.Client, ttl time.Duration) *PermissionCache {
	if ttl <= 0 {
		ttl = PermissionCacheTTL
	}
	return &PermissionCache{
		client: client,
		prefix: PermissionCachePrefix,
		ttl:    ttl,
	}
}

// key is <prefix><role>|<user>. The user part may be empty.
func (c *PermissionCache) key(role permission.RoleKey, user permission.UserKey) string {
	return c.prefix + role.String() + "|" + user.String()
}

func (c *PermissionCache) Get(ctx context.Context, role permission.RoleKey, user permission.UserKey) (permission.PermissionSet, bool, error) {
	data, err := c.client.Get(ctx, c.key(role, user)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return permission.PermissionSet{}, false, nil
		}
		return permission.PermissionSet{}, false, fmt.Errorf("failed to read permission cache: %w", err)
	}

	var flags map[string]bool
	if err := json.Unmarshal(data, &flags); err != nil {
		return permission.PermissionSet{}, false, fmt.Errorf("failed to decode cached permissions: %w", err)
	}
	return permission.PermissionSetFromMap(flags), true, nil
}

func (c *PermissionCache) Set(ctx context.Context, role permission.RoleKey, user permission.UserKey, set permission.PermissionSet) error {
	data, err := json.Marshal(set.ToMap())
	if err != nil {
		return fmt.Errorf("failed to encode permissions: %w", err)
	}
	if err := c.client.Set(ctx, c.key(role, user), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write permission cache: %w", err)
	}
	return nil
}

// InvalidateUser drops every cached set for user, whatever the role.
func (c *PermissionCache) InvalidateUser(ctx context.Context, user permission.UserKey) error {
	return c.deleteMatching(ctx, c.prefix+"*|"+user.String())
}

func (c *PermissionCache) InvalidateAll(ctx context.Context) error {
	return c.deleteMatching(ctx, c.prefix+"*")
}

func (c *PermissionCache) deleteMatching(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("failed to scan permission cache: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete permission cache keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
