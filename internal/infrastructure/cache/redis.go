package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	interfaces "placehub/internal/interfaces/infrastructure"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCache{
		client: rdb,
	}
}

func appliedKey(studentID uuid.UUID) string {
	return fmt.Sprintf("student:applied:%s", studentID.String())
}

func profileKey(studentID uuid.UUID) string {
	return fmt.Sprintf("student:profile:%s", studentID.String())
}

const driveSummariesKey = "reports:drive_summaries"

// GetAppliedDriveIDs reads the derived applied-drive set. An absent key is a
// miss, as is any member that fails to parse as a drive ID; the set is then
// rebuilt from the ledger by the caller.
func (r *RedisCache) GetAppliedDriveIDs(ctx context.Context, studentID uuid.UUID) ([]int64, error) {
	key := appliedKey(studentID)

	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read applied set: %w", err)
	}
	if len(members) == 0 {
		exists, err := r.client.Exists(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check applied set: %w", err)
		}
		if exists == 0 {
			return nil, interfaces.ErrCacheMiss
		}
		return []int64{}, nil
	}

	driveIDs := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			return nil, interfaces.ErrCacheMiss
		}
		if id == 0 {
			// Sentinel member written by SetAppliedDriveIDs; drive IDs start at 1.
			continue
		}
		driveIDs = append(driveIDs, id)
	}
	return driveIDs, nil
}

// SetAppliedDriveIDs replaces the applied-drive set atomically via a staging
// key and RENAME, so readers never see a half-built set.
func (r *RedisCache) SetAppliedDriveIDs(ctx context.Context, studentID uuid.UUID, driveIDs []int64, ttl time.Duration) error {
	key := appliedKey(studentID)
	staging := key + ":staging"

	members := make([]interface{}, 0, len(driveIDs)+1)
	// Sentinel member so an empty set is distinguishable from a missing key.
	members = append(members, "0")
	for _, id := range driveIDs {
		members = append(members, strconv.FormatInt(id, 10))
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, staging)
	pipe.SAdd(ctx, staging, members...)
	pipe.Expire(ctx, staging, ttl)
	pipe.Rename(ctx, staging, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace applied set: %w", err)
	}
	return nil
}

func (r *RedisCache) AddAppliedDriveID(ctx context.Context, studentID uuid.UUID, driveID int64) error {
	key := appliedKey(studentID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check applied set: %w", err)
	}
	if exists == 0 {
		// Never create a partial set; the sync job will build the full one.
		return nil
	}

	if err := r.client.SAdd(ctx, key, strconv.FormatInt(driveID, 10)).Err(); err != nil {
		return fmt.Errorf("failed to add to applied set: %w", err)
	}
	return nil
}

func (r *RedisCache) InvalidateAppliedDriveIDs(ctx context.Context, studentID uuid.UUID) error {
	if err := r.client.Del(ctx, appliedKey(studentID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate applied set: %w", err)
	}
	return nil
}

func (r *RedisCache) GetProfile(ctx context.Context, studentID uuid.UUID) ([]byte, error) {
	val, err := r.client.Get(ctx, profileKey(studentID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, interfaces.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get profile from cache: %w", err)
	}
	return []byte(val), nil
}

func (r *RedisCache) SetProfile(ctx context.Context, studentID uuid.UUID, data []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, profileKey(studentID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set profile in cache: %w", err)
	}
	return nil
}

func (r *RedisCache) InvalidateProfile(ctx context.Context, studentID uuid.UUID) error {
	if err := r.client.Del(ctx, profileKey(studentID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate profile: %w", err)
	}
	return nil
}

func (r *RedisCache) GetDriveSummaries(ctx context.Context) ([]byte, error) {
	val, err := r.client.Get(ctx, driveSummariesKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, interfaces.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get drive summaries: %w", err)
	}
	return []byte(val), nil
}

func (r *RedisCache) SetDriveSummaries(ctx context.Context, data []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, driveSummariesKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set drive summaries: %w", err)
	}
	return nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", interfaces.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

var _ interfaces.CacheService = (*RedisCache)(nil)
