package cache

import (
	"context"
	"sync"
	"time"

	interfaces "placehub/internal/interfaces/infrastructure"

	"github.com/google/uuid"
)

// MemoryCache is the process-local CacheService used by tests and by
// single-node deployments that run without Redis. Expiry is checked lazily
// on read.
type MemoryCache struct {
	mu      sync.RWMutex
	applied map[uuid.UUID]appliedEntry
	blobs   map[string]blobEntry
}

type appliedEntry struct {
	driveIDs  map[int64]struct{}
	expiresAt time.Time
}

type blobEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		applied: make(map[uuid.UUID]appliedEntry),
		blobs:   make(map[string]blobEntry),
	}
}

func expired(at time.Time) bool {
	return !at.IsZero() && time.Now().After(at)
}

func expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}

func (c *MemoryCache) GetAppliedDriveIDs(ctx context.Context, studentID uuid.UUID) ([]int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.applied[studentID]
	if !ok || expired(entry.expiresAt) {
		return nil, interfaces.ErrCacheMiss
	}
	driveIDs := make([]int64, 0, len(entry.driveIDs))
	for id := range entry.driveIDs {
		driveIDs = append(driveIDs, id)
	}
	return driveIDs, nil
}

func (c *MemoryCache) SetAppliedDriveIDs(ctx context.Context, studentID uuid.UUID, driveIDs []int64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	set := make(map[int64]struct{}, len(driveIDs))
	for _, id := range driveIDs {
		set[id] = struct{}{}
	}
	c.applied[studentID] = appliedEntry{driveIDs: set, expiresAt: expiry(ttl)}
	return nil
}

func (c *MemoryCache) AddAppliedDriveID(ctx context.Context, studentID uuid.UUID, driveID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.applied[studentID]
	if !ok || expired(entry.expiresAt) {
		return nil
	}
	entry.driveIDs[driveID] = struct{}{}
	return nil
}

func (c *MemoryCache) InvalidateAppliedDriveIDs(ctx context.Context, studentID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.applied, studentID)
	return nil
}

func (c *MemoryCache) GetProfile(ctx context.Context, studentID uuid.UUID) ([]byte, error) {
	return c.getBlob("profile:" + studentID.String())
}

func (c *MemoryCache) SetProfile(ctx context.Context, studentID uuid.UUID, data []byte, ttl time.Duration) error {
	return c.setBlob("profile:"+studentID.String(), data, ttl)
}

func (c *MemoryCache) InvalidateProfile(ctx context.Context, studentID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.blobs, "profile:"+studentID.String())
	return nil
}

func (c *MemoryCache) GetDriveSummaries(ctx context.Context) ([]byte, error) {
	return c.getBlob("reports:drive_summaries")
}

func (c *MemoryCache) SetDriveSummaries(ctx context.Context, data []byte, ttl time.Duration) error {
	return c.setBlob("reports:drive_summaries", data, ttl)
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	data, err := c.getBlob("kv:" + key)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.setBlob("kv:"+key, []byte(value), ttl)
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.blobs, "kv:"+key)
	return nil
}

func (c *MemoryCache) Health(ctx context.Context) error {
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}

func (c *MemoryCache) getBlob(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.blobs[key]
	if !ok || expired(entry.expiresAt) {
		return nil, interfaces.ErrCacheMiss
	}
	out := make([]byte, len(entry.data))
	copy(out, entry.data)
	return out, nil
}

func (c *MemoryCache) setBlob(key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	c.blobs[key] = blobEntry{data: stored, expiresAt: expiry(ttl)}
	return nil
}

var _ interfaces.CacheService = (*MemoryCache)(nil)
