package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CacheService holds derived views of the ledger and catalog. Everything in
// it is rebuildable from the repositories; a miss or a corrupted entry is
// never an error for callers, only a fallback to the source of truth.
type CacheService interface {
	// Applied-drive sets, derived from the application ledger.
	GetAppliedDriveIDs(ctx context.Context, studentID uuid.UUID) ([]int64, error)
	SetAppliedDriveIDs(ctx context.Context, studentID uuid.UUID, driveIDs []int64, ttl time.Duration) error
	AddAppliedDriveID(ctx context.Context, studentID uuid.UUID, driveID int64) error
	InvalidateAppliedDriveIDs(ctx context.Context, studentID uuid.UUID) error

	// Profile blobs.
	GetProfile(ctx context.Context, studentID uuid.UUID) ([]byte, error)
	SetProfile(ctx context.Context, studentID uuid.UUID, data []byte, ttl time.Duration) error
	InvalidateProfile(ctx context.Context, studentID uuid.UUID) error

	// Drive summary blobs for the admin dashboard poll.
	GetDriveSummaries(ctx context.Context) ([]byte, error)
	SetDriveSummaries(ctx context.Context, data []byte, ttl time.Duration) error

	// Generic operations.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	Health(ctx context.Context) error
	Close() error
}

// ErrCacheMiss is returned by cache reads when the key is absent or its
// payload cannot be decoded.
type cacheMissError struct{}

func (cacheMissError) Error() string { return "cache miss" }

var ErrCacheMiss error = cacheMissError{}
