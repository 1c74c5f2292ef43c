package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type JobType string

const (
	// JobTypeSyncAppliedDrives rebuilds a student's applied-drive cache set
	// from the ledger after an apply.
	JobTypeSyncAppliedDrives JobType = "sync_applied_drives"
	// JobTypeRefreshSummaries recomputes the cached admin drive summaries.
	JobTypeRefreshSummaries JobType = "refresh_summaries"
)

// CacheSyncJob asks a worker to refresh one derived view. Losing a job only
// degrades cache freshness; the ledger stays correct either way.
type CacheSyncJob struct {
	JobType   JobType   `json:"job_type"`
	StudentID uuid.UUID `json:"student_id,omitempty"`
	DriveID   int64     `json:"drive_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CacheSyncProcessor is implemented by the service that owns derived caches.
type CacheSyncProcessor interface {
	ProcessCacheSyncJob(ctx context.Context, job CacheSyncJob) error
}

type QueueService interface {
	EnqueueCacheSync(ctx context.Context, job CacheSyncJob) error
	SetProcessor(processor CacheSyncProcessor)
	StartWorkers()
	StopWorkers()
}
