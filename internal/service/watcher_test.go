package service

import (
	"context"
	"sync"
	"testing"
	"time"

	domain "placehub/internal/domain/placement"
	"placehub/internal/infrastructure/queue"
	interfaces "placehub/internal/interfaces/infrastructure"
	serviceInterfaces "placehub/internal/interfaces/service"
)

// recordingQueue captures enqueued jobs without processing them.
type recordingQueue struct {
	mu   sync.Mutex
	jobs []interfaces.CacheSyncJob
}

func (q *recordingQueue) EnqueueCacheSync(ctx context.Context, job interfaces.CacheSyncJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *recordingQueue) SetProcessor(processor interfaces.CacheSyncProcessor) {}
func (q *recordingQueue) StartWorkers()                                        {}
func (q *recordingQueue) StopWorkers()                                         {}

func (q *recordingQueue) recorded() []interfaces.CacheSyncJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]interfaces.CacheSyncJob(nil), q.jobs...)
}

func TestWatcher_DrivePosted(t *testing.T) {
	env := newTestEnv()

	var seen []*domain.Drive
	env.drives.watcher.OnDrivePosted(func(drive *domain.Drive) {
		seen = append(seen, drive)
	})

	drive := postTestDrive(t, env, 7.5)

	if len(seen) != 1 {
		t.Fatalf("Expected 1 drive callback, got %d", len(seen))
	}
	if seen[0].DriveID != drive.DriveID {
		t.Errorf("Expected callback for drive %d, got %d", drive.DriveID, seen[0].DriveID)
	}
}

func TestWatcher_NotificationPosted(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	drive := postTestDrive(t, env, 7.5)

	var seen []*domain.Notification
	env.notifications.watcher.OnNotificationPosted(func(n *domain.Notification) {
		seen = append(seen, n)
	})

	if _, err := env.notifications.PostNotification(ctx, &serviceInterfaces.PostNotificationRequest{
		DriveID: drive.DriveID,
		Message: "Shortlist released",
	}); err != nil {
		t.Fatalf("PostNotification failed: %v", err)
	}

	if len(seen) != 1 || seen[0].Message != "Shortlist released" {
		t.Errorf("Expected 1 notification callback, got %v", seen)
	}
}

func TestRefreshSummariesOnChange(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	q := &recordingQueue{}
	RefreshSummariesOnChange(env.drives.watcher, q)

	drive := postTestDrive(t, env, 7.5)
	if _, err := env.notifications.PostNotification(ctx, &serviceInterfaces.PostNotificationRequest{
		DriveID: drive.DriveID,
		Message: "Shortlist released",
	}); err != nil {
		t.Fatalf("PostNotification failed: %v", err)
	}

	jobs := q.recorded()
	if len(jobs) != 2 {
		t.Fatalf("Expected a refresh job per mutation, got %d", len(jobs))
	}
	for _, job := range jobs {
		if job.JobType != interfaces.JobTypeRefreshSummaries {
			t.Errorf("Expected refresh_summaries job, got %s", job.JobType)
		}
	}
}

func TestPoller_StartStop(t *testing.T) {
	q := queue.NewInMemoryQueue(10, 1)
	poller := NewPoller(q, 10*time.Millisecond)

	poller.Start()
	poller.Start() // idempotent

	time.Sleep(50 * time.Millisecond)
	poller.Stop()
	poller.Stop() // idempotent

	// Restartable after a stop.
	poller.Start()
	poller.Stop()
}
