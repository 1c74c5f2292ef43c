package service

import (
	"context"
	"sync"
	"time"

	domain "placehub/internal/domain/placement"
	interfaces "placehub/internal/interfaces/infrastructure"
	"placehub/pkg/logger"
)

// DriveListener observes newly posted drives.
type DriveListener func(drive *domain.Drive)

// NotificationListener observes newly posted notifications.
type NotificationListener func(notification *domain.Notification)

// Watcher fans catalog and notification mutations out to subscribers inside
// the process. Callbacks run synchronously on the mutating goroutine, so
// they must be quick; anything slow belongs on the queue.
type Watcher struct {
	mu                    sync.RWMutex
	driveListeners        []DriveListener
	notificationListeners []NotificationListener
}

func NewWatcher() *Watcher {
	return &Watcher{}
}

func (w *Watcher) OnDrivePosted(listener DriveListener) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.driveListeners = append(w.driveListeners, listener)
}

func (w *Watcher) OnNotificationPosted(listener NotificationListener) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.notificationListeners = append(w.notificationListeners, listener)
}

func (w *Watcher) DrivePosted(drive *domain.Drive) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, listener := range w.driveListeners {
		listener(drive)
	}
}

func (w *Watcher) NotificationPosted(notification *domain.Notification) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, listener := range w.notificationListeners {
		listener(notification)
	}
}

// RefreshSummariesOnChange subscribes listeners that enqueue a summary
// refresh whenever a drive or notification is posted. Admin mutations push
// a refresh immediately; the Poller below remains the periodic fallback.
func RefreshSummariesOnChange(w *Watcher, queueService interfaces.QueueService) {
	enqueue := func() {
		job := interfaces.CacheSyncJob{
			JobType:   interfaces.JobTypeRefreshSummaries,
			Timestamp: time.Now(),
		}
		if err := queueService.EnqueueCacheSync(context.Background(), job); err != nil {
			logger.Warn("Failed to enqueue summary refresh on change: %v", err)
		}
	}

	w.OnDrivePosted(func(*domain.Drive) { enqueue() })
	w.OnNotificationPosted(func(*domain.Notification) { enqueue() })
}

// Poller periodically enqueues a summary refresh so the admin dashboard
// reads fresh aggregates even when no apply has happened recently. Start and
// Stop are idempotent and the poller can be restarted after a Stop.
type Poller struct {
	queueService interfaces.QueueService
	interval     time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(queueService interfaces.QueueService, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		queueService: queueService,
		interval:     interval,
	}
}

func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx, p.done)
	logger.Info("Summary poller started (interval %s)", p.interval)
}

func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel == nil {
		return
	}

	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
	logger.Info("Summary poller stopped")
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job := interfaces.CacheSyncJob{
				JobType:   interfaces.JobTypeRefreshSummaries,
				Timestamp: time.Now(),
			}
			if err := p.queueService.EnqueueCacheSync(ctx, job); err != nil && ctx.Err() == nil {
				logger.Warn("Summary poller failed to enqueue refresh: %v", err)
			}
		}
	}
}
