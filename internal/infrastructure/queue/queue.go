package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	interfaces "placehub/internal/interfaces/infrastructure"
	"placehub/pkg/logger"
)

// Queue is the channel-backed QueueService. Workers drain cache-sync jobs
// and hand them to the processor; a full buffer drops the job, which only
// delays a cache refresh.
type Queue struct {
	cacheSyncQueue chan interfaces.CacheSyncJob

	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	mu      sync.RWMutex

	processor interfaces.CacheSyncProcessor
}

func NewInMemoryQueue(bufferSize, workers int) interfaces.QueueService {
	ctx, cancel := context.WithCancel(context.Background())

	return &Queue{
		cacheSyncQueue: make(chan interfaces.CacheSyncJob, bufferSize),
		workers:        workers,
		ctx:            ctx,
		cancel:         cancel,
		started:        false,
	}
}

func (q *Queue) SetProcessor(processor interfaces.CacheSyncProcessor) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.processor = processor
}

func (q *Queue) StartWorkers() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started {
		return
	}

	if q.processor == nil {
		logger.Warn("Cache sync processor not set, workers cannot process jobs")
		return
	}

	logger.Info("Starting %d queue workers", q.workers)

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.cacheSyncWorker(i)
	}

	q.started = true
	logger.Info("Queue workers started successfully")
}

func (q *Queue) StopWorkers() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.started {
		return
	}

	logger.Info("Stopping queue workers...")
	q.cancel()
	q.wg.Wait()
	q.started = false
	logger.Info("Queue workers stopped")
}

func (q *Queue) EnqueueCacheSync(ctx context.Context, job interfaces.CacheSyncJob) error {
	select {
	case q.cacheSyncQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("cache sync queue is full")
	}
}

func (q *Queue) cacheSyncWorker(workerID int) {
	defer q.wg.Done()

	logger.Info("Cache sync worker %d started", workerID)

	for {
		select {
		case <-q.ctx.Done():
			logger.Info("Cache sync worker %d stopped", workerID)
			return
		case job := <-q.cacheSyncQueue:
			q.processCacheSyncJob(workerID, job)
		}
	}
}

func (q *Queue) processCacheSyncJob(workerID int, job interfaces.CacheSyncJob) {
	logger.Debug("Worker %d processing cache sync job: %s for student %s, drive %d",
		workerID, job.JobType, job.StudentID, job.DriveID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := q.processor.ProcessCacheSyncJob(ctx, job); err != nil {
		logger.Error("Worker %d failed to process cache sync job %s: %v", workerID, job.JobType, err)
	}
}

var _ interfaces.QueueService = (*Queue)(nil)
