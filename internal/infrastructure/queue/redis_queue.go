package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	interfaces "placehub/internal/interfaces/infrastructure"
	"placehub/pkg/logger"

	"github.com/go-redis/redis/v8"
)

const (
	CacheSyncQueueKey     = "queue:cache_sync"
	DefaultDequeueTimeout = 2 * time.Second
	DefaultJobTimeout     = 30 * time.Second
	WorkerSleepDuration   = 50 * time.Millisecond
)

// RedisQueue backs the cache-sync queue with a Redis list, so pending
// refreshes survive a process restart. Workers long-poll with BRPOP.
type RedisQueue struct {
	client redis.UniversalClient

	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	mu      sync.RWMutex

	processor interfaces.CacheSyncProcessor
}

func NewRedisQueue(addr, password string, db, workers int) interfaces.QueueService {
	ctx, cancel := context.WithCancel(context.Background())

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisQueue{
		client:  rdb,
		workers: workers,
		ctx:     ctx,
		cancel:  cancel,
		started: false,
	}
}

func (rq *RedisQueue) SetProcessor(processor interfaces.CacheSyncProcessor) {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	rq.processor = processor
}

func (rq *RedisQueue) StartWorkers() {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	if rq.started {
		return
	}

	if rq.processor == nil {
		logger.Warn("Cache sync processor not set, workers cannot process jobs")
		return
	}

	logger.Info("Starting %d Redis queue workers", rq.workers)

	for i := 0; i < rq.workers; i++ {
		rq.wg.Add(1)
		go rq.cacheSyncWorker(i)
	}

	rq.started = true
	logger.Info("Redis queue workers started successfully")
}

func (rq *RedisQueue) StopWorkers() {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	if !rq.started {
		return
	}

	logger.Info("Stopping Redis queue workers...")
	rq.cancel()
	rq.wg.Wait()
	rq.started = false
	logger.Info("Redis queue workers stopped")
}

func (rq *RedisQueue) EnqueueCacheSync(ctx context.Context, job interfaces.CacheSyncJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal cache sync job: %w", err)
	}

	if err := rq.client.LPush(ctx, CacheSyncQueueKey, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue cache sync job: %w", err)
	}

	logger.Debug("Enqueued cache sync job: %s for student %s, drive %d",
		job.JobType, job.StudentID, job.DriveID)
	return nil
}

func (rq *RedisQueue) dequeueCacheSync(ctx context.Context) (*interfaces.CacheSyncJob, error) {
	result, err := rq.client.BRPop(ctx, DefaultDequeueTimeout, CacheSyncQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		if err == context.DeadlineExceeded {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue cache sync job: %w", err)
	}

	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected Redis BRPOP result format")
	}

	var job interfaces.CacheSyncJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache sync job: %w", err)
	}

	return &job, nil
}

func (rq *RedisQueue) cacheSyncWorker(workerID int) {
	defer rq.wg.Done()

	logger.Info("Redis cache sync worker %d started", workerID)

	for {
		select {
		case <-rq.ctx.Done():
			logger.Info("Redis cache sync worker %d stopped", workerID)
			return
		default:
			ctx, cancel := context.WithTimeout(context.Background(), DefaultDequeueTimeout)
			job, err := rq.dequeueCacheSync(ctx)
			cancel()

			if err != nil {
				logger.Error("Redis cache sync worker %d error: %v", workerID, err)
				time.Sleep(WorkerSleepDuration)
				continue
			}

			if job != nil {
				rq.processCacheSyncJob(workerID, job)
			} else {
				time.Sleep(WorkerSleepDuration)
			}
		}
	}
}

func (rq *RedisQueue) processCacheSyncJob(workerID int, job *interfaces.CacheSyncJob) {
	logger.Debug("Redis worker %d processing cache sync job: %s for student %s, drive %d",
		workerID, job.JobType, job.StudentID, job.DriveID)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultJobTimeout)
	defer cancel()

	if err := rq.processor.ProcessCacheSyncJob(ctx, *job); err != nil {
		logger.Error("Redis worker %d failed to process cache sync job %s: %v", workerID, job.JobType, err)
	}
}

var _ interfaces.QueueService = (*RedisQueue)(nil)
