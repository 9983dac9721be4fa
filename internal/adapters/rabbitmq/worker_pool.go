package rabbitmq

import "sync"

// WorkerPool bounds the number of deliveries processed concurrently.
// Together with the channel prefetch it caps in-flight work per consumer
// process.
type WorkerPool struct {
	jobs     chan func()
	wg       sync.WaitGroup
	stopOnce sync.Once

	mu      sync.RWMutex
	stopped bool
}

// NewWorkerPool starts a pool with the given number of workers.
func NewWorkerPool(workers int) *WorkerPool {
	pool := &WorkerPool{
		jobs: make(chan func(), workers),
	}

	for range workers {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

func (pool *WorkerPool) worker() {
	defer pool.wg.Done()

	for job := range pool.jobs {
		job()
	}
}

// Submit hands a job to the pool. Blocks while all workers are busy and the
// buffer is full; returns without running the job once the pool is stopped.
func (pool *WorkerPool) Submit(job func()) {
	pool.mu.RLock()
	defer pool.mu.RUnlock()

	if pool.stopped {
		return
	}

	pool.jobs <- job
}

// Stop rejects further jobs, finishes the queued ones and waits for running
// workers to drain.
func (pool *WorkerPool) Stop() {
	pool.stopOnce.Do(func() {
		pool.mu.Lock()
		pool.stopped = true
		pool.mu.Unlock()

		close(pool.jobs)
	})
	pool.wg.Wait()
}
