package rabbitmq

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool_RunsSubmittedJobs(t *testing.T) {
	pool := NewWorkerPool(4)

	var executed atomic.Int64
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			executed.Add(1)
		})
	}

	wg.Wait()
	pool.Stop()
	assert.Equal(t, int64(100), executed.Load())
}

func TestWorkerPool_StopDrainsQueuedJobs(t *testing.T) {
	pool := NewWorkerPool(2)

	var executed atomic.Int64
	for range 10 {
		pool.Submit(func() { executed.Add(1) })
	}

	pool.Stop()
	assert.Equal(t, int64(10), executed.Load())
}

func TestWorkerPool_SubmitAfterStopIsNoop(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Stop()

	var executed atomic.Int64
	pool.Submit(func() { executed.Add(1) })
	assert.Zero(t, executed.Load())
}

func TestWorkerPool_StopIsIdempotent(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Stop()
	pool.Stop()
}
