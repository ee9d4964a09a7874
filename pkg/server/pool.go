package server

import (
	"context"
	"errors"
	"time"

	"github.com/alitto/pond"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrPoolClosed = errors.New("worker pool is closed")

// how often Submit retries while the queue is full
const submitRetryInterval = time.Millisecond

// WorkerPool runs submitted work on a fixed number of workers fed from a
// bounded queue.
type WorkerPool struct {
	pool *pond.WorkerPool
}

// NewWorkerPool creates a pool of workers goroutines. queueSize bounds the
// number of tasks waiting for a worker; 0 means workers.
func NewWorkerPool(workers, queueSize int, log logrus.FieldLogger) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}
	return &WorkerPool{
		pool: pond.New(
			workers,
			queueSize,
			pond.MinWorkers(workers),
			pond.PanicHandler(func(p interface{}) {
				log.Errorf("worker task panicked: %v", p)
			}),
		),
	}
}

// Submit queues fn, waiting for room until ctx is done.
func (p *WorkerPool) Submit(ctx context.Context, fn func()) error {
	var ticker *time.Ticker
	for {
		if p.pool.Stopped() {
			return ErrPoolClosed
		}
		if p.pool.TrySubmit(fn) {
			return nil
		}
		if ticker == nil {
			ticker = time.NewTicker(submitRetryInterval)
			defer ticker.Stop()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Active returns the number of tasks running right now.
func (p *WorkerPool) Active() int {
	return p.pool.RunningWorkers() - p.pool.IdleWorkers()
}

// Size returns the number of workers.
func (p *WorkerPool) Size() int {
	return p.pool.MaxWorkers()
}

// Capacity returns the number of tasks that may wait for a worker.
func (p *WorkerPool) Capacity() int {
	return p.pool.MaxCapacity()
}

// Close stops accepting work, runs what is already queued and waits for the
// workers to exit. Calling it again has no effect.
func (p *WorkerPool) Close() {
	p.pool.StopAndWait()
}

// UnaryServerInterceptor runs each call on the pool. The caller stops
// waiting when its context ends; a handler that already started still runs
// to completion.
func (p *WorkerPool) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	type result struct {
		resp interface{}
		err  error
	}

	return func(
		ctx context.Context,
		req interface{},
		_ *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		done := make(chan result, 1)
		err := p.Submit(ctx, func() {
			if ctx.Err() != nil {
				done <- result{err: ctx.Err()}
				return
			}
			resp, err := handler(ctx, req)
			done <- result{resp: resp, err: err}
		})
		if errors.Is(err, ErrPoolClosed) {
			return nil, status.Error(codes.Unavailable, err.Error())
		}
		if err != nil {
			return nil, status.FromContextError(err).Err()
		}

		select {
		case r := <-done:
			return r.resp, r.err
		case <-ctx.Done():
			return nil, status.FromContextError(ctx.Err()).Err()
		}
	}
}
