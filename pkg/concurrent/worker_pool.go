package concurrent

import (
	"fmt"
	"sync"
	"time"
)

// ErrScheduleTimeout returned by ScheduleTimeout when no worker became free
// within the timeout.
var ErrScheduleTimeout = fmt.Errorf("schedule error: timed out")

type JobFunc[T any, G any] func(job T) G

// WorkerPool fixed size goroutine pool with two faces. the batch face
// (Start/AddJob/Wait/CollectResults) fans jobs out over numWorkers goroutines
// and collects their results. the scheduler face (Spawn/Schedule/
// ScheduleTimeout) runs ad hoc tasks for the websocket server without growing
// beyond numWorkers goroutines.
// ref: https://sergey.kamardin.org/articles/million-websocket-and-go/
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup

	sem  chan struct{}
	work chan func()
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
		work:       make(chan func(), jobQueueSize),
	}
}

func (wp *WorkerPool[any, G]) worker(id int, jobFunc JobFunc[any, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		res := jobFunc(job)
		wp.results <- res
	}
}

func (wp *WorkerPool[any, G]) Start(jobFunc JobFunc[any, G]) {
	for i := 1; i <= wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i, jobFunc)
	}
}

func (wp *WorkerPool[any, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[any, G]) AddJob(job any) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[any, G]) CollectResults() chan G {
	return wp.results
}

func (wp *WorkerPool[any, G]) Close() {
	close(wp.jobQueue)
	close(wp.work)
}

// Spawn start spawn goroutines waiting for scheduled tasks. call it once
// before Schedule/ScheduleTimeout. spawn is capped at numWorkers.
func (wp *WorkerPool[T, G]) Spawn(spawn int) {
	if wp.sem == nil {
		wp.sem = make(chan struct{}, wp.numWorkers)
	}
	for i := 0; i < spawn && i < wp.numWorkers; i++ {
		wp.sem <- struct{}{}
		go wp.scheduledWorker(func() {})
	}
}

// Schedule run task on a pool goroutine, blocking until one is free.
func (wp *WorkerPool[T, G]) Schedule(task func()) {
	wp.schedule(task, nil)
}

// ScheduleTimeout same as Schedule but gives up with ErrScheduleTimeout when
// every worker stays busy for the whole timeout.
func (wp *WorkerPool[T, G]) ScheduleTimeout(timeout time.Duration, task func()) error {
	return wp.schedule(task, time.After(timeout))
}

func (wp *WorkerPool[T, G]) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case wp.work <- task:
		return nil
	case wp.sem <- struct{}{}:
		go wp.scheduledWorker(task)
		return nil
	}
}

func (wp *WorkerPool[T, G]) scheduledWorker(task func()) {
	defer func() { <-wp.sem }()

	task()
	for task := range wp.work {
		task()
	}
}
