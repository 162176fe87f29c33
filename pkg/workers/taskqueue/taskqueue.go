// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package taskqueue

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"k8s.io/klog/v2"
)

const (
	maxWorkerSize = 100
	minWorkerSize = 1
	bufferSize    = 200
)

// QueueController can Start/Stop the queue and see its status
type QueueController interface {
	// Name returns the queue name used in log messages
	Name() string
	// Start initializes worker's goroutines. The provided context ctx is used by worker goroutines
	Start(ctx context.Context)
	// Stop stops the worker's goroutines, it could be triggered internally on context cancellation
	Stop()
	// GetErrorList returns the errors, occurred during task processing
	GetErrorList() *multierror.Error
	// GetProcessedTasksCount returns the processed tasks count
	GetProcessedTasksCount() int
	// GetWaitingTasksCount returns waiting tasks count
	GetWaitingTasksCount() int
}

// WorkerFunc processes a single task
type WorkerFunc[T any] func(ctx context.Context, task T) error

// Queue dispatches tasks to a fixed number of worker goroutines
type Queue[T any] struct {
	name     string
	size     int
	workFunc WorkerFunc[T]
	// failFast stops processing on the first error
	failFast bool
	// tracks the number of tasks to wait for
	wg    *sync.WaitGroup
	tasks chan T

	errList          *multierror.Error
	initMux, stopMux sync.Once
	mux              sync.Mutex
	stopped          bool
	tc               atomic.Int32
}

// New creates an empty task queue
func New[T any](name string, size int, workFunc WorkerFunc[T], failFast bool, wg *sync.WaitGroup) (*Queue[T], error) {
	if size < minWorkerSize || size > maxWorkerSize {
		return nil, fmt.Errorf("task queue %s init fails: invalid workers size '%d', valid size interval is [%d,%d]", name, size, minWorkerSize, maxWorkerSize)
	}
	if workFunc == nil {
		return nil, fmt.Errorf("task queue %s init fails: worker func is nil", name)
	}
	if wg == nil {
		return nil, fmt.Errorf("task queue %s init fails: wait group is nil", name)
	}
	return &Queue[T]{
		name:     name,
		size:     size,
		workFunc: workFunc,
		failFast: failFast,
		wg:       wg,
		tasks:    make(chan T, bufferSize),
	}, nil
}

// Name returns the queue name
func (q *Queue[T]) Name() string {
	return q.name
}

// Start initializes worker's goroutines
func (q *Queue[T]) Start(ctx context.Context) {
	q.initMux.Do(func() {
		klog.V(6).Infof("starting %s queue\n", q.name)
		for i := 0; i < q.size; i++ {
			go q.work(ctx)
		}
	})
}

// Stop stops the worker's goroutines
func (q *Queue[T]) Stop() {
	q.stopMux.Do(func() {
		q.mux.Lock()
		defer q.mux.Unlock()
		klog.V(6).Infof("stopping %s queue\n", q.name)
		q.stopped = true
		close(q.tasks)
	})
}

// AddTask adds a task to the queue and increases the wait group counter.
// It returns false if the task is skipped because the queue is stopped.
func (q *Queue[T]) AddTask(task T) (added bool) {
	defer func() {
		if recover() != nil {
			q.wg.Done()
			klog.V(6).Infof("recover adding task %v in closed %s queue\n", task, q.name)
			added = false
		}
	}()
	if !q.shouldProcess() {
		klog.V(6).Infof("skipping task %v in %s queue\n", task, q.name)
		return false
	}
	q.wg.Add(1)
	q.tasks <- task
	return true
}

// GetErrorList returns the errors, occurred during task processing
func (q *Queue[T]) GetErrorList() *multierror.Error {
	q.mux.Lock()
	defer q.mux.Unlock()
	return q.errList
}

// GetProcessedTasksCount returns the processed tasks count
func (q *Queue[T]) GetProcessedTasksCount() int {
	return int(q.tc.Load())
}

// GetWaitingTasksCount returns waiting tasks count
func (q *Queue[T]) GetWaitingTasksCount() int {
	return len(q.tasks)
}

func (q *Queue[T]) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			klog.V(6).Infof("context is done for %s queue\n", q.name)
			q.Stop()
			q.drain()
			return
		case t, ok := <-q.tasks:
			if !ok {
				klog.V(6).Infof("task queue %s is stopped\n", q.name)
				return
			}
			q.runWorkFunc(ctx, t)
		}
	}
}

// drain releases the wait group for tasks that will never be processed
func (q *Queue[T]) drain() {
	for range q.tasks {
		q.wg.Done()
	}
}

func (q *Queue[T]) runWorkFunc(ctx context.Context, t T) {
	defer q.wg.Done()
	defer q.tc.Add(1)
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic in %s for task %v recovered: %v", q.name, t, r)
			klog.Warning(err.Error(), "\n", string(debug.Stack()))
			q.appendError(err)
		}
	}()
	if q.shouldProcess() {
		if err := q.workFunc(ctx, t); err != nil {
			q.appendError(err)
		}
	}
}

func (q *Queue[T]) appendError(err error) {
	q.mux.Lock()
	defer q.mux.Unlock()
	q.errList = multierror.Append(q.errList, err)
}

// shouldProcess is false once the queue is stopped or, with failFast, after the first error
func (q *Queue[T]) shouldProcess() bool {
	q.mux.Lock()
	defer q.mux.Unlock()
	return !q.stopped && !(q.failFast && q.errList != nil)
}
