package ecs

import (
	"errors"
	"fmt"
)

var ErrTaskPanic = errors.New("ecs: task panicked")

// Task is deferred work run by the Scheduler at a tick boundary.
type Task interface {
	Run() error
}

// TaskFunc adapts a function to Task.
type TaskFunc func() error

func (f TaskFunc) Run() error { return f() }

// TaskQueue holds pending tasks in execution order.
type TaskQueue interface {
	Push(t Task)
	// Drain returns every pending task and leaves the queue empty.
	Drain() []Task
	Len() int
}

// FIFOQueue is the default TaskQueue.
type FIFOQueue struct {
	items []Task
}

func (q *FIFOQueue) Push(t Task) {
	q.items = append(q.items, t)
}

func (q *FIFOQueue) Drain() []Task {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *FIFOQueue) Len() int {
	return len(q.items)
}

// Scheduler defers tasks to the next tick. RunTask never executes anything;
// Tick runs only what was pending when it started, so a task enqueued during
// tick N runs on tick N+1 at the earliest. Queued tasks cannot be cancelled.
type Scheduler struct {
	queue   TaskQueue
	onError func(err error)
	ticks   uint64
}

// NewScheduler creates a scheduler. A nil queue selects a FIFOQueue; onError
// receives every task failure and may be nil.
func NewScheduler(queue TaskQueue, onError func(err error)) *Scheduler {
	if queue == nil {
		queue = &FIFOQueue{}
	}
	return &Scheduler{queue: queue, onError: onError}
}

// RunTask enqueues t for a later tick.
func (s *Scheduler) RunTask(t Task) {
	if s == nil || t == nil {
		return
	}
	s.queue.Push(t)
}

// Tick runs the tasks that were pending before this call and returns how
// many ran. A failing task does not stop the ones after it.
func (s *Scheduler) Tick() int {
	if s == nil {
		return 0
	}
	s.ticks++
	tasks := s.queue.Drain()
	for _, t := range tasks {
		if err := s.run(t); err != nil && s.onError != nil {
			s.onError(err)
		}
	}
	return len(tasks)
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	if s == nil {
		return 0
	}
	return s.queue.Len()
}

// Ticks returns how many times Tick has been called.
func (s *Scheduler) Ticks() uint64 {
	if s == nil {
		return 0
	}
	return s.ticks
}

func (s *Scheduler) run(t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %T: %v", ErrTaskPanic, t, r)
		}
	}()
	if err := t.Run(); err != nil {
		return fmt.Errorf("ecs: task %T: %w", t, err)
	}
	return nil
}
