package serialqueue

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Queue routes immediate and delayed tasks to its Executor and guarantees
// that at most one task is ever mid-execution, regardless of how many
// goroutines submit work. Submission methods never block (RunSync is the
// documented exception) and are safe for concurrent use.
type Queue struct {
	executor Executor
	name     string
	logger   *slog.Logger

	mu      sync.Mutex
	pending []*ScheduledTask

	// inProgress is true iff the current executor task went through
	// enterCheckedOperation. Toggled only on the lane, read from
	// submitter goroutines for the reentrancy check.
	inProgress atomic.Bool
}

// New creates a queue on top of the given execution substrate.
func New(executor Executor, opts ...Option) (*Queue, error) {
	if executor == nil {
		return nil, ErrNilExecutor
	}

	// Default options
	options := &options{
		name:   "serialqueue-" + uuid.NewString()[:8],
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		opt(options)
	}

	return &Queue{
		executor: executor,
		name:     options.name,
		logger:   options.logger,
	}, nil
}

// Name returns the queue's diagnostic label.
func (q *Queue) Name() string {
	return q.name
}

// Enqueue submits a task for immediate serialised execution. It must not be
// called from a task already running on this queue: queuing already-serial
// work back onto itself indicates a bug, and doing so panics with
// ErrReentrantEnqueue. Reentrant submission that is intentional should use
// EnqueueAllowingSameQueue instead.
func (q *Queue) Enqueue(task Task) {
	q.mustTask(task)
	q.mustNotBeReentrant()
	q.dispatch(task)
}

// EnqueueAllowingSameQueue submits a task without the reentrancy check. Used
// by code that has already been verified to run on the queue and needs to
// re-enter the guarded path, such as ScheduledTask.RunNow.
func (q *Queue) EnqueueAllowingSameQueue(task Task) {
	q.mustTask(task)
	q.dispatch(task)
}

// RunSync submits a task and blocks until it has run. This is the only
// blocking call in the package. It carries the same reentrancy precondition
// as Enqueue; a reentrant RunSync would deadlock, so it panics instead.
func (q *Queue) RunSync(task Task) {
	q.mustTask(task)
	q.mustNotBeReentrant()

	done := make(chan struct{})
	q.dispatch(func() {
		defer close(done)
		task()
	})
	<-done
}

// EnqueueAfter registers a task to run after the given delay and returns a
// handle that can cancel it or force it to run early. At most one pending
// delayed task per timer id is allowed; scheduling a second one panics with
// ErrDuplicateTimerID.
func (q *Queue) EnqueueAfter(delay time.Duration, id TimerID, task Task) *ScheduledTask {
	q.mustTask(task)

	q.mu.Lock()
	if q.containsLocked(id) {
		q.mu.Unlock()
		panic(fmt.Errorf("%w: timer id %d on queue %q", ErrDuplicateTimerID, id, q.name))
	}
	entry := &ScheduledTask{
		queue:      q,
		id:         id,
		targetTime: time.Now().Add(delay),
		task:       task,
	}
	q.pending = append(q.pending, entry)
	q.mu.Unlock()

	q.logger.Debug("scheduled delayed task",
		slog.String("queue", q.name),
		slog.Int("timer_id", int(id)),
		slog.Duration("delay", delay))

	// The timer callback already runs on the lane, so it enters the guard
	// directly instead of going through dispatch.
	q.executor.ExecuteAfter(delay, func() {
		q.enterCheckedOperation(entry.fire)
	})

	return entry
}

// ContainsDelayedTask reports whether a delayed task with the given timer id
// is still pending, i.e. scheduled but neither fired nor cancelled.
func (q *Queue) ContainsDelayedTask(id TimerID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.containsLocked(id)
}

func (q *Queue) containsLocked(id TimerID) bool {
	return slices.ContainsFunc(q.pending, func(entry *ScheduledTask) bool {
		return entry.id == id
	})
}

// VerifyOnQueue panics unless the caller is executing inside a checked
// operation on this queue's lane. Being on the right goroutine is not
// enough: a call that reached the lane without going through the guard is an
// unmanaged reentrant call that bypassed bookkeeping, and fails too.
func (q *Queue) VerifyOnQueue() {
	if !q.executor.IsCurrent() {
		panic(fmt.Errorf("%w: queue %q", ErrNotOnQueue, q.name))
	}
	if !q.inProgress.Load() {
		panic(fmt.Errorf("%w: queue %q", ErrNotInCheckedOperation, q.name))
	}
}

// dispatch forwards a task to the executor wrapped in the checked-operation
// guard. Every task the queue runs, immediate or fired-delayed, goes through
// enterCheckedOperation; this is the single choke point.
func (q *Queue) dispatch(task Task) {
	q.executor.Execute(func() {
		q.enterCheckedOperation(task)
	})
}

func (q *Queue) enterCheckedOperation(task Task) {
	if !q.inProgress.CompareAndSwap(false, true) {
		panic(fmt.Errorf("%w: queue %q", ErrNestedCheckedOperation, q.name))
	}
	defer q.inProgress.Store(false)

	q.VerifyOnQueue()
	task()
}

// dequeue removes one scheduled task from the pending list by identity. The
// entry must be present: the pending list and the entry's done flag are
// updated together, so a miss means they desynchronised.
func (q *Queue) dequeue(entry *ScheduledTask) {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := slices.Index(q.pending, entry)
	if i < 0 {
		panic(fmt.Errorf("%w: timer id %d on queue %q", ErrUnknownScheduledTask, entry.id, q.name))
	}
	q.pending = slices.Delete(q.pending, i, i+1)
}

func (q *Queue) mustTask(task Task) {
	if task == nil {
		panic(fmt.Errorf("%w: queue %q", ErrNilTask, q.name))
	}
}

func (q *Queue) mustNotBeReentrant() {
	if q.inProgress.Load() && q.executor.IsCurrent() {
		panic(fmt.Errorf("%w: queue %q", ErrReentrantEnqueue, q.name))
	}
}
