package serialqueue

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// SerialExecutor implements Executor with a single worker goroutine draining
// an unbounded FIFO. Submission never blocks; delayed tasks are re-posted
// onto the FIFO when their timer goes off, so they run on the same lane as
// immediate work. Suitable for production use and for tests.
type SerialExecutor struct {
	mu     sync.Mutex
	fifo   []Task
	timers map[*time.Timer]struct{}
	closed bool

	wake chan struct{}
	done chan struct{}

	// workerID holds the worker goroutine's id once the worker has started;
	// zero means not started yet. This is the lane-identity token IsCurrent
	// compares against.
	workerID atomic.Uint64
}

// NewSerialExecutor creates an executor and starts its worker goroutine.
// Call Close to stop it.
func NewSerialExecutor() *SerialExecutor {
	e := &SerialExecutor{
		timers: make(map[*time.Timer]struct{}),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go e.run()
	return e
}

// Execute implements Executor. Tasks submitted after Close are dropped.
func (e *SerialExecutor) Execute(task Task) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.fifo = append(e.fifo, task)
	e.mu.Unlock()

	// Coalesced wake-up; the worker drains the whole FIFO per token.
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// ExecuteAfter implements Executor. The timer is tracked so Close can stop
// timers that have not gone off yet.
func (e *SerialExecutor) ExecuteAfter(delay time.Duration, task Task) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		e.mu.Lock()
		delete(e.timers, timer)
		e.mu.Unlock()

		e.Execute(task)
	})
	e.timers[timer] = struct{}{}
}

// IsCurrent implements Executor.
func (e *SerialExecutor) IsCurrent() bool {
	id := e.workerID.Load()
	return id != 0 && id == goroutineID()
}

// Close stops the worker goroutine and any armed timers. Tasks still queued
// are dropped; a task mid-execution runs to completion. Close is idempotent
// and safe to call from a running task.
func (e *SerialExecutor) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.fifo = nil
	timers := e.timers
	e.timers = nil
	e.mu.Unlock()

	for timer := range timers {
		timer.Stop()
	}
	close(e.done)
	return nil
}

// run is the worker loop. It records its own goroutine id as the lane token
// before draining anything, so IsCurrent never misidentifies the lane.
func (e *SerialExecutor) run() {
	e.workerID.Store(goroutineID())
	for {
		select {
		case <-e.done:
			return
		case <-e.wake:
			e.drain()
		}
	}
}

func (e *SerialExecutor) drain() {
	for {
		e.mu.Lock()
		if len(e.fifo) == 0 {
			e.mu.Unlock()
			return
		}
		task := e.fifo[0]
		e.fifo = e.fifo[1:]
		e.mu.Unlock()

		task()
	}
}

// goroutineID returns the numeric id of the calling goroutine, parsed from
// the runtime stack header ("goroutine N [running]:"). Go exposes no public
// goroutine identity, and the lane check needs exactly that: a token that is
// true only on the worker goroutine, not merely while a task happens to be
// running somewhere.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	header := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	i := strings.IndexByte(header, ' ')
	if i <= 0 {
		return 0
	}
	id, err := strconv.ParseUint(header[:i], 10, 64)
	if err != nil {
		return 0
	}
	return id
}
