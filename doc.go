// Package serialqueue provides a serial task-execution queue with support for
// delayed, cancellable tasks.
//
// All work submitted to a Queue, immediate or delayed, runs strictly
// one-at-a-time on a single logical execution lane, even when callers submit
// from many goroutines. The package is organised around three components:
//
//   - Queue          — accepts immediate and delayed tasks and enforces the
//     reentrancy and duplicate-timer contracts
//   - ScheduledTask  — a cancellable handle to a delayed task
//   - Executor       — the execution substrate that actually serialises work
//
// The Queue interacts with the substrate only through the small Executor
// interface, keeping the scheduling logic decoupled from how the lane is
// implemented. SerialExecutor is an in-package implementation backed by a
// single goroutine, suitable for production use and for tests.
//
// # Usage
//
//	exec := serialqueue.NewSerialExecutor()
//	defer exec.Close()
//
//	q, err := serialqueue.New(exec, serialqueue.WithName("connection"))
//	if err != nil {
//	    return err
//	}
//
//	// Immediate work, serialised with everything else on the queue.
//	q.Enqueue(func() { flushWrites() })
//
//	// Delayed work, cancellable until it fires. Timer ids are caller-defined
//	// categories; at most one pending task per id is allowed.
//	const timerIdleTimeout serialqueue.TimerID = 1
//	retry := q.EnqueueAfter(10*time.Second, timerIdleTimeout, func() { closeIdleStream() })
//
//	// Cancellation is lane-affine: it must happen from a task running on the
//	// same queue, which is what makes the done transition race-free.
//	q.Enqueue(func() { retry.Cancel() })
//
// # Error Handling
//
// Misuse of the scheduling contract (reentrant submission, duplicate timer
// ids, off-lane cancellation) is a programmer error, not a recoverable
// runtime failure. Such violations panic with errors wrapping the package's
// sentinel errors (e.g. ErrReentrantEnqueue, ErrDuplicateTimerID) so they can
// be matched with errors.Is in crash handlers and tests. Constructors return
// sentinel errors (e.g. ErrNilExecutor) for invalid collaborators.
//
// The only soft outcome in the package is a fire/cancel race on a
// ScheduledTask: whichever path finalises the entry first wins and the other
// is a silent no-op, so the task body runs zero or one times, never two.
package serialqueue
