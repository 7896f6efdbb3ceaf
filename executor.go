package serialqueue

import "time"

// Executor is the execution substrate a Queue runs on: one logical lane that
// executes callbacks strictly one at a time. The queue only ever consumes
// this narrow capability, so a lane can be backed by a dedicated goroutine
// (see SerialExecutor), a test harness, or an external dispatch mechanism.
// Implementations must be safe for concurrent use.
type Executor interface {
	// Execute runs the task eventually, serialised FIFO with every other
	// task submitted to this executor. It must return without waiting for
	// the task to run.
	Execute(task Task)

	// ExecuteAfter arms a one-shot timer that runs the task no earlier than
	// delay from now, on the same serialised lane as Execute.
	ExecuteAfter(delay time.Duration, task Task)

	// IsCurrent reports whether the calling goroutine is the executor's
	// lane, i.e. whether the caller is inside a task this executor is
	// running right now.
	IsCurrent() bool
}
