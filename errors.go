package serialqueue

import "errors"

// Common errors
var (
	// ErrNilExecutor is returned when a nil executor is provided to New
	ErrNilExecutor = errors.New("executor cannot be nil")

	// ErrNilTask is the panic cause when a nil task is submitted
	ErrNilTask = errors.New("task cannot be nil")

	// ErrNotOnQueue is the panic cause when a lane-affine operation is
	// invoked from outside the queue's executor
	ErrNotOnQueue = errors.New("operation invoked off the owning queue")

	// ErrNotInCheckedOperation is the panic cause when VerifyOnQueue is
	// called on the right lane but outside a guarded dispatch
	ErrNotInCheckedOperation = errors.New("operation invoked outside a checked operation")

	// ErrReentrantEnqueue is the panic cause when Enqueue or RunSync is
	// called from a task already running on the same queue
	ErrReentrantEnqueue = errors.New("enqueue from a task already running on this queue")

	// ErrNestedCheckedOperation is the panic cause when a checked operation
	// is entered while another is in progress; unreachable unless the
	// executor breaks its serialisation guarantee
	ErrNestedCheckedOperation = errors.New("checked operation entered while another is in progress")

	// ErrDuplicateTimerID is the panic cause when a delayed task is
	// scheduled while another with the same timer id is still pending
	ErrDuplicateTimerID = errors.New("delayed task with this timer id is already pending")

	// ErrUnknownScheduledTask is the panic cause when a scheduled task is
	// removed but not found in the pending list; indicates list/state desync
	ErrUnknownScheduledTask = errors.New("scheduled task is not in the pending list")
)
