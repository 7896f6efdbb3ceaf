package serialqueue

import (
	"log/slog"
	"time"
)

// ScheduledTask is a cancellable handle to one registered delayed task. The
// handle is shared between the caller and the armed timer closure; the done
// flag is the single source of truth for completion and transitions exactly
// once, via firing or via Cancel, whichever reaches it first.
type ScheduledTask struct {
	queue      *Queue
	id         TimerID
	targetTime time.Time
	task       Task

	// done is read and written only from checked operations on the queue's
	// lane. The single-lane guarantee is the mutual-exclusion mechanism; no
	// separate lock is needed.
	done bool
}

// TimerID returns the timer category this task was scheduled under.
func (s *ScheduledTask) TimerID() TimerID {
	return s.id
}

// TargetTime returns the time the task was scheduled to fire.
func (s *ScheduledTask) TargetTime() time.Time {
	return s.targetTime
}

// Cancel drops the task without executing it and removes it from the queue's
// pending list. It must be called from a task running on the owning queue
// (enforced via VerifyOnQueue). Cancelling an already-done entry, whether it
// fired or was cancelled before, is a no-op; calling Cancel twice is safe.
func (s *ScheduledTask) Cancel() {
	s.queue.VerifyOnQueue()
	if s.done {
		return
	}
	s.markDone()

	s.queue.logger.Debug("cancelled delayed task",
		slog.String("queue", s.queue.name),
		slog.Int("timer_id", int(s.id)))
}

// RunNow forces the task to execute without waiting for its timer, by
// re-submitting the fire path as immediate work. The armed timer still goes
// off later and finds the entry done, which is a silent no-op. Typical use:
// flush a pending retry immediately.
func (s *ScheduledTask) RunNow() {
	s.queue.EnqueueAllowingSameQueue(s.fire)
}

// fire is invoked on the lane when the timer goes off (or via RunNow). If a
// cancellation won the race the entry is already done and nothing happens;
// otherwise the entry is finalised and the task body runs exactly once.
func (s *ScheduledTask) fire() {
	s.queue.VerifyOnQueue()
	if s.done {
		return
	}
	task := s.markDone()

	s.queue.logger.Debug("running delayed task",
		slog.String("queue", s.queue.name),
		slog.Int("timer_id", int(s.id)))

	task()
}

// markDone flips the done flag and dequeues in one step so the flag and the
// pending list can never disagree. The captured closure is released so a
// cancelled entry does not keep its work alive until the timer goes off.
func (s *ScheduledTask) markDone() Task {
	task := s.task
	s.done = true
	s.task = nil
	s.queue.dequeue(s)
	return task
}
