package serialqueue

// Task is an opaque unit of work. A task captures whatever state it needs and
// must not block indefinitely: while it runs, nothing else on its queue does.
type Task func()

// TimerID tags the category of a delayed task, not a unique instance. At most
// one pending delayed task per TimerID may exist on a queue at any time;
// callers define their own enumeration:
//
//	const (
//	    timerIdleTimeout serialqueue.TimerID = iota + 1
//	    timerConnectionBackoff
//	)
type TimerID int
