package sqldata

// scheduler serializes access to the connection. Operations arriving
// while no nested session is active queue onto a single worker
// goroutine, giving independent callers FIFO mutual exclusion over the
// whole connection. Operations issued from inside a transaction,
// savepoint or custom connection run synchronously on the caller
// instead: the worker is already occupied by the enclosing call, so
// queuing again would deadlock.
//
// The nested-scope check is state based rather than goroutine based.
// Only one such scope can be active at a time, because opening one
// requires the connection to be closed first; a top-level call racing
// an active scope is ordered only against other top-level calls.
type scheduler struct {
	tasks chan func()
}

func newScheduler() *scheduler {
	s := &scheduler{tasks: make(chan func())}
	go s.loop()
	return s
}

func (s *scheduler) loop() {
	for task := range s.tasks {
		task()
	}
}

// run executes task according to the dispatch rule, blocking the caller
// until it completes. Once submitted, a task runs to completion; there
// is no cancellation.
func (s *scheduler) run(conn *connection, task func()) {
	if conn.nestedScope() {
		task()
		return
	}
	done := make(chan struct{})
	s.tasks <- func() {
		defer close(done)
		task()
	}
	<-done
}

// stop ends the worker goroutine. No tasks may be submitted afterwards.
func (s *scheduler) stop() {
	close(s.tasks)
}
