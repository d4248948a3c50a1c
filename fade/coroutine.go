package fade

import "time"

// coroutine runs a body on its own goroutine with strict hand-off: the caller
// blocks while the body runs and the body blocks while the caller runs, so
// the two never execute at the same time.
type coroutine struct {
	resume   chan time.Duration
	yielded  chan bool
	finished bool
}

// startCoroutine runs body up to its first yield (or to completion) before
// returning.
func startCoroutine(body func(yield func() (time.Duration, bool))) *coroutine {
	co := &coroutine{
		resume:  make(chan time.Duration),
		yielded: make(chan bool),
	}
	go func() {
		body(co.yield)
		co.yielded <- true
	}()
	co.finished = <-co.yielded
	return co
}

// yield parks the body until the next resume. ok is false once the
// coroutine has been killed; the body must return.
func (co *coroutine) yield() (dt time.Duration, ok bool) {
	co.yielded <- false
	dt, ok = <-co.resume
	return dt, ok
}

// resumeWith runs the body until its next yield and reports whether it
// returned.
func (co *coroutine) resumeWith(dt time.Duration) bool {
	if co.finished {
		return true
	}
	co.resume <- dt
	co.finished = <-co.yielded
	return co.finished
}

// kill makes the parked body return and waits for it. Must not be called
// from the body itself.
func (co *coroutine) kill() {
	if co == nil || co.finished {
		return
	}
	close(co.resume)
	<-co.yielded
	co.finished = true
}
