package fade

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Result is the outcome of a suspendable transition.
type Result int32

const (
	Pending Result = iota
	// Completed means the target reached the endpoint and the notifier fired.
	Completed
	// Preempted means a newer request or Stop cancelled the transition.
	Preempted
	// Cancelled means the context passed to the async call was done.
	Cancelled
)

func (r Result) String() string {
	switch r {
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	case Preempted:
		return "preempted"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Result(%d)", int32(r))
	}
}

// Handle tracks a transition started with FadeInAsync or FadeOutAsync.
// It may be waited on from any goroutine other than the one calling
// Scheduler.Step.
type Handle struct {
	done   chan struct{}
	result atomic.Int32
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

func (h *Handle) resolve(r Result) {
	if !h.result.CompareAndSwap(int32(Pending), int32(r)) {
		return
	}
	close(h.done)
}

// Done is closed once the transition finishes or is cancelled.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Result returns the outcome, or Pending while the transition runs.
func (h *Handle) Result() Result {
	return Result(h.result.Load())
}

// Wait blocks until the transition ends or ctx is done.
func (h *Handle) Wait(ctx context.Context) (Result, error) {
	select {
	case <-h.done:
		return h.Result(), nil
	case <-ctx.Done():
		return Pending, ctx.Err()
	}
}
