package fade

import "time"

// runner is a transition advanced once per Scheduler.Step.
type runner interface {
	// step advances by dt and reports whether the runner has finished.
	step(dt time.Duration) bool
	done() bool
}

// Scheduler is the tick source shared by controllers. The host calls Step
// once per frame with the time elapsed since the previous frame.
//
// Runners added while Step is running first advance on the following Step.
type Scheduler struct {
	runners  []runner
	stepping bool
}

// Default is used by controllers constructed without a scheduler.
var Default = NewScheduler()

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) add(r runner) {
	if s == nil || r == nil {
		return
	}
	s.runners = append(s.runners, r)
}

// Step advances every active transition once.
func (s *Scheduler) Step(dt time.Duration) {
	if s == nil || s.stepping {
		return
	}
	if dt < 0 {
		dt = 0
	}

	current := s.runners
	s.runners = nil
	s.stepping = true
	kept := make([]runner, 0, len(current))
	for _, r := range current {
		// a runner cancelled by an earlier callback in this step is skipped
		if r.done() {
			continue
		}
		if r.step(dt) {
			continue
		}
		kept = append(kept, r)
	}
	s.stepping = false
	s.runners = append(kept, s.runners...)
}

// Len returns the number of scheduled transitions, including ones cancelled
// since the last Step.
func (s *Scheduler) Len() int {
	if s == nil {
		return 0
	}
	return len(s.runners)
}

// StepFor calls Step with a fixed delta until total has elapsed. It is meant
// for hosts without a frame loop, such as tools and tests.
func (s *Scheduler) StepFor(total, dt time.Duration) {
	if dt <= 0 {
		return
	}
	for elapsed := time.Duration(0); elapsed < total; elapsed += dt {
		s.Step(dt)
	}
}
