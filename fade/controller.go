package fade

import (
	"context"
	"math"
	"time"
)

// DefaultDuration is the fade length used by the stock option sets.
const DefaultDuration = 2 * time.Second

// Options configures a Controller.
type Options[T any] struct {
	// In and Out are the endpoint values.
	In  T
	Out T

	// Duration is the default transition length. Zero or negative durations
	// complete within the request.
	Duration time.Duration

	// DynamicTiming shortens a transition by how far the target already sits
	// toward its destination.
	DynamicTiming bool

	// Lerp interpolates values. When nil, transitions snap to the endpoint.
	Lerp Lerp[T]

	// Normalize reports progress toward In. When nil, dynamic timing has no
	// effect.
	Normalize Normalizer[T]

	// Startup policy applied by Start.
	StartHidden    bool
	FadeInOnStart  bool
	FadeOutOnStart bool
}

// FloatOptions returns options for a scalar fading between in and out.
func FloatOptions(in, out float64) Options[float64] {
	return Options[float64]{
		In:            in,
		Out:           out,
		Duration:      DefaultDuration,
		DynamicTiming: true,
		Lerp:          LerpFloat64,
		Normalize:     Identity,
	}
}

// CallOption overrides controller defaults for a single request.
type CallOption func(*call)

type call struct {
	duration time.Duration
	dynamic  bool
}

// WithDuration sets the transition length for one request.
func WithDuration(d time.Duration) CallOption {
	return func(c *call) { c.duration = d }
}

// WithDynamicTiming sets the dynamic timing policy for one request.
func WithDynamicTiming(enabled bool) CallOption {
	return func(c *call) { c.dynamic = enabled }
}

// activeRun is the transition currently owned by a controller.
type activeRun interface {
	runner
	cancel()
}

// Controller fades a target between two endpoints. It is not safe for
// concurrent use; all calls must happen on the goroutine that drives the
// scheduler, or from notifier callbacks.
type Controller[T any] struct {
	target   Target[T]
	flags    Flagger
	sched    *Scheduler
	opts     Options[T]
	notifier Notifier

	active activeRun
	dir    Direction
}

// New creates a controller for target. A nil scheduler means Default.
func New[T any](target Target[T], sched *Scheduler, opts Options[T]) *Controller[T] {
	if sched == nil {
		sched = Default
	}
	c := &Controller[T]{
		target: target,
		sched:  sched,
		opts:   opts,
	}
	if f, ok := target.(Flagger); ok {
		c.flags = f
	}
	return c
}

// Notifier returns the completion notifier.
func (c *Controller[T]) Notifier() *Notifier {
	return &c.notifier
}

// Target returns the faded property.
func (c *Controller[T]) Target() Target[T] {
	return c.target
}

// Options returns a copy of the controller options.
func (c *Controller[T]) Options() Options[T] {
	return c.opts
}

// SetOptions replaces the controller options. The active transition keeps the
// values it was started with.
func (c *Controller[T]) SetOptions(opts Options[T]) {
	c.opts = opts
}

func (c *Controller[T]) Duration() time.Duration {
	return c.opts.Duration
}

func (c *Controller[T]) SetDuration(d time.Duration) {
	c.opts.Duration = d
}

func (c *Controller[T]) SetDynamicTiming(enabled bool) {
	c.opts.DynamicTiming = enabled
}

// Active reports whether a transition is in flight.
func (c *Controller[T]) Active() bool {
	return c.active != nil && !c.active.done()
}

// Direction returns the direction of the active transition.
func (c *Controller[T]) Direction() (Direction, bool) {
	if !c.Active() {
		return In, false
	}
	return c.dir, true
}

// Progress returns the normalized position of the target, 1 being fully in.
func (c *Controller[T]) Progress() float64 {
	if c.opts.Normalize == nil {
		return 0
	}
	return clamp(c.opts.Normalize(c.target.Value()), 0, 1)
}

// FadeIn starts a stepped transition toward the in endpoint.
func (c *Controller[T]) FadeIn(opts ...CallOption) {
	c.fade(In, opts)
}

// FadeOut starts a stepped transition toward the out endpoint.
func (c *Controller[T]) FadeOut(opts ...CallOption) {
	c.fade(Out, opts)
}

// FadeInAsync starts a suspendable transition toward the in endpoint.
func (c *Controller[T]) FadeInAsync(ctx context.Context, opts ...CallOption) *Handle {
	return c.fadeAsync(ctx, In, opts)
}

// FadeOutAsync starts a suspendable transition toward the out endpoint.
func (c *Controller[T]) FadeOutAsync(ctx context.Context, opts ...CallOption) *Handle {
	return c.fadeAsync(ctx, Out, opts)
}

// SetImmediate snaps the target to the endpoint for dir and applies its
// flags. No notification fires.
func (c *Controller[T]) SetImmediate(dir Direction) {
	c.Stop()
	c.target.SetValue(c.endpoint(dir))
	c.applyFlags(dir)
}

// Start applies the startup policy from the options.
func (c *Controller[T]) Start() {
	if c.opts.StartHidden || c.opts.FadeInOnStart {
		c.SetImmediate(Out)
	}
	switch {
	case c.opts.FadeOutOnStart:
		c.SetImmediate(In)
		c.FadeOut()
	case c.opts.FadeInOnStart:
		c.FadeIn()
	}
}

// Stop cancels the active transition without notification.
func (c *Controller[T]) Stop() {
	if c.active == nil {
		return
	}
	active := c.active
	c.active = nil
	active.cancel()
}

// Dispose stops the controller and drops all notifier subscriptions.
func (c *Controller[T]) Dispose() {
	c.Stop()
	c.notifier.clear()
}

func (c *Controller[T]) endpoint(dir Direction) T {
	if dir == In {
		return c.opts.In
	}
	return c.opts.Out
}

func (c *Controller[T]) applyFlags(dir Direction) {
	if c.flags != nil {
		c.flags.ApplyEndpoint(dir)
	}
}

// begin cancels the active transition and snapshots a new one.
func (c *Controller[T]) begin(dir Direction, opts []CallOption) *transition[T] {
	c.Stop()

	cl := call{duration: c.opts.Duration, dynamic: c.opts.DynamicTiming}
	for _, opt := range opts {
		if opt != nil {
			opt(&cl)
		}
	}

	tr := &transition[T]{
		c:        c,
		dir:      dir,
		start:    c.target.Value(),
		end:      c.endpoint(dir),
		duration: cl.duration,
	}
	if cl.dynamic && cl.duration > 0 && c.opts.Normalize != nil {
		n := clamp(c.opts.Normalize(tr.start), 0, 1)
		if dir == Out {
			n = 1 - n
		}
		tr.elapsed = time.Duration(math.Round(n * float64(cl.duration)))
	}

	if dir == In {
		c.applyFlags(In)
	}
	c.dir = dir
	return tr
}

func (c *Controller[T]) fade(dir Direction, opts []CallOption) {
	tr := c.begin(dir, opts)
	s := &stepper[T]{tr: tr}
	c.active = s
	if tr.advance() {
		s.halted = true
		c.complete(s, tr)
		return
	}
	c.sched.add(s)
}

func (c *Controller[T]) fadeAsync(ctx context.Context, dir Direction, opts []CallOption) *Handle {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := c.begin(dir, opts)
	a := &asyncRunner[T]{c: c, ctx: ctx, handle: newHandle()}
	c.active = a
	if ctx.Err() != nil {
		c.active = nil
		a.handle.resolve(Cancelled)
		return a.handle
	}

	a.co = startCoroutine(func(yield func() (time.Duration, bool)) {
		for !tr.advance() {
			dt, ok := yield()
			if !ok {
				return
			}
			tr.elapsed += dt
		}
		c.complete(a, tr)
		a.handle.resolve(Completed)
	})
	if !a.co.finished {
		c.sched.add(a)
	}
	return a.handle
}

// complete snaps to the exact endpoint, applies out flags, releases the
// transition and notifies observers.
func (c *Controller[T]) complete(r activeRun, tr *transition[T]) {
	c.target.SetValue(tr.end)
	if tr.dir == Out {
		c.applyFlags(Out)
	}
	if c.active == r {
		c.active = nil
	}
	c.notifier.fire(tr.dir)
}

// transition is the state of one fade request. start and end are fixed for
// its lifetime.
type transition[T any] struct {
	c        *Controller[T]
	dir      Direction
	start    T
	end      T
	elapsed  time.Duration
	duration time.Duration
}

// advance runs one iteration of the fade loop and reports whether elapsed
// has reached the duration. It does not finish the transition.
func (tr *transition[T]) advance() bool {
	if tr.elapsed >= tr.duration {
		return true
	}
	if tr.c.opts.Lerp == nil {
		return false
	}
	t := clamp(float64(tr.elapsed)/float64(tr.duration), 0, 1)
	tr.c.target.SetValue(tr.c.opts.Lerp(tr.start, tr.end, t))
	return false
}

// stepper executes a transition directly from Scheduler.Step.
type stepper[T any] struct {
	tr     *transition[T]
	halted bool
}

func (s *stepper[T]) step(dt time.Duration) bool {
	if s.halted {
		return true
	}
	s.tr.elapsed += dt
	if !s.tr.advance() {
		return false
	}
	s.halted = true
	s.tr.c.complete(s, s.tr)
	return true
}

func (s *stepper[T]) done() bool { return s.halted }

func (s *stepper[T]) cancel() { s.halted = true }

// asyncRunner executes a transition inside a coroutine resumed by
// Scheduler.Step.
type asyncRunner[T any] struct {
	c      *Controller[T]
	ctx    context.Context
	co     *coroutine
	handle *Handle
}

func (a *asyncRunner[T]) step(dt time.Duration) bool {
	if a.done() {
		return true
	}
	if a.ctx.Err() != nil {
		a.abort(Cancelled)
		return true
	}
	return a.co.resumeWith(dt)
}

func (a *asyncRunner[T]) done() bool {
	return a.co != nil && a.co.finished
}

func (a *asyncRunner[T]) cancel() {
	a.abort(Preempted)
}

func (a *asyncRunner[T]) abort(r Result) {
	a.co.kill()
	if a.c.active == a {
		a.c.active = nil
	}
	a.handle.resolve(r)
}
