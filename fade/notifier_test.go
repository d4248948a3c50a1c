package fade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifierDispatch(t *testing.T) {
	t.Run("exhaustive", func(t *testing.T) {
		var n Notifier
		calls := 0
		for i := 0; i < 3; i++ {
			n.OnIn(func() { calls++ })
		}
		n.fire(In)
		n.fire(Out)
		assert.Equal(t, 3, calls)
	})

	t.Run("unsubscribe_self", func(t *testing.T) {
		var n Notifier
		var order []string
		var unsub func()
		n.OnOut(func() { order = append(order, "a") })
		unsub = n.OnOut(func() {
			order = append(order, "b")
			unsub()
		})
		n.OnOut(func() { order = append(order, "c") })

		n.fire(Out)
		n.fire(Out)
		assert.Equal(t, []string{"a", "b", "c", "a", "c"}, order)
		assert.Equal(t, 2, n.Len(Out))
	})

	t.Run("unsubscribe_other_channel", func(t *testing.T) {
		var n Notifier
		inCalls := 0
		unsubIn := n.OnIn(func() { inCalls++ })
		n.OnOut(func() { unsubIn() })

		n.fire(Out)
		n.fire(In)
		assert.Equal(t, 0, inCalls)
		assert.Equal(t, 0, n.Len(In))
	})

	t.Run("unsubscribe_later_subscriber", func(t *testing.T) {
		var n Notifier
		var order []string
		var unsubC func()
		n.On(In, func() {
			order = append(order, "a")
			unsubC()
		})
		unsubC = n.On(In, func() { order = append(order, "c") })

		n.fire(In)
		assert.Equal(t, []string{"a"}, order)
	})

	t.Run("double_unsubscribe", func(t *testing.T) {
		var n Notifier
		unsub := n.OnIn(func() {})
		n.OnIn(func() {})
		unsub()
		unsub()
		assert.Equal(t, 1, n.Len(In))
	})
}

func TestDisposeDropsSubscribers(t *testing.T) {
	_, sched, c := newFloat(0, time.Second, false)
	n := watch(c)
	c.FadeIn()
	c.Dispose()
	sched.StepFor(2*time.Second, tick)
	assert.Equal(t, 0, n.in)
	assert.Equal(t, 0, c.Notifier().Len(In))
}

func TestSchedulerStep(t *testing.T) {
	var nilSched *Scheduler
	nilSched.Step(tick)
	assert.Equal(t, 0, nilSched.Len())

	sched := NewScheduler()
	a := &Property[float64]{}
	b := &Property[float64]{}
	ca := New[float64](a, sched, FloatOptions(1, 0))
	cb := New[float64](b, sched, FloatOptions(1, 0))
	ca.SetDuration(time.Second)
	cb.SetDuration(2 * time.Second)

	ca.FadeIn()
	cb.FadeIn()
	assert.Equal(t, 2, sched.Len())

	sched.StepFor(time.Second, tick)
	assert.Equal(t, 1, sched.Len())
	assert.Equal(t, 1.0, a.V)
	assert.InDelta(t, 0.5, b.V, 1e-9)

	sched.Step(-time.Second)
	assert.InDelta(t, 0.5, b.V, 1e-9, "negative deltas do not rewind")
}

func TestDefaultScheduler(t *testing.T) {
	p := &Property[float64]{}
	c := New[float64](p, nil, FloatOptions(1, 0))
	c.FadeIn(WithDuration(tick))
	Default.Step(tick)
	assert.Equal(t, 1.0, p.V)
}
