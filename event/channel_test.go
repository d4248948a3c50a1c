package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// attach creates enabled listeners named after each letter that record
// their calls into log.
func attach(t *testing.T, ch *Channel, log *[]string, names ...string) map[string]*Listener {
	t.Helper()
	out := make(map[string]*Listener, len(names))
	for _, name := range names {
		name := name
		l := NewListener(ch, func() { *log = append(*log, name) })
		require.NoError(t, l.Enable())
		out[name] = l
	}
	return out
}

func TestRaiseOrder(t *testing.T) {
	ch := NewChannel("game_over")
	var log []string
	attach(t, ch, &log, "A", "B", "C")

	ch.Raise()
	assert.Equal(t, []string{"C", "B", "A"}, log)
}

func TestRaiseWithMutation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(ls map[string]*Listener, ch *Channel, log *[]string)
		first  []string
		second []string
	}{
		{
			name: "b_unregisters_itself",
			mutate: func(ls map[string]*Listener, _ *Channel, log *[]string) {
				ls["B"].SetResponse(func() {
					*log = append(*log, "B")
					ls["B"].Disable()
				})
			},
			first:  []string{"C", "B", "A"},
			second: []string{"C", "A"},
		},
		{
			name: "c_unregisters_a",
			mutate: func(ls map[string]*Listener, _ *Channel, log *[]string) {
				ls["C"].SetResponse(func() {
					*log = append(*log, "C")
					ls["A"].Disable()
				})
			},
			first:  []string{"C", "B"},
			second: []string{"C", "B"},
		},
		{
			name: "a_unregisters_everyone",
			mutate: func(ls map[string]*Listener, _ *Channel, log *[]string) {
				ls["A"].SetResponse(func() {
					*log = append(*log, "A")
					for _, l := range ls {
						l.Disable()
					}
				})
			},
			first:  []string{"C", "B", "A"},
			second: nil,
		},
		{
			name: "b_registers_d",
			mutate: func(ls map[string]*Listener, ch *Channel, log *[]string) {
				d := NewListener(ch, func() { *log = append(*log, "D") })
				ls["B"].SetResponse(func() {
					*log = append(*log, "B")
					_ = d.Enable()
				})
			},
			first:  []string{"C", "B", "A"},
			second: []string{"D", "C", "B", "A"},
		},
		{
			name: "c_disables_and_reenables_a",
			mutate: func(ls map[string]*Listener, _ *Channel, log *[]string) {
				ls["C"].SetResponse(func() {
					*log = append(*log, "C")
					ls["A"].Disable()
					_ = ls["A"].Enable()
				})
			},
			first:  []string{"C", "B"},
			second: []string{"A", "C", "B"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ch := NewChannel("tick")
			var log []string
			ls := attach(t, ch, &log, "A", "B", "C")
			tc.mutate(ls, ch, &log)

			ch.Raise()
			assert.Equal(t, tc.first, log)

			log = nil
			ch.Raise()
			assert.Equal(t, tc.second, log)
		})
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	ch := NewChannel("pickup")
	calls := 0
	l := NewListener(ch, func() { calls++ })

	require.NoError(t, l.Enable())
	require.NoError(t, l.Enable())
	require.NoError(t, ch.Register(l))
	assert.Equal(t, 1, ch.Len())

	ch.Raise()
	assert.Equal(t, 1, calls)
}

func TestUnregisterUnknownIsNoop(t *testing.T) {
	ch := NewChannel("pickup")
	other := NewChannel("other")
	l := NewListener(other, func() {})

	ch.Unregister(l)
	ch.Unregister(nil)
	l.Disable()
	assert.Equal(t, 0, ch.Len())

	var nilChannel *Channel
	nilChannel.Raise()
	nilChannel.Unregister(l)
	assert.Equal(t, "", nilChannel.Name())
}

func TestRaiseWithoutListeners(t *testing.T) {
	ch := NewChannel("empty")
	raw := 0
	ch.OnRaised(func() { raw++ })
	ch.Raise()
	assert.Equal(t, 1, raw)
}

func TestRawObserversRunAfterListeners(t *testing.T) {
	ch := NewChannel("door_opened")
	var log []string
	attach(t, ch, &log, "A", "B")
	unsub := ch.OnRaised(func() { log = append(log, "raw") })

	ch.Raise()
	assert.Equal(t, []string{"B", "A", "raw"}, log)

	unsub()
	log = nil
	ch.Raise()
	assert.Equal(t, []string{"B", "A"}, log)
}

func TestForeignListenerIsRejected(t *testing.T) {
	a := NewChannel("a")
	b := NewChannel("b")
	l := NewListener(a, func() {})

	assert.ErrorIs(t, b.Register(l), ErrForeignListener)
	assert.False(t, l.Attached())
}

func TestListenerStateMachine(t *testing.T) {
	a := NewChannel("a")
	b := NewChannel("b")
	calls := 0
	l := NewListener(a, func() { calls++ })

	assert.ErrorIs(t, l.OnEventRaised(), ErrListenerDetached)
	assert.Equal(t, 0, calls)

	require.NoError(t, l.Enable())
	assert.True(t, l.Attached())
	assert.NoError(t, l.OnEventRaised())
	assert.Equal(t, 1, calls)

	assert.ErrorIs(t, l.Retarget(b), ErrListenerAttached)

	l.Disable()
	assert.False(t, l.Attached())
	require.NoError(t, l.Retarget(b))
	require.NoError(t, l.Enable())

	a.Raise()
	assert.Equal(t, 1, calls)
	b.Raise()
	assert.Equal(t, 2, calls)
	assert.Same(t, b, l.Channel())

	orphan := NewListener(nil, nil)
	assert.ErrorIs(t, orphan.Enable(), ErrNoChannel)
	assert.NotEqual(t, l.ID(), orphan.ID())
}

func TestNestedRaise(t *testing.T) {
	ch := NewChannel("chain")
	var log []string
	depth := 0
	ls := attach(t, ch, &log, "A", "B")
	ls["B"].SetResponse(func() {
		log = append(log, "B")
		if depth == 0 {
			depth++
			ls["A"].Disable()
			ch.Raise()
		}
	})

	ch.Raise()
	assert.Equal(t, []string{"B", "B"}, log)
	assert.Equal(t, 1, ch.Len())
}

func TestChannelResetDuringRaise(t *testing.T) {
	ch := NewChannel("quit")
	var log []string
	ls := attach(t, ch, &log, "A", "B")
	ls["B"].SetResponse(func() {
		log = append(log, "B")
		ch.Reset()
	})

	ch.Raise()
	assert.Equal(t, []string{"B"}, log)
	assert.Equal(t, 0, ch.Len())
	assert.False(t, ls["A"].Attached())
}
