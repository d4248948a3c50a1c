// Package event implements named broadcast channels and the listeners that
// attach to them.
//
// A Channel fans out to its listeners in reverse registration order. Any
// listener may register or unregister listeners, including itself, while a
// channel is raising: removed listeners are never called again, and listeners
// added during a dispatch are first called by the next Raise.
package event

import "errors"

var (
	ErrListenerDetached = errors.New("event: listener is detached")
	ErrListenerAttached = errors.New("event: listener is attached")
	ErrNoChannel        = errors.New("event: listener has no channel")
	ErrForeignListener  = errors.New("event: listener belongs to another channel")
)

// Channel is a named broadcast point.
type Channel struct {
	name string

	// nil entries are listeners removed while a dispatch was running
	listeners []*Listener
	raising   int
	dirty     bool

	raised signals
}

func NewChannel(name string) *Channel {
	return &Channel{name: name}
}

func (c *Channel) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Len returns the number of registered listeners.
func (c *Channel) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, l := range c.listeners {
		if l != nil {
			n++
		}
	}
	return n
}

// Register attaches l. Registering an attached listener is a no-op.
func (c *Channel) Register(l *Listener) error {
	if c == nil || l == nil {
		return ErrNoChannel
	}
	if l.channel != c {
		return ErrForeignListener
	}
	if c.indexOf(l) >= 0 {
		return nil
	}
	c.listeners = append(c.listeners, l)
	l.attached = true
	return nil
}

// Unregister detaches l. Unregistering a listener that is not registered is
// a no-op.
func (c *Channel) Unregister(l *Listener) {
	if c == nil || l == nil {
		return
	}
	i := c.indexOf(l)
	if i < 0 {
		return
	}
	l.attached = false
	if c.raising > 0 {
		c.listeners[i] = nil
		c.dirty = true
		return
	}
	c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
}

// Raise calls every registered listener once, last registered first, then
// notifies raw observers.
func (c *Channel) Raise() {
	if c == nil {
		return
	}
	c.raising++
	for i := len(c.listeners) - 1; i >= 0; i-- {
		if l := c.listeners[i]; l != nil {
			l.respond()
		}
	}
	c.raising--
	if c.raising == 0 && c.dirty {
		c.compact()
	}
	c.raised.fire()
}

// OnRaised subscribes fn to every Raise without registering a listener.
// Returns an unsubscribe function.
func (c *Channel) OnRaised(fn func()) func() {
	if c == nil {
		return func() {}
	}
	return c.raised.add(fn)
}

// Reset detaches every listener and drops raw observers.
func (c *Channel) Reset() {
	if c == nil {
		return
	}
	for i, l := range c.listeners {
		if l == nil {
			continue
		}
		l.attached = false
		c.listeners[i] = nil
	}
	c.dirty = true
	if c.raising == 0 {
		c.compact()
	}
	c.raised.clear()
}

func (c *Channel) indexOf(l *Listener) int {
	for i, x := range c.listeners {
		if x == l {
			return i
		}
	}
	return -1
}

func (c *Channel) compact() {
	kept := c.listeners[:0]
	for _, l := range c.listeners {
		if l != nil {
			kept = append(kept, l)
		}
	}
	clear(c.listeners[len(kept):])
	c.listeners = kept
	c.dirty = false
}

type signal struct {
	fn      func()
	removed bool
}

// signals is a list of raw observers safe to mutate during fire.
type signals struct {
	subs []*signal
}

func (s *signals) add(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	sub := &signal{fn: fn}
	s.subs = append(s.subs, sub)
	return func() {
		if sub.removed {
			return
		}
		sub.removed = true
		for i, x := range s.subs {
			if x == sub {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				break
			}
		}
	}
}

func (s *signals) fire() {
	for _, sub := range s.subs {
		if !sub.removed {
			sub.fn()
		}
	}
}

func (s *signals) clear() {
	for _, sub := range s.subs {
		sub.removed = true
	}
	s.subs = nil
}
