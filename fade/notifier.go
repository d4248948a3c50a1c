package fade

// Notifier delivers "fade-in finished" and "fade-out finished" signals.
type Notifier struct {
	in  observers
	out observers
}

// OnIn subscribes fn to completed fade-ins. Returns an unsubscribe function.
func (n *Notifier) OnIn(fn func()) func() {
	return n.in.add(fn)
}

// OnOut subscribes fn to completed fade-outs. Returns an unsubscribe function.
func (n *Notifier) OnOut(fn func()) func() {
	return n.out.add(fn)
}

// On subscribes fn to the channel for dir.
func (n *Notifier) On(dir Direction, fn func()) func() {
	if dir == In {
		return n.OnIn(fn)
	}
	return n.OnOut(fn)
}

// Len returns the number of subscribers for dir.
func (n *Notifier) Len(dir Direction) int {
	if dir == In {
		return len(n.in.subs)
	}
	return len(n.out.subs)
}

func (n *Notifier) fire(dir Direction) {
	if dir == In {
		n.in.fire()
		return
	}
	n.out.fire()
}

func (n *Notifier) clear() {
	n.in.subs = nil
	n.out.subs = nil
}

type subscription struct {
	fn      func()
	removed bool
}

type observers struct {
	subs []*subscription
}

func (o *observers) add(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	s := &subscription{fn: fn}
	o.subs = append(o.subs, s)
	return func() {
		if s.removed {
			return
		}
		s.removed = true
		for i, x := range o.subs {
			if x == s {
				// copy so a dispatch in progress keeps its view
				o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
				break
			}
		}
	}
}

func (o *observers) fire() {
	for _, s := range o.subs {
		if s.removed {
			continue
		}
		s.fn()
	}
}
