package event

import "github.com/google/uuid"

// Listener observes exactly one channel while it is enabled.
//
//	Detached --Enable--> Attached --Disable--> Detached
type Listener struct {
	id       uuid.UUID
	channel  *Channel
	response func()
	attached bool
}

// NewListener returns a detached listener for ch.
func NewListener(ch *Channel, response func()) *Listener {
	return &Listener{
		id:       uuid.New(),
		channel:  ch,
		response: response,
	}
}

func (l *Listener) ID() uuid.UUID {
	return l.id
}

func (l *Listener) Channel() *Channel {
	return l.channel
}

// Attached reports whether the listener is registered with its channel.
func (l *Listener) Attached() bool {
	return l != nil && l.attached
}

// Enable registers the listener with its channel.
func (l *Listener) Enable() error {
	if l.channel == nil {
		return ErrNoChannel
	}
	return l.channel.Register(l)
}

// Disable unregisters the listener. It never receives another callback,
// even if its channel is in the middle of a Raise.
func (l *Listener) Disable() {
	l.channel.Unregister(l)
}

// Retarget points a detached listener at another channel.
func (l *Listener) Retarget(ch *Channel) error {
	if l.attached {
		return ErrListenerAttached
	}
	l.channel = ch
	return nil
}

// SetResponse replaces the action run when the channel is raised.
func (l *Listener) SetResponse(fn func()) {
	l.response = fn
}

// OnEventRaised runs the response. It fails on a detached listener.
func (l *Listener) OnEventRaised() error {
	if !l.attached {
		return ErrListenerDetached
	}
	l.respond()
	return nil
}

func (l *Listener) respond() {
	if l.response != nil {
		l.response()
	}
}
