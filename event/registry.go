package event

import "sort"

// Registry owns the process-wide set of named channels. Channels and their
// listener lists live until Reset is called; nothing resets them implicitly
// when a level or scene changes.
type Registry struct {
	channels map[string]*Channel
}

// Default is the registry used by the package-level helpers.
var Default = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{channels: make(map[string]*Channel)}
}

// Channel returns the channel called name, creating it if needed.
func (r *Registry) Channel(name string) *Channel {
	if ch, ok := r.channels[name]; ok {
		return ch
	}
	ch := NewChannel(name)
	r.channels[name] = ch
	return ch
}

func (r *Registry) Lookup(name string) (*Channel, bool) {
	ch, ok := r.channels[name]
	return ch, ok
}

// Raise raises the named channel and reports whether it exists.
func (r *Registry) Raise(name string) bool {
	ch, ok := r.channels[name]
	if !ok {
		return false
	}
	ch.Raise()
	return true
}

// Names returns the channel names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset detaches all listeners and raw observers from every channel. The
// channels themselves stay registered so existing references remain valid.
func (r *Registry) Reset() {
	for _, ch := range r.channels {
		ch.Reset()
	}
}

// Get returns the named channel from the Default registry.
func Get(name string) *Channel {
	return Default.Channel(name)
}

// Raise raises the named channel of the Default registry.
func Raise(name string) bool {
	return Default.Raise(name)
}

// Listen creates and enables a listener on the named Default channel.
func Listen(name string, response func()) *Listener {
	l := NewListener(Default.Channel(name), response)
	_ = l.Enable()
	return l
}
