// Package variable holds shared values that many systems read and observe,
// such as player health or the master volume.
//
// Values persist for the life of the process. Call Reset (or Registry.Reset)
// when a run starts; nothing restores the initial value automatically.
package variable

import (
	"errors"
	"fmt"
	"sort"
)

var ErrTypeMismatch = errors.New("variable: type mismatch")

// Variable is an observable value.
type Variable[T any] struct {
	name    string
	initial T
	value   T
	updated []*observer
}

type observer struct {
	fn      func()
	removed bool
}

// New returns a variable holding initial.
func New[T any](name string, initial T) *Variable[T] {
	return &Variable[T]{name: name, initial: initial, value: initial}
}

func (v *Variable[T]) Name() string {
	return v.name
}

func (v *Variable[T]) Value() T {
	return v.value
}

// Set stores val and notifies observers, even when the value is unchanged.
func (v *Variable[T]) Set(val T) {
	v.value = val
	for _, o := range v.updated {
		if !o.removed {
			o.fn()
		}
	}
}

// Reset restores the initial value and notifies observers.
func (v *Variable[T]) Reset() {
	v.Set(v.initial)
}

// OnUpdated subscribes fn to Set. Returns an unsubscribe function.
func (v *Variable[T]) OnUpdated(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	o := &observer{fn: fn}
	v.updated = append(v.updated, o)
	return func() {
		if o.removed {
			return
		}
		o.removed = true
		for i, x := range v.updated {
			if x == o {
				v.updated = append(v.updated[:i:i], v.updated[i+1:]...)
				break
			}
		}
	}
}

type resetter interface {
	Reset()
}

// Registry is a named set of variables with an explicit reset.
type Registry struct {
	vars map[string]resetter
}

func NewRegistry() *Registry {
	return &Registry{vars: make(map[string]resetter)}
}

// Register returns the variable called name, creating it with initial if it
// does not exist yet.
func Register[T any](r *Registry, name string, initial T) (*Variable[T], error) {
	if existing, ok := r.vars[name]; ok {
		v, ok := existing.(*Variable[T])
		if !ok {
			return nil, fmt.Errorf("%w: %s is %T", ErrTypeMismatch, name, existing)
		}
		return v, nil
	}
	v := New(name, initial)
	r.vars[name] = v
	return v, nil
}

// Lookup returns the variable called name if it exists with type T.
func Lookup[T any](r *Registry, name string) (*Variable[T], bool) {
	v, ok := r.vars[name].(*Variable[T])
	return v, ok
}

// Remove forgets the variable called name. Existing references keep working.
func (r *Registry) Remove(name string) {
	delete(r.vars, name)
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset restores every variable to its initial value.
func (r *Registry) Reset() {
	for _, name := range r.Names() {
		r.vars[name].Reset()
	}
}
