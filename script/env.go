package script

import (
	"fmt"

	"github.com/milk9111/commonsolutions/config"
	"github.com/milk9111/commonsolutions/event"
	"github.com/milk9111/commonsolutions/fade"
	"github.com/milk9111/commonsolutions/variable"
)

// Fader is the part of a fade controller scripts can drive.
type Fader interface {
	FadeIn(opts ...fade.CallOption)
	FadeOut(opts ...fade.CallOption)
}

// Env is a Host backed by the event, fade and variable registries.
// Unknown channels are not created on demand.
type Env struct {
	Events *event.Registry
	Faders map[string]Fader
	Vars   *variable.Registry
}

func NewEnv(events *event.Registry, vars *variable.Registry) *Env {
	return &Env{Events: events, Faders: make(map[string]Fader), Vars: vars}
}

func (e *Env) Raise(channel string) bool {
	return e.Events.Raise(channel)
}

func (e *Env) FadeIn(name string) bool {
	f, ok := e.Faders[name]
	if ok {
		f.FadeIn()
	}
	return ok
}

func (e *Env) FadeOut(name string) bool {
	f, ok := e.Faders[name]
	if ok {
		f.FadeOut()
	}
	return ok
}

func (e *Env) Float(name string) (float64, bool) {
	v, ok := variable.Lookup[float64](e.Vars, name)
	if !ok {
		return 0, false
	}
	return v.Value(), true
}

func (e *Env) SetFloat(name string, x float64) bool {
	v, ok := variable.Lookup[float64](e.Vars, name)
	if ok {
		v.Set(x)
	}
	return ok
}

// Bind compiles the listed scripts and registers them as enabled listeners
// on their channels. On error nothing stays registered.
func Bind(env *Env, specs []config.EventSpec) ([]*event.Listener, error) {
	var listeners []*event.Listener
	for _, spec := range specs {
		ch := env.Events.Channel(spec.Channel)
		for _, name := range spec.Listeners {
			resp, err := Load(name, env)
			if err != nil {
				Unbind(listeners)
				return nil, fmt.Errorf("script: bind %s: %w", spec.Channel, err)
			}
			l := event.NewListener(ch, resp.Func())
			if err := l.Enable(); err != nil {
				Unbind(listeners)
				return nil, err
			}
			listeners = append(listeners, l)
		}
	}
	return listeners, nil
}

// Unbind disables every listener returned by Bind.
func Unbind(listeners []*event.Listener) {
	for _, l := range listeners {
		l.Disable()
	}
}
