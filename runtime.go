package main

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/milk9111/commonsolutions/config"
	"github.com/milk9111/commonsolutions/event"
	"github.com/milk9111/commonsolutions/fade"
	"github.com/milk9111/commonsolutions/script"
	"github.com/milk9111/commonsolutions/variable"
)

// runtime owns everything built from a config spec: the fade scheduler,
// faders, channels, variables and script listeners.
type runtime struct {
	spec   *config.Spec
	sched  *fade.Scheduler
	events *event.Registry
	vars   *variable.Registry
	env    *script.Env

	floats    map[string]*fade.Controller[float64]
	colors    map[string]*fade.Controller[color.NRGBA]
	tints     map[string]*fade.Color
	listeners []*event.Listener
}

func newRuntime(spec *config.Spec) *runtime {
	events := event.NewRegistry()
	vars := variable.NewRegistry()
	return &runtime{
		spec:   spec,
		sched:  fade.NewScheduler(),
		events: events,
		vars:   vars,
		env:    script.NewEnv(events, vars),
		floats: make(map[string]*fade.Controller[float64]),
		colors: make(map[string]*fade.Controller[color.NRGBA]),
		tints:  make(map[string]*fade.Color),
	}
}

// floatOptions returns the configured options for name, or a plain 0..1
// fade when the config has no such fader.
func (r *runtime) floatOptions(name string) fade.Options[float64] {
	if f, ok := r.spec.Faders[name]; ok {
		return f.FloatOptions()
	}
	return fade.FloatOptions(1, 0)
}

// adopt registers a fader built outside the runtime, such as the overlay.
func (r *runtime) adopt(name string, c *fade.Controller[float64]) {
	r.floats[name] = c
	r.env.Faders[name] = c
	if f, ok := r.spec.Faders[name]; ok {
		applyFlags(c, f)
	}
}

// build creates the remaining faders and variables and binds the scripts.
func (r *runtime) build() error {
	if _, err := r.registerVariables(r.spec); err != nil {
		return err
	}
	r.addFaders(r.spec)
	listeners, err := script.Bind(r.env, r.spec.Events)
	if err != nil {
		return err
	}
	r.listeners = listeners
	return nil
}

// start applies every fader's startup policy in name order.
func (r *runtime) start() {
	for _, name := range sortedKeys(r.floats) {
		r.floats[name].Start()
	}
	for _, name := range sortedKeys(r.colors) {
		r.colors[name].Start()
	}
}

// reload applies a changed spec in place. Faders keep their current values,
// new faders and variables are created and scripts are rebound. On error the
// previous spec stays in effect.
func (r *runtime) reload(spec *config.Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	for name, f := range spec.Faders {
		if prev, ok := r.spec.Faders[name]; ok && prev.Kind != f.Kind {
			return fmt.Errorf("fader %s: kind changed from %s to %s", name, prev.Kind, f.Kind)
		}
	}
	added, err := r.registerVariables(spec)
	if err != nil {
		return err
	}

	listeners, err := script.Bind(r.env, spec.Events)
	if err != nil {
		r.dropVariables(added)
		return err
	}
	script.Unbind(r.listeners)
	r.listeners = listeners

	for name, f := range spec.Faders {
		switch f.Kind {
		case config.FaderColor:
			if c, ok := r.colors[name]; ok {
				c.SetOptions(f.ColorOptions())
			}
		default:
			if c, ok := r.floats[name]; ok {
				c.SetOptions(f.FloatOptions())
				applyFlags(c, f)
			}
		}
	}
	r.spec = spec
	r.addFaders(spec)
	return nil
}

// registerVariables registers the variables of spec and returns the names
// that did not exist before. On error nothing new is left registered.
func (r *runtime) registerVariables(spec *config.Spec) ([]string, error) {
	existing := make(map[string]bool)
	for _, name := range r.vars.Names() {
		existing[name] = true
	}
	var added []string
	for _, v := range spec.Variables {
		if _, err := variable.Register(r.vars, v.Name, v.Initial); err != nil {
			r.dropVariables(added)
			return nil, err
		}
		if !existing[v.Name] {
			existing[v.Name] = true
			added = append(added, v.Name)
		}
	}
	return added, nil
}

func (r *runtime) dropVariables(names []string) {
	for _, name := range names {
		r.vars.Remove(name)
	}
}

// addFaders creates controllers for faders not built yet. Alpha faders get a
// bare canvas group and volume faders a bare property.
func (r *runtime) addFaders(spec *config.Spec) {
	for _, name := range sortedKeys(spec.Faders) {
		f := spec.Faders[name]
		if _, ok := r.env.Faders[name]; ok {
			continue
		}
		switch f.Kind {
		case config.FaderColor:
			tint := &fade.Color{}
			c := fade.New[color.NRGBA](tint, r.sched, f.ColorOptions())
			r.colors[name] = c
			r.tints[name] = tint
			r.env.Faders[name] = c
		case config.FaderVolume:
			c := fade.New[float64](&fade.Property[float64]{}, r.sched, f.FloatOptions())
			r.floats[name] = c
			r.env.Faders[name] = c
		default:
			c := fade.New[float64](fade.NewCanvasGroup(), r.sched, f.FloatOptions())
			applyFlags(c, f)
			r.floats[name] = c
			r.env.Faders[name] = c
		}
		log.Printf("config: fader %s (%s)", name, f.Kind)
	}
}

// applyFlags copies configured endpoint flags onto a canvas group target.
func applyFlags(c *fade.Controller[float64], f config.FaderSpec) {
	g, ok := c.Target().(*fade.CanvasGroup)
	if !ok {
		return
	}
	if f.InFlags != (fade.Endpoint{}) || f.OutFlags != (fade.Endpoint{}) {
		g.InFlags = f.InFlags
		g.OutFlags = f.OutFlags
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
