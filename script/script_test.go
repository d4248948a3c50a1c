package script

import (
	"testing"
	"time"

	"github.com/milk9111/commonsolutions/config"
	"github.com/milk9111/commonsolutions/event"
	"github.com/milk9111/commonsolutions/fade"
	"github.com/milk9111/commonsolutions/variable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFader struct {
	ins, outs int
}

func (f *fakeFader) FadeIn(...fade.CallOption)  { f.ins++ }
func (f *fakeFader) FadeOut(...fade.CallOption) { f.outs++ }

func newTestEnv(t *testing.T) (*Env, *fakeFader) {
	t.Helper()
	env := NewEnv(event.NewRegistry(), variable.NewRegistry())
	f := &fakeFader{}
	env.Faders["menu"] = f
	_, err := variable.Register(env.Vars, "menu_open", 0.0)
	require.NoError(t, err)
	return env, f
}

func TestBuiltins(t *testing.T) {
	env, menu := newTestEnv(t)
	raised := 0
	env.Events.Channel("ping").OnRaised(func() { raised++ })

	resp, err := Compile("test", []byte(`
ok := raise("ping")
missing := raise("nowhere")
fade_in("menu")
fade_out("menu")
unknown := fade_in("ghost")
set_float("menu_open", get_float("menu_open") + 2.5)
if ok && !missing && !unknown && is_undefined(get_float("nope")) {
	set_float("menu_open", get_float("menu_open") * 2)
}
log("done", 1)
`), env)
	require.NoError(t, err)
	require.NoError(t, resp.Run())

	assert.Equal(t, 1, raised)
	assert.Equal(t, 1, menu.ins)
	assert.Equal(t, 1, menu.outs)
	v, _ := env.Float("menu_open")
	assert.Equal(t, 5.0, v)
	_, ok := env.Events.Lookup("nowhere")
	assert.False(t, ok)
}

func TestBuiltinArgumentErrors(t *testing.T) {
	env, menu := newTestEnv(t)
	env.Faders["3"] = menu
	stringified := 0
	env.Events.Channel("[1]").OnRaised(func() { stringified++ })
	cases := []struct {
		name string
		src  string
	}{
		{"raise_arity", `raise()`},
		{"raise_type", `raise([1])`},
		{"set_float_arity", `set_float("menu_open")`},
		{"set_float_type", `set_float("menu_open", "x")`},
		{"get_float_type", `get_float({})`},
		{"fade_in_type", `fade_in(3)`},
		{"set_float_name_type", `set_float(["menu_open"], 1.0)`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := Compile(tc.name, []byte(tc.src), env)
			require.NoError(t, err)
			assert.Error(t, resp.Run())
		})
	}
	assert.Equal(t, 0, stringified)
	assert.Equal(t, 0, menu.ins)
	v, _ := env.Float("menu_open")
	assert.Equal(t, 0.0, v)
}

func TestCompileError(t *testing.T) {
	env, _ := newTestEnv(t)
	_, err := Compile("broken", []byte(`if {`), env)
	assert.Error(t, err)
}

func TestScriptCanRetriggerItself(t *testing.T) {
	env, _ := newTestEnv(t)
	_, err := variable.Register(env.Vars, "count", 0.0)
	require.NoError(t, err)

	resp, err := Compile("loop", []byte(`
n := get_float("count") + 1
set_float("count", n)
if n < 3 { raise("again") }
`), env)
	require.NoError(t, err)
	l := event.NewListener(env.Events.Channel("again"), resp.Func())
	require.NoError(t, l.Enable())

	env.Events.Raise("again")
	v, _ := env.Float("count")
	assert.Equal(t, 3.0, v)
}

func TestBindDefaults(t *testing.T) {
	spec, err := config.LoadRoot("defaults.yaml")
	require.NoError(t, err)

	env := NewEnv(event.NewRegistry(), variable.NewRegistry())
	for _, v := range spec.Variables {
		_, err := variable.Register(env.Vars, v.Name, v.Initial)
		require.NoError(t, err)
	}

	sched := fade.NewScheduler()
	menu := fade.NewAlphaFader(fade.NewCanvasGroup(), sched, time.Second)
	overlay := fade.NewAlphaFader(fade.NewCanvasGroup(), sched, time.Second)
	menu.SetImmediate(fade.Out)
	overlay.SetImmediate(fade.Out)
	env.Faders["menu"] = menu
	env.Faders["overlay"] = overlay

	listeners, err := Bind(env, spec.Events)
	require.NoError(t, err)
	require.Len(t, listeners, len(spec.Events))

	env.Events.Raise("menu_toggled")
	open, _ := env.Float("menu_open")
	assert.Equal(t, 1.0, open)
	dir, active := menu.Direction()
	assert.True(t, active)
	assert.Equal(t, fade.In, dir)

	env.Events.Raise("level_finished")
	finished, _ := env.Float("levels_finished")
	assert.Equal(t, 1.0, finished)
	assert.True(t, overlay.Active())

	Unbind(listeners)
	env.Events.Raise("menu_toggled")
	open, _ = env.Float("menu_open")
	assert.Equal(t, 1.0, open)
}

func TestBindMissingScript(t *testing.T) {
	env := NewEnv(event.NewRegistry(), variable.NewRegistry())
	_, err := Bind(env, []config.EventSpec{
		{Channel: "a", Listeners: []string{"log_quit"}},
		{Channel: "b", Listeners: []string{"does_not_exist"}},
	})
	require.Error(t, err)
	assert.Equal(t, 0, env.Events.Channel("a").Len())
}
