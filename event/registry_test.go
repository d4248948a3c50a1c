package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	quit := r.Channel("quit")
	assert.Same(t, quit, r.Channel("quit"))
	r.Channel("load_level")

	assert.Equal(t, []string{"load_level", "quit"}, r.Names())

	_, ok := r.Lookup("missing")
	assert.False(t, ok)
	assert.False(t, r.Raise("missing"))

	calls, raw := 0, 0
	l := NewListener(quit, func() { calls++ })
	require.NoError(t, l.Enable())
	quit.OnRaised(func() { raw++ })

	assert.True(t, r.Raise("quit"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, raw)

	r.Reset()
	assert.False(t, l.Attached())
	assert.True(t, r.Raise("quit"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, raw)

	ch, ok := r.Lookup("quit")
	require.True(t, ok)
	assert.Same(t, quit, ch, "reset keeps channel identity")
}

func TestDefaultRegistryHelpers(t *testing.T) {
	t.Cleanup(Default.Reset)

	calls := 0
	l := Listen("default_helper", func() { calls++ })
	assert.True(t, l.Attached())
	assert.Same(t, Get("default_helper"), l.Channel())

	assert.True(t, Raise("default_helper"))
	assert.Equal(t, 1, calls)
}
