package variable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariable(t *testing.T) {
	health := New("player_health", 3)
	updates := 0
	unsub := health.OnUpdated(func() { updates++ })

	health.Set(2)
	health.Set(2)
	assert.Equal(t, 2, health.Value())
	assert.Equal(t, 2, updates)

	health.Reset()
	assert.Equal(t, 3, health.Value())
	assert.Equal(t, 3, updates)

	unsub()
	unsub()
	health.Set(1)
	assert.Equal(t, 3, updates)
}

func TestUnsubscribeDuringUpdate(t *testing.T) {
	v := New("score", 0)
	var log []string
	var unsubA func()
	unsubA = v.OnUpdated(func() {
		log = append(log, "a")
		unsubA()
	})
	v.OnUpdated(func() { log = append(log, "b") })

	v.Set(1)
	v.Set(2)
	assert.Equal(t, []string{"a", "b", "b"}, log)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	volume, err := Register(r, "master_volume", 1.0)
	require.NoError(t, err)
	name, err := Register(r, "player_name", "")
	require.NoError(t, err)

	again, err := Register(r, "master_volume", 0.5)
	require.NoError(t, err)
	assert.Same(t, volume, again)
	assert.Equal(t, 1.0, again.Value(), "existing variable keeps its initial value")

	_, err = Register(r, "master_volume", 7)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	got, ok := Lookup[float64](r, "master_volume")
	require.True(t, ok)
	assert.Same(t, volume, got)
	_, ok = Lookup[string](r, "master_volume")
	assert.False(t, ok)
	_, ok = Lookup[string](r, "missing")
	assert.False(t, ok)

	volume.Set(0.2)
	name.Set("blyman")
	r.Reset()
	assert.Equal(t, 1.0, volume.Value())
	assert.Equal(t, "", name.Value())
	assert.Equal(t, []string{"master_volume", "player_name"}, r.Names())
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	v, err := Register(r, "score", 1.0)
	require.NoError(t, err)

	r.Remove("score")
	r.Remove("missing")
	_, ok := Lookup[float64](r, "score")
	assert.False(t, ok)
	assert.Empty(t, r.Names())

	again, err := Register(r, "score", 0.0)
	require.NoError(t, err)
	assert.NotSame(t, v, again)
	assert.Equal(t, 1.0, v.Value())
}
