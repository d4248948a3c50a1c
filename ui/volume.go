package ui

import (
	"math"

	"github.com/milk9111/commonsolutions/config"
	"github.com/milk9111/commonsolutions/prefs"
)

// MinVolume keeps the mixer level finite at the bottom of the slider.
const MinVolume = 0.0001

// VolumeSlider maps a linear slider value to a mixer level and remembers it
// in the preference store under "<param>Current".
type VolumeSlider struct {
	store *prefs.Store
	param string
	def   float64
	mix   func(db float64)
	value float64
}

// NewVolumeSlider restores the stored value, or the default, and pushes it to
// mix.
func NewVolumeSlider(store *prefs.Store, spec config.VolumeSpec, mix func(db float64)) *VolumeSlider {
	s := &VolumeSlider{
		store: store,
		param: spec.Param,
		def:   spec.Default,
		mix:   mix,
	}
	s.Set(store.Float(s.PrefsKey(), s.def))
	return s
}

func (s *VolumeSlider) PrefsKey() string {
	return s.param + "Current"
}

func (s *VolumeSlider) Value() float64 {
	return s.value
}

// Set clamps v to [MinVolume, 1], updates the mixer and stores the value.
func (s *VolumeSlider) Set(v float64) {
	s.value = max(MinVolume, min(1, v))
	if s.mix != nil {
		s.mix(Decibels(s.value))
	}
	s.store.SetFloat(s.PrefsKey(), s.value)
}

func (s *VolumeSlider) RestoreDefault() {
	s.Set(s.def)
}

// Decibels converts a slider value to the mixer scale.
func Decibels(v float64) float64 {
	return math.Log(v) * 20
}
