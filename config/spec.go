package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/milk9111/commonsolutions/fade"
	"gopkg.in/yaml.v3"
)

// FaderKind selects the property a fader drives.
type FaderKind string

const (
	FaderAlpha  FaderKind = "alpha"
	FaderVolume FaderKind = "volume"
	FaderColor  FaderKind = "color"
)

// Spec is the root configuration document.
type Spec struct {
	Faders    map[string]FaderSpec `yaml:"faders"`
	Events    []EventSpec          `yaml:"events"`
	Variables []VariableSpec       `yaml:"variables"`
	FrameRate FrameRateSpec        `yaml:"frame_rate"`
	Cursor    CursorSpec           `yaml:"cursor"`
	Volume    VolumeSpec           `yaml:"volume"`
}

// FaderSpec configures one fade controller. Duration is in seconds.
type FaderSpec struct {
	Kind           FaderKind     `yaml:"kind"`
	Duration       float64       `yaml:"duration"`
	DynamicTiming  *bool         `yaml:"dynamic_timing"`
	StartHidden    bool          `yaml:"start_hidden"`
	FadeInOnStart  bool          `yaml:"fade_in_on_start"`
	FadeOutOnStart bool          `yaml:"fade_out_on_start"`
	In             *float64      `yaml:"in"`
	Out            *float64      `yaml:"out"`
	InColor        *Color        `yaml:"in_color"`
	OutColor       *Color        `yaml:"out_color"`
	InFlags        fade.Endpoint `yaml:"in_flags"`
	OutFlags       fade.Endpoint `yaml:"out_flags"`
}

// EventSpec binds tengo scripts as listeners of a channel.
type EventSpec struct {
	Channel   string   `yaml:"channel"`
	Listeners []string `yaml:"listeners"`
}

// VariableSpec declares a float variable with its initial value.
type VariableSpec struct {
	Name    string  `yaml:"name"`
	Initial float64 `yaml:"initial"`
}

// FrameRateSpec configures the frame lock. On desktop builds vsync drives the
// frame rate and Target is ignored.
type FrameRateSpec struct {
	Lock    bool `yaml:"lock"`
	Desktop bool `yaml:"desktop"`
	Target  int  `yaml:"target"`
	VSync   int  `yaml:"vsync"`
}

type CursorSpec struct {
	Locked bool `yaml:"locked"`
}

// VolumeSpec configures the volume slider.
type VolumeSpec struct {
	Param   string  `yaml:"param"`
	Default float64 `yaml:"default"`
}

// DurationValue converts the configured seconds, defaulting to
// fade.DefaultDuration when unset.
func (f FaderSpec) DurationValue() time.Duration {
	if f.Duration == 0 {
		return fade.DefaultDuration
	}
	return time.Duration(f.Duration * float64(time.Second))
}

func (f FaderSpec) dynamicTiming(def bool) bool {
	if f.DynamicTiming == nil {
		return def
	}
	return *f.DynamicTiming
}

// FloatOptions builds options for alpha and volume faders.
func (f FaderSpec) FloatOptions() fade.Options[float64] {
	in, out := 1.0, 0.0
	if f.In != nil {
		in = *f.In
	}
	if f.Out != nil {
		out = *f.Out
	}
	opts := fade.FloatOptions(in, out)
	opts.Duration = f.DurationValue()
	opts.DynamicTiming = f.dynamicTiming(true)
	opts.StartHidden = f.StartHidden
	opts.FadeInOnStart = f.FadeInOnStart
	opts.FadeOutOnStart = f.FadeOutOnStart
	return opts
}

// ColorOptions builds options for color faders. Colors default to opaque
// white in and transparent white out.
func (f FaderSpec) ColorOptions() fade.Options[color.NRGBA] {
	in := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	out := color.NRGBA{R: 255, G: 255, B: 255}
	if f.InColor != nil {
		in = f.InColor.NRGBA
	}
	if f.OutColor != nil {
		out = f.OutColor.NRGBA
	}
	opts := fade.ColorOptions(in, out)
	opts.Duration = f.DurationValue()
	opts.DynamicTiming = f.dynamicTiming(false)
	opts.StartHidden = f.StartHidden
	opts.FadeInOnStart = f.FadeInOnStart
	opts.FadeOutOnStart = f.FadeOutOnStart
	return opts
}

// Validate reports configuration errors that would otherwise surface as odd
// runtime behavior.
func (s *Spec) Validate() error {
	for name, f := range s.Faders {
		switch f.Kind {
		case FaderAlpha, FaderVolume, FaderColor:
		default:
			return fmt.Errorf("config: fader %q: unknown kind %q", name, f.Kind)
		}
		if f.FadeInOnStart && f.FadeOutOnStart {
			return fmt.Errorf("config: fader %q: fade_in_on_start and fade_out_on_start are exclusive", name)
		}
	}
	for i, e := range s.Events {
		if strings.TrimSpace(e.Channel) == "" {
			return fmt.Errorf("config: events[%d]: channel is required", i)
		}
	}
	if s.FrameRate.VSync < 0 || s.FrameRate.VSync > 4 {
		return fmt.Errorf("config: frame_rate.vsync must be between 0 and 4, got %d", s.FrameRate.VSync)
	}
	return nil
}

// LoadSpec reads and decodes a YAML document.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("config: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadRoot loads and validates the root Spec.
func LoadRoot(filename string) (*Spec, error) {
	spec, err := LoadSpec[Spec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Color decodes "#rrggbb" or "#rrggbbaa".
type Color struct {
	color.NRGBA
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.NRGBA = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
