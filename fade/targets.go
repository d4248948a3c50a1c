package fade

import (
	"image/color"
	"time"
)

// Property is an in-memory Target.
type Property[T any] struct {
	V T
}

func (p *Property[T]) Value() T     { return p.V }
func (p *Property[T]) SetValue(v T) { p.V = v }

// Endpoint holds the auxiliary flags a CanvasGroup takes at one endpoint.
type Endpoint struct {
	Interactable   bool `yaml:"interactable"`
	BlocksRaycasts bool `yaml:"blocks_raycasts"`
}

// CanvasGroup is the alpha and input state of a UI panel.
type CanvasGroup struct {
	Alpha          float64
	Interactable   bool
	BlocksRaycasts bool

	InFlags  Endpoint
	OutFlags Endpoint
}

// NewCanvasGroup returns a visible group that is interactive when faded in
// and inert when faded out.
func NewCanvasGroup() *CanvasGroup {
	return &CanvasGroup{
		Alpha:          1,
		Interactable:   true,
		BlocksRaycasts: true,
		InFlags:        Endpoint{Interactable: true, BlocksRaycasts: true},
	}
}

func (g *CanvasGroup) Value() float64     { return g.Alpha }
func (g *CanvasGroup) SetValue(v float64) { g.Alpha = v }

func (g *CanvasGroup) ApplyEndpoint(dir Direction) {
	flags := g.InFlags
	if dir == Out {
		flags = g.OutFlags
	}
	g.Interactable = flags.Interactable
	g.BlocksRaycasts = flags.BlocksRaycasts
}

// Volumer is an audio source with a settable volume in [0, 1].
// *audio.Player from ebiten satisfies it.
type Volumer interface {
	Volume() float64
	SetVolume(v float64)
}

// Volume adapts a Volumer to a Target.
type Volume struct {
	Source Volumer
}

func (v Volume) Value() float64 {
	if v.Source == nil {
		return 0
	}
	return v.Source.Volume()
}

func (v Volume) SetValue(x float64) {
	if v.Source == nil {
		return
	}
	v.Source.SetVolume(x)
}

// Color is a fadeable tint, such as a sprite color.
type Color struct {
	C color.NRGBA
}

func (c *Color) Value() color.NRGBA     { return c.C }
func (c *Color) SetValue(v color.NRGBA) { c.C = v }

// ColorOptions returns options fading between two colors. Dynamic timing
// follows the alpha channel.
func ColorOptions(in, out color.NRGBA) Options[color.NRGBA] {
	return Options[color.NRGBA]{
		In:        in,
		Out:       out,
		Duration:  DefaultDuration,
		Lerp:      LerpNRGBA,
		Normalize: AlphaOf,
	}
}

// NewAlphaFader fades a canvas group between alpha 1 and 0.
func NewAlphaFader(g *CanvasGroup, sched *Scheduler, d time.Duration) *Controller[float64] {
	opts := FloatOptions(1, 0)
	opts.Duration = d
	return New[float64](g, sched, opts)
}

// NewVolumeFader fades an audio source between in and out volume.
func NewVolumeFader(src Volumer, sched *Scheduler, in, out float64, d time.Duration) *Controller[float64] {
	opts := FloatOptions(in, out)
	opts.Duration = d
	return New[float64](Volume{Source: src}, sched, opts)
}

// NewColorFader fades a tint between two colors.
func NewColorFader(c *Color, sched *Scheduler, in, out color.NRGBA, d time.Duration) *Controller[color.NRGBA] {
	opts := ColorOptions(in, out)
	opts.Duration = d
	return New[color.NRGBA](c, sched, opts)
}
