// Package overlay draws full-screen fades on top of the game.
package overlay

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/commonsolutions/fade"
)

// Overlay is a solid color drawn over the whole screen with the alpha of its
// canvas group. Fading in darkens the screen.
type Overlay struct {
	Group *fade.CanvasGroup
	Fader *fade.Controller[float64]
	Color color.Color

	pixel  *ebiten.Image
	cancel func()
}

// New returns a hidden black overlay faded by sched.
func New(sched *fade.Scheduler, opts fade.Options[float64]) *Overlay {
	g := fade.NewCanvasGroup()
	g.InFlags = fade.Endpoint{BlocksRaycasts: true}
	o := &Overlay{
		Group: g,
		Fader: fade.New[float64](g, sched, opts),
		Color: color.Black,
	}
	o.Fader.SetImmediate(fade.Out)
	return o
}

// Alpha returns the current opacity clamped to [0, 1].
func (o *Overlay) Alpha() float64 {
	return max(0, min(1, o.Group.Alpha))
}

// Covering reports whether the overlay swallows input.
func (o *Overlay) Covering() bool {
	return o.Group.BlocksRaycasts
}

// Sequence fades to the overlay color, calls onDark once it is fully opaque
// and fades back out. A fade-out that completes first abandons the sequence,
// and so does a later call to Sequence.
func (o *Overlay) Sequence(onDark func()) {
	if o.cancel != nil {
		o.cancel()
	}
	n := o.Fader.Notifier()
	var offIn, offOut func()
	done := func() {
		offIn()
		offOut()
		o.cancel = nil
	}
	offOut = n.OnOut(done)
	offIn = n.OnIn(func() {
		done()
		if onDark != nil {
			onDark()
		}
		o.Fader.FadeOut()
	})
	o.cancel = done
	o.Fader.FadeIn()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	alpha := o.Alpha()
	if alpha <= 0 {
		return
	}
	if o.pixel == nil {
		o.pixel = ebiten.NewImage(1, 1)
		o.pixel.Fill(color.White)
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.ColorScale.ScaleWithColor(o.Color)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(o.pixel, op)
}

// ColorScale converts a faded tint to an ebiten color scale.
func ColorScale(c color.NRGBA) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.ScaleWithColor(c)
	return cs
}
