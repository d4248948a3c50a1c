package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/commonsolutions/config"
	"github.com/milk9111/commonsolutions/fade"
)

const viewSize = 512

// viewGame ping-pongs one configured fader and draws its value as a square.
type viewGame struct {
	name   string
	sched  *fade.Scheduler
	fader  *fade.Controller[color.NRGBA]
	tint   *fade.Color
	square *ebiten.Image
	dir    fade.Direction
}

func newViewGame(name string, spec config.FaderSpec) *viewGame {
	g := &viewGame{
		name:   name,
		sched:  fade.NewScheduler(),
		tint:   &fade.Color{},
		square: ebiten.NewImage(viewSize/2, viewSize/2),
	}
	g.square.Fill(color.White)
	opts := colorOptions(spec)
	if opts.Duration <= 0 {
		// instant fades would ping-pong forever inside one call
		opts.Duration = fade.DefaultDuration
	}
	g.fader = fade.New[color.NRGBA](g.tint, g.sched, opts)
	g.fader.Notifier().OnIn(func() { g.dir = fade.Out; g.fader.FadeOut() })
	g.fader.Notifier().OnOut(func() { g.dir = fade.In; g.fader.FadeIn() })
	g.fader.SetImmediate(fade.Out)
	g.dir = fade.In
	g.fader.FadeIn()
	return g
}

func (g *viewGame) Update() error {
	g.sched.Step(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *viewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(viewSize/4, viewSize/4)
	op.ColorScale.ScaleWithColor(g.tint.C)
	screen.DrawImage(g.square, op)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s: %s %.2f", g.name, g.dir, g.fader.Progress()))
}

func (g *viewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

// colorOptions shows alpha and volume faders as a white square whose alpha
// follows the fader value.
func colorOptions(spec config.FaderSpec) fade.Options[color.NRGBA] {
	if spec.Kind == config.FaderColor {
		return spec.ColorOptions()
	}
	f := spec.FloatOptions()
	opts := fade.ColorOptions(gray(f.In), gray(f.Out))
	opts.Duration = f.Duration
	opts.DynamicTiming = f.DynamicTiming
	return opts
}

func gray(alpha float64) color.NRGBA {
	a := uint8(max(0, min(1, alpha))*255 + 0.5)
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: a}
}

// plot steps a float fader from start in dir and writes one "seconds,value"
// line per tick.
func plot(w io.Writer, spec config.FaderSpec, dir fade.Direction, start float64, tps int) error {
	sched := fade.NewScheduler()
	target := &fade.Property[float64]{V: start}
	c := fade.New[float64](target, sched, spec.FloatOptions())
	dt := time.Second / time.Duration(tps)

	done := false
	c.Notifier().On(dir, func() { done = true })
	if dir == fade.In {
		c.FadeIn()
	} else {
		c.FadeOut()
	}

	var elapsed time.Duration
	for {
		if _, err := fmt.Fprintf(w, "%.4f,%.4f\n", elapsed.Seconds(), target.V); err != nil {
			return err
		}
		if done {
			return nil
		}
		sched.Step(dt)
		elapsed += dt
	}
}

func main() {
	specName := flag.String("config", "defaults.yaml", "root config file")
	name := flag.String("fader", "menu", "fader to preview")
	plotDir := flag.String("plot", "", "print the trajectory of a single \"in\" or \"out\" fade instead of opening a window")
	start := flag.Float64("start", 0, "starting value for -plot")
	tps := flag.Int("tps", ebiten.DefaultTPS, "ticks per second for -plot")
	flag.Parse()

	spec, err := config.LoadRoot(*specName)
	if err != nil {
		log.Fatal(err)
	}
	f, ok := spec.Faders[*name]
	if !ok {
		log.Fatalf("fadeview: no fader %q in %s", *name, *specName)
	}

	if *plotDir != "" {
		if f.Kind == config.FaderColor {
			log.Fatalf("fadeview: -plot needs an alpha or volume fader, %q is %s", *name, f.Kind)
		}
		dir := fade.In
		switch *plotDir {
		case "in":
		case "out":
			dir = fade.Out
		default:
			log.Fatalf("fadeview: -plot must be in or out, got %q", *plotDir)
		}
		if *tps <= 0 {
			log.Fatalf("fadeview: -tps must be positive")
		}
		if err := plot(os.Stdout, f, dir, *start, *tps); err != nil {
			log.Fatal(err)
		}
		return
	}

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("fadeview: " + *name)
	if err := ebiten.RunGame(newViewGame(*name, f)); err != nil {
		log.Fatal(err)
	}
}
