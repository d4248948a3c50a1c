package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/commonsolutions/assets"
	"github.com/milk9111/commonsolutions/config"
	"github.com/milk9111/commonsolutions/event"
	"github.com/milk9111/commonsolutions/music"
	"github.com/milk9111/commonsolutions/overlay"
	"github.com/milk9111/commonsolutions/prefs"
	"github.com/milk9111/commonsolutions/ui"
	"github.com/milk9111/commonsolutions/variable"
	"golang.org/x/image/font/basicfont"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	// longest frame fed to the scheduler when updates follow the display
	maxStep = 100 * time.Millisecond
)

var tracks = []string{"theme.wav", "menu.wav"}

var background = color.NRGBA{R: 0x1d, G: 0x26, B: 0x3b, A: 0xff}

type Game struct {
	frames int

	rt       *runtime
	input    Input
	overlay  *overlay.Overlay
	menu     *ui.OptionsMenu
	music    *music.Player
	volume   *ui.VolumeSlider
	prefs    *prefs.Store
	watcher  *config.Watcher
	specName string
	face     ebtext.Face

	last  time.Time
	track int
	quit  bool
}

func NewGame(spec *config.Spec, specName string, store *prefs.Store, watcher *config.Watcher) (*Game, error) {
	rt := newRuntime(spec)
	g := &Game{
		rt:       rt,
		prefs:    store,
		watcher:  watcher,
		specName: specName,
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
	}

	g.overlay = overlay.New(rt.sched, rt.floatOptions("overlay"))
	rt.adopt("overlay", g.overlay.Fader)

	g.music = music.NewPlayer(loadTrack, rt.sched, rt.floatOptions("music"))
	rt.adopt("music", g.music.Fader())

	vs := spec.Volume
	if vs.Param == "" {
		vs.Param = "Music"
	}
	if vs.Default <= 0 {
		vs.Default = 1
	}
	g.volume = ui.NewVolumeSlider(store, vs, g.music.SetGain)

	status, err := variable.Register(rt.vars, "status", "Levels finished: 0")
	if err != nil {
		return nil, err
	}
	g.menu = ui.NewOptionsMenu(rt.sched, rt.floatOptions("menu"), ui.MenuOptions{
		Width:  baseWidth,
		Height: baseHeight,
		Title:  "Paused",
		Status: status,
		Volume: g.volume,
		Resume: func() { rt.events.Raise("menu_toggled") },
		Quit:   func() { rt.events.Raise("application_quit") },
	})
	rt.adopt("menu", g.menu.Fader)

	if err := rt.build(); err != nil {
		return nil, err
	}

	rt.events.Channel("application_quit").OnRaised(func() { g.quit = true })
	g.overlay.Fader.Notifier().OnIn(func() { rt.events.Raise("screen_dark") })
	if err := event.NewListener(rt.events.Channel("screen_dark"), g.nextTrack).Enable(); err != nil {
		return nil, err
	}
	if finished, ok := variable.Lookup[float64](rt.vars, "levels_finished"); ok {
		finished.OnUpdated(func() {
			status.Set(fmt.Sprintf("Levels finished: %.0f", finished.Value()))
		})
	}

	rt.start()
	g.music.Play(tracks[g.track])
	return g, nil
}

func loadTrack(name string) (music.Track, error) {
	p, err := assets.LoadAudioPlayer(name)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (g *Game) nextTrack() {
	g.track = (g.track + 1) % len(tracks)
	g.music.Play(tracks[g.track])
}

func (g *Game) Update() error {
	if g.quit {
		return g.shutdown()
	}
	g.frames++

	g.reload()
	g.input.Update()
	switch {
	case g.input.Quit:
		g.rt.events.Raise("application_quit")
	case g.input.ToggleMenu:
		g.rt.events.Raise("menu_toggled")
	case g.input.FinishLevel && !g.overlay.Covering() && !g.menu.Visible():
		g.rt.events.Raise("level_finished")
	case g.input.NextTrack && !g.overlay.Covering():
		// the screen_dark listeners switch the track behind the overlay
		g.overlay.Sequence(nil)
	}

	g.menu.Update()
	g.rt.sched.Step(g.delta())
	g.music.Update()

	if g.quit {
		return g.shutdown()
	}
	return nil
}

// delta returns the time covered by this update.
func (g *Game) delta() time.Duration {
	now := time.Now()
	defer func() { g.last = now }()
	if tps := ebiten.TPS(); tps > 0 {
		return time.Second / time.Duration(tps)
	}
	if g.last.IsZero() {
		return 0
	}
	return min(now.Sub(g.last), maxStep)
}

// reload applies config edits picked up by the watcher.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("config: watch: %v", err)
		return
	case <-g.watcher.Changed:
	default:
		return
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	log.Printf("config: changed %s", strings.Join(changed, ", "))

	spec, err := config.LoadRoot(g.specName)
	if err != nil {
		log.Printf("config: reload %s: %v", g.specName, err)
		return
	}
	if err := g.rt.reload(spec); err != nil {
		log.Printf("config: reload %s: %v", g.specName, err)
		return
	}
	applySettings(spec)
	log.Printf("config: reloaded %s", g.specName)
}

func (g *Game) shutdown() error {
	g.music.Stop()
	g.menu.Close()
	if err := g.prefs.Save(); err != nil {
		log.Printf("prefs: save: %v", err)
	}
	return ebiten.Termination
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	if tint, ok := g.rt.tints["banner"]; ok {
		op := &ebtext.DrawOptions{}
		op.GeoM.Scale(4, 4)
		op.GeoM.Translate(baseWidth/2-200, baseHeight/3)
		op.ColorScale = overlay.ColorScale(tint.C)
		ebtext.Draw(screen, "common solutions", g.face, op)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.2f  track: %s  volume: %.2f\nEsc: menu  Enter: finish level  M: next track  F12: quit",
		ebiten.ActualFPS(), g.music.Current(), g.music.Volume(),
	))

	g.menu.Draw(screen)
	g.overlay.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
