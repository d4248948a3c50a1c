// Package music plays one looping background track at a time and crossfades
// through silence when the track changes.
package music

import (
	"log"
	"math"
	"strings"

	"github.com/milk9111/commonsolutions/fade"
)

// Track is a playable audio stream. *audio.Player from ebiten satisfies it.
type Track interface {
	fade.Volumer
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
}

// Loader opens a track by asset path.
type Loader func(name string) (Track, error)

// Player owns the current track and a fader over its level. The volume sent
// to a track is level * gain.
type Player struct {
	load   Loader
	fader  *fade.Controller[float64]
	tracks map[string]Track

	current string
	pending string
	queued  bool
	level   float64
	gain    float64
	Loop    bool
}

// NewPlayer fades tracks with opts on sched. Loaded tracks are cached.
func NewPlayer(load Loader, sched *fade.Scheduler, opts fade.Options[float64]) *Player {
	p := &Player{
		load:   load,
		tracks: make(map[string]Track),
		gain:   1,
		Loop:   true,
	}
	p.fader = fade.New[float64](level{p}, sched, opts)
	p.fader.Notifier().OnOut(p.switchToPending)
	return p
}

func (p *Player) Fader() *fade.Controller[float64] {
	return p.fader
}

// Current returns the playing track, or "" when silent.
func (p *Player) Current() string {
	return p.current
}

// Volume returns the volume last sent to the current track.
func (p *Player) Volume() float64 {
	return p.level * p.gain
}

// Play switches to track. The current track fades out first; "" stops.
// Asking for the track already playing fades it back in.
func (p *Player) Play(track string) {
	track = strings.TrimSpace(track)
	if p.current == track {
		p.queued = false
		if track != "" {
			p.ensurePlaying()
			p.fader.FadeIn()
		}
		return
	}

	p.pending = track
	p.queued = true
	if p.current == "" {
		p.switchToPending()
		return
	}
	p.fader.FadeOut()
}

func (p *Player) Stop() {
	p.Play("")
}

// SetGain sets the output gain from a mixer level in the slider's decibel
// scale (20 times the natural log of the linear gain).
func (p *Player) SetGain(db float64) {
	p.gain = math.Exp(db / 20)
	p.apply()
}

// Update restarts a looping track that reached its end.
func (p *Player) Update() {
	t := p.track()
	if t == nil || !p.Loop || t.IsPlaying() || p.fader.Active() {
		return
	}
	if err := t.Rewind(); err != nil {
		log.Printf("music: rewind %q: %v", p.current, err)
		return
	}
	t.Play()
}

func (p *Player) switchToPending() {
	if !p.queued {
		return
	}
	p.queued = false

	if t := p.track(); t != nil {
		t.Pause()
		if err := t.Rewind(); err != nil {
			log.Printf("music: rewind %q: %v", p.current, err)
		}
	}
	p.current = ""

	next := p.pending
	p.pending = ""
	if next == "" {
		return
	}

	t, err := p.trackFor(next)
	if err != nil {
		log.Printf("music: load %q: %v", next, err)
		return
	}
	p.current = next
	p.fader.SetImmediate(fade.Out)
	if err := t.Rewind(); err != nil {
		log.Printf("music: rewind %q: %v", next, err)
	}
	t.Play()
	p.fader.FadeIn()
}

func (p *Player) ensurePlaying() {
	if t := p.track(); t != nil && !t.IsPlaying() {
		t.Play()
	}
}

func (p *Player) track() Track {
	if p.current == "" {
		return nil
	}
	return p.tracks[p.current]
}

func (p *Player) trackFor(name string) (Track, error) {
	if t, ok := p.tracks[name]; ok {
		return t, nil
	}
	t, err := p.load(name)
	if err != nil {
		return nil, err
	}
	p.tracks[name] = t
	return t, nil
}

func (p *Player) apply() {
	if t := p.track(); t != nil {
		t.SetVolume(p.level * p.gain)
	}
}

// level is the fade target for the player's current track.
type level struct{ p *Player }

func (l level) Value() float64 { return l.p.level }

func (l level) SetValue(v float64) {
	l.p.level = v
	l.p.apply()
}
