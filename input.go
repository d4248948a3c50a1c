package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the demo's one-shot commands for the current frame.
type Input struct {
	ToggleMenu  bool
	FinishLevel bool
	NextTrack   bool
	Quit        bool
}

// Update polls the keyboard and the first gamepad.
func (i *Input) Update() {
	i.ToggleMenu = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.FinishLevel = inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	i.NextTrack = inpututil.IsKeyJustPressed(ebiten.KeyM)
	i.Quit = inpututil.IsKeyJustPressed(ebiten.KeyF12)

	ids := ebiten.GamepadIDs()
	if len(ids) == 0 {
		return
	}
	gid := ids[0]
	if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight) {
		i.ToggleMenu = true
	}
	if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
		i.FinishLevel = true
	}
}
