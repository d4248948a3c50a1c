package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/commonsolutions/config"
)

// frameRate resolves the tick rate and vsync setting. On desktop a nonzero
// vsync count ties updates to the display; otherwise updates run at Target.
func frameRate(fr config.FrameRateSpec) (tps int, vsync bool) {
	if !fr.Lock {
		return ebiten.DefaultTPS, true
	}
	target := fr.Target
	if target <= 0 {
		target = ebiten.DefaultTPS
	}
	if fr.Desktop {
		if fr.VSync > 0 {
			return ebiten.SyncWithFPS, true
		}
		return target, false
	}
	return target, false
}

func applyFrameRate(fr config.FrameRateSpec) {
	tps, vsync := frameRate(fr)
	ebiten.SetTPS(tps)
	ebiten.SetVsyncEnabled(vsync)
}

func cursorMode(c config.CursorSpec) ebiten.CursorModeType {
	if c.Locked {
		return ebiten.CursorModeCaptured
	}
	return ebiten.CursorModeVisible
}

func applySettings(spec *config.Spec) {
	applyFrameRate(spec.FrameRate)
	ebiten.SetCursorMode(cursorMode(spec.Cursor))
}
