package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/commonsolutions/config"
	"github.com/milk9111/commonsolutions/prefs"
)

func main() {
	specName := flag.String("config", "defaults.yaml", "root config file in config/ (disk copy wins over the embedded one)")
	prefsPath := flag.String("prefs", defaultPrefsPath(), "preferences file")
	watch := flag.Bool("watch", true, "reload config/ and config/scripts/ when they change on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	spec, err := config.LoadRoot(*specName)
	if err != nil {
		log.Fatal(err)
	}
	store, err := prefs.Open(*prefsPath)
	if err != nil {
		log.Printf("prefs: %v; using defaults", err)
		store = prefs.Memory()
	}

	var watcher *config.Watcher
	if *watch {
		watcher = newWatcher()
		if watcher != nil {
			defer watcher.Close()
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("commonsolutions")
	applySettings(spec)

	game, err := NewGame(spec, *specName, store, watcher)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// newWatcher watches the on-disk config directories that exist. It returns
// nil when there is nothing to watch.
func newWatcher() *config.Watcher {
	var dirs []string
	for _, dir := range []string{config.Dir, filepath.Join(config.Dir, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil
	}
	w, err := config.NewWatcher(dirs...)
	if err != nil {
		log.Printf("config: watch: %v", err)
		return nil
	}
	return w
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "prefs.yaml"
	}
	return filepath.Join(dir, "commonsolutions", "prefs.yaml")
}
