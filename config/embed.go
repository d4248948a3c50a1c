package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Dir is the on-disk directory whose files override the embedded defaults.
var Dir = "config"

const scriptExt = ".tengo"

// reloadable lists the file extensions Load and LoadScript read.
var reloadable = map[string]bool{".yaml": true, ".yml": true, scriptExt: true}

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var SpecsFS embed.FS

// Load returns the named spec, preferring the copy on disk.
func Load(name string) ([]byte, error) {
	clean := cleanSpecPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return SpecsFS.ReadFile(clean)
}

// LoadScript returns the named tengo script, preferring the copy on disk.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// ModTime returns the modification time of the on-disk copy of name.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanSpecPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanSpecPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, Dir+"/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	if !strings.HasSuffix(s, scriptExt) {
		s += scriptExt
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
