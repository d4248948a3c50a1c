package config

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher collects changes to spec and script files on disk. Repeated writes
// to one file between two Drain calls are reported once.
type Watcher struct {
	fs *fsnotify.Watcher

	// Changed receives a value whenever the pending set goes from empty to
	// non-empty.
	Changed chan struct{}
	Errors  chan error

	mu      sync.Mutex
	pending map[string]struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changed: make(chan struct{}, 1),
		Errors:  make(chan error, 1),
		pending: make(map[string]struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

// Drain returns the changed paths in name order and clears them.
func (w *Watcher) Drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	out := make([]string, 0, len(w.pending))
	for name := range w.pending {
		out = append(out, name)
	}
	clear(w.pending)
	sort.Strings(out)
	return out
}

func (w *Watcher) run() {
	const ops = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&ops != 0 && reloadable[strings.ToLower(filepath.Ext(ev.Name))] {
				w.add(ev.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) add(name string) {
	w.mu.Lock()
	first := len(w.pending) == 0
	w.pending[name] = struct{}{}
	w.mu.Unlock()
	if first {
		select {
		case w.Changed <- struct{}{}:
		default:
		}
	}
}
