package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce drops repeat notifications for one file; editors often write
// twice.
const DefaultDebounce = 100 * time.Millisecond

type WatchOptions struct {
	Debounce time.Duration
	Log      *zap.Logger
}

// Watcher reports spec files changed on disk. Events carries the base name of
// the file (e.g. "player.yaml") so it can be passed straight to Load. The game
// loop drains Events without blocking and reloads on its own goroutine.
type Watcher struct {
	fs     *fsnotify.Watcher
	log    *zap.Logger
	window time.Duration

	Events chan string
	Errors chan error

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewWatcher watches dir with default options.
func NewWatcher(dir string) (*Watcher, error) {
	return NewWatcherWithOptions(dir, WatchOptions{})
}

func NewWatcherWithOptions(dir string, opts WatchOptions) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		fs:     fw,
		log:    opts.Log.With(zap.String("dir", dir)),
		window: opts.Debounce,
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops watching and closes Events and Errors. Safe to call twice.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	seen := make(map[string]time.Time)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			name, ok := w.accept(ev, seen)
			if !ok {
				continue
			}
			select {
			case w.Events <- name:
			case <-w.stop:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				w.log.Warn("dropped watcher error", zap.Error(err))
			}
		case <-w.stop:
			return
		}
	}
}

// accept filters ev down to spec writes outside the debounce window.
func (w *Watcher) accept(ev fsnotify.Event, seen map[string]time.Time) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	if !isSpecFile(ev.Name) {
		return "", false
	}
	now := time.Now()
	if last, ok := seen[ev.Name]; ok && now.Sub(last) < w.window {
		return "", false
	}
	seen[ev.Name] = now
	w.log.Debug("spec changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
	return filepath.Base(ev.Name), true
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
