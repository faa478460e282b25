// Package watcher reports saves to an alternate playbook file so the
// interactive view can reload it while someone edits the content.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is how often the polling source stats the file.
const DefaultPollInterval = 2 * time.Second

// ForcePollEnv selects the polling source when set to a true value. Useful
// on network mounts where inotify never fires.
const ForcePollEnv = "PB_FORCE_POLL"

var (
	ErrFileRemoved    = errors.New("playbook file was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the window used to coalesce editor saves.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the stat interval of the polling source.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.pollEvery = d }
}

// WithOnError sets a callback for errors raised while watching.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) { w.onError = fn }
}

// WithForcePoll skips fsnotify.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) { w.forcePoll = force }
}

// source produces raw change signals for one file until ctx ends.
type source interface {
	run(ctx context.Context, changed func(), failed func(error))
	close()
}

// Watcher turns raw file events into at most one signal per debounce
// window on Changed.
type Watcher struct {
	path      string
	debounce  time.Duration
	pollEvery time.Duration
	forcePoll bool
	onError   func(error)

	mu      sync.Mutex
	src     source
	polling bool
	cancel  context.CancelFunc
	deb     *Debouncer

	changed chan struct{}
}

// New creates a watcher for path. Nothing is observed until Start.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:      abs,
		debounce:  DefaultDebounceDuration,
		pollEvery: DefaultPollInterval,
		onError:   func(error) {},
		changed:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start picks a source and begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return ErrAlreadyStarted
	}

	last, err := statFile(w.path)
	if errors.Is(err, ErrPermission) {
		return err
	}

	var src source
	if !w.forcePoll && !envBool(ForcePollEnv) {
		src, err = newNotifySource(w.path)
	}
	w.polling = src == nil || err != nil
	if w.polling {
		src = &pollSource{path: w.path, every: w.pollEvery, last: last}
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.src, w.cancel = src, cancel
	deb := NewDebouncer(w.debounce)
	w.deb = deb
	go src.run(ctx, func() { deb.Trigger(w.signal) }, w.onError)
	return nil
}

// Stop ends watching. Changed stays open; a pending receive never completes.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel == nil {
		return
	}
	w.cancel()
	w.src.close()
	w.deb.Cancel()
	w.cancel, w.src = nil, nil
}

// IsPolling reports whether the polling source is in use.
func (w *Watcher) IsPolling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polling
}

func (w *Watcher) IsStarted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}

// Changed receives once per debounced save.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) signal() {
	if !w.IsStarted() {
		return
	}
	select {
	case w.changed <- struct{}{}:
	default:
	}
}

// notifySource watches the parent directory, which keeps working when an
// editor saves by writing a temp file and renaming it over the original.
type notifySource struct {
	target string
	fsw    *fsnotify.Watcher
}

func newNotifySource(path string) (*notifySource, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &notifySource{target: filepath.Base(path), fsw: fsw}, nil
}

func (s *notifySource) run(ctx context.Context, changed func(), failed func(error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != s.target {
				continue
			}
			if ev.Has(fsnotify.Remove) {
				failed(ErrFileRemoved)
			} else if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				changed()
			}
		case err, ok := <-s.fsw.Errors:
			if !ok {
				return
			}
			failed(err)
		}
	}
}

func (s *notifySource) close() {
	s.fsw.Close()
}

// fileStamp is what the polling source compares between ticks.
type fileStamp struct {
	mtime time.Time
	size  int64
}

func (f fileStamp) exists() bool {
	return !f.mtime.IsZero()
}

func statFile(path string) (fileStamp, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return fileStamp{mtime: info.ModTime(), size: info.Size()}, nil
	case os.IsPermission(err):
		return fileStamp{}, ErrPermission
	default:
		return fileStamp{}, err
	}
}

type pollSource struct {
	path  string
	every time.Duration
	last  fileStamp
}

func (s *pollSource) run(ctx context.Context, changed func(), failed func(error)) {
	ticker := time.NewTicker(s.every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		cur, err := statFile(s.path)
		if err != nil {
			switch {
			case os.IsNotExist(err):
				// Report the disappearance once, then wait for it to return.
				if s.last.exists() {
					failed(ErrFileRemoved)
					s.last = fileStamp{}
				}
			default:
				failed(err)
			}
			continue
		}
		if cur.mtime.After(s.last.mtime) || cur.size != s.last.size {
			s.last = cur
			changed()
		}
	}
}

func (s *pollSource) close() {}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
