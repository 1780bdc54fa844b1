package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/corey/demoapp/internal/ports"
	"github.com/sirupsen/logrus"
)

// quietPeriod is how long matching changes must stop before a reload fires,
// so a binary still being written is never exec'd.
const quietPeriod = 250 * time.Millisecond

// Reloader turns file changes into a single restart signal.
type Reloader struct {
	watcher ports.Watcher
	roots   []string
	match   func(path string) bool
	log     *logrus.Logger
	changes chan string
	quiet   time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	gen     uint64
	stopped bool
}

// NewReloader watches paths for changes. With no paths it watches the
// running executable, so a rebuilt binary triggers a restart.
func NewReloader(w ports.Watcher, paths []string, log *logrus.Logger) (*Reloader, error) {
	if len(paths) > 0 {
		return newReloader(w, paths, func(string) bool { return true }, log), nil
	}

	exe, err := executablePath()
	if err != nil {
		return nil, err
	}
	return newReloader(w, []string{filepath.Dir(exe)}, func(p string) bool {
		return filepath.Clean(p) == exe
	}, log), nil
}

func newReloader(w ports.Watcher, roots []string, match func(string) bool, log *logrus.Logger) *Reloader {
	return &Reloader{
		watcher: w,
		roots:   roots,
		match:   match,
		log:     log,
		changes: make(chan string, 1),
		quiet:   quietPeriod,
	}
}

// Start begins watching.
func (r *Reloader) Start() error {
	if err := r.watcher.Watch(r.roots, r.onChange); err != nil {
		return fmt.Errorf("watch %v: %w", r.roots, err)
	}
	r.log.WithField("paths", r.roots).Debug("reloader watching")
	return nil
}

// Changes yields the most recent changed path once changes have been
// quiet for the quiet period. Bursts of changes coalesce into one value.
func (r *Reloader) Changes() <-chan string {
	return r.changes
}

// Stop releases the watcher and drops any pending change. Safe to call
// multiple times.
func (r *Reloader) Stop() error {
	r.mu.Lock()
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
	}
	r.mu.Unlock()
	return r.watcher.Stop()
}

// onChange restarts the quiet timer on every matching change.
func (r *Reloader) onChange(path string) {
	if !r.match(path) {
		return
	}
	r.log.WithField("path", path).Debug("change detected")

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.pending = path
	r.gen++
	gen := r.gen
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.quiet, func() { r.flush(gen) })
}

// flush publishes the pending change unless a newer one superseded it.
func (r *Reloader) flush(gen uint64) {
	r.mu.Lock()
	if r.stopped || gen != r.gen {
		r.mu.Unlock()
		return
	}
	path := r.pending
	r.mu.Unlock()

	select {
	case r.changes <- path:
	default:
	}
}

// executablePath resolves the running binary, following symlinks.
func executablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return filepath.Clean(exe), nil
}
