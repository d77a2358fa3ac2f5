// Package watch re-runs a callback when the style configuration file or any
// file under the content root changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce coalesces editor save bursts into one run.
const DefaultDebounce = 150 * time.Millisecond

// ErrClosed is returned when Run is called on a closed Watcher.
var ErrClosed = errors.New("watcher closed")

// skipDirs are never watched.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// Options configure a Watcher.
type Options struct {
	ConfigPath       string        // Style configuration file
	Root             string        // Content root; watched recursively
	Debounce         time.Duration // Quiet period before a run; DefaultDebounce when zero
	RespectGitignore bool          // Skip directories ignored by root/.gitignore
	Logger           logrus.FieldLogger
}

// Watcher batches filesystem changes and hands them to a callback.
type Watcher struct {
	fsw        *fsnotify.Watcher
	configPath string
	root       string
	debounce   time.Duration
	gitignore  *ignore.GitIgnore
	log        logrus.FieldLogger

	mu     sync.Mutex
	dirs   map[string]bool
	closed bool
}

// New creates a Watcher and registers the config file's directory and every
// directory under Root.
func New(opts Options) (*Watcher, error) {
	configPath, err := filepath.Abs(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fsw:        fsw,
		configPath: configPath,
		root:       root,
		debounce:   opts.Debounce,
		log:        log,
		dirs:       make(map[string]bool),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if opts.RespectGitignore {
		if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
			w.gitignore = gi
		}
	}

	// Editors replace files by rename, so the config file is observed
	// through its directory.
	if err := w.add(filepath.Dir(configPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	if err := w.addRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return w, nil
}

// Run blocks until ctx is done, calling onChange with the sorted changed
// paths after each quiet period. Calls never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string)) error {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return ErrClosed
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.log.WithError(err).WithField("dir", event.Name).Warn("watch new directory")
					}
				}
			}
			pending[event.Name] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)

			w.log.WithField("changed", len(changed)).Debug("change detected")
			onChange(ctx, changed)
		}
	}
}

// Dirs returns the watched directories, sorted.
func (w *Watcher) Dirs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.dirs))
	for d := range w.dirs {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	return w.fsw.Close()
}

// relevant drops chmod-only events, events for skipped paths, and events
// in the config directory that do not concern the config file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if event.Name == w.configPath {
		return true
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !w.skip(event.Name)
}

// skip reports whether path sits in a directory that is never watched.
func (w *Watcher) skip(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}
	for dir := filepath.Dir(rel); ; dir = filepath.Dir(dir) {
		if skipDirs[filepath.Base(dir)] {
			return true
		}
		if dir == "." || dir == string(filepath.Separator) {
			break
		}
	}
	if skipDirs[filepath.Base(rel)] {
		return true
	}
	return w.gitignore != nil && w.gitignore.MatchesPath(filepath.ToSlash(rel))
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped; the root itself must exist.
			if p == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && w.skip(p) {
			return filepath.SkipDir
		}
		return w.add(p)
	})
}

func (w *Watcher) add(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.dirs[dir] {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.dirs[dir] = true
	return nil
}
