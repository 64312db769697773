// Package watch turns a directory into a drop zone: image files that land in
// it are collected and handed off in batches.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/AnyUserName/storeresize-cli/internal/source"
)

// Handler processes one batch of newly arrived files. It runs on its own
// goroutine; the watcher never starts a second one until it returns.
type Handler func(paths []string)

// Config configures a Watcher.
type Config struct {
	Dir      string
	Debounce time.Duration // quiet period before a batch is handed off
	Verbose  bool
	Log      io.Writer
}

// Watcher monitors a directory for new image files.
type Watcher struct {
	cfg    Config
	handle Handler
}

// New creates a watcher for cfg.Dir.
func New(cfg Config, handle Handler) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	return &Watcher{cfg: cfg, handle: handle}
}

// Run watches until ctx is done. A batch in flight at that point is allowed
// to finish.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.cfg.Dir, err)
	}
	w.logf("watching %s", w.cfg.Dir)

	return w.loop(ctx, fsw.Events, fsw.Errors)
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	var (
		pending []string
		seen    = map[string]bool{}
		armed   bool
		busy    chan struct{} // closed by the handler goroutine; nil when idle
	)
	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()
	defer timer.Stop()

	flush := func() {
		batch := pending
		pending, seen = nil, map[string]bool{}
		done := make(chan struct{})
		busy = done
		w.logf("batch of %d file(s)", len(batch))
		go func() {
			defer close(done)
			w.handle(batch)
		}()
	}

	for {
		select {
		case <-ctx.Done():
			if busy != nil {
				<-busy
			}
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				events = nil
				break
			}
			switch {
			case ev.Has(fsnotify.Create) && accept(ev.Name) && !seen[ev.Name]:
				seen[ev.Name] = true
				pending = append(pending, ev.Name)
				timer.Reset(w.cfg.Debounce)
				armed = true
			case ev.Has(fsnotify.Write) && seen[ev.Name]:
				// Still being written; wait for it to settle.
				timer.Reset(w.cfg.Debounce)
				armed = true
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				break
			}
			fmt.Fprintf(w.cfg.Log, "[storeresize] watch error: %v\n", err)

		case <-timer.C:
			armed = false
			if busy == nil && len(pending) > 0 {
				flush()
			}

		case <-busy:
			busy = nil
			if !armed && len(pending) > 0 {
				flush()
			}
		}

		if events == nil && errs == nil && busy == nil && !armed {
			if len(pending) > 0 {
				flush()
				continue
			}
			return nil
		}
	}
}

// accept filters out hidden and partial files.
func accept(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return source.IsImagePath(name)
}

func (w *Watcher) logf(format string, args ...any) {
	if w.cfg.Verbose {
		fmt.Fprintf(w.cfg.Log, "[storeresize] "+format+"\n", args...)
	}
}
