// Package watch notifies callers when an annotation document changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/areflesh/text-annot/internal/core/ports/driven"
	"github.com/areflesh/text-annot/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// DefaultInterval is the minimum spacing between notifications.
const DefaultInterval = 250 * time.Millisecond

// Watcher is an fsnotify-backed driven.FileWatcher.
// Bursts of events are coalesced so a single save produces one notification.
type Watcher struct {
	interval time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithInterval sets the minimum spacing between notifications.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// NewWatcher creates a file watcher.
func NewWatcher(opts ...Option) *Watcher {
	w := &Watcher{interval: DefaultInterval}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch observes path until ctx is cancelled.
// The parent directory is watched because documents are replaced by rename.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	out := make(chan struct{}, 1)
	limiter := rate.NewLimiter(rate.Every(w.interval), 1)
	go w.loop(ctx, fw, target, limiter, out)

	logger.Debug("Watching %s", target)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, target string, limiter *rate.Limiter, out chan<- struct{}) {
	defer close(out)
	defer fw.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if !isChange(ev, target) {
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			// Drop if a notification is already pending.
			select {
			case out <- struct{}{}:
			default:
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", target, err)
		}
	}
}

// isChange reports whether ev changed the content of target.
func isChange(ev fsnotify.Event, target string) bool {
	if filepath.Clean(ev.Name) != target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
