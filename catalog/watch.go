package catalog

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
)

// Store hands out the current catalog to readers while a watcher swaps in
// new builds.
type Store struct {
	current atomic.Pointer[Catalog]
}

func NewStore(c *Catalog) *Store {
	s := &Store{}
	if c != nil {
		s.current.Store(c)
	}
	return s
}

// Get returns the current catalog, nil before the first successful build.
func (s *Store) Get() *Catalog { return s.current.Load() }

func (s *Store) Set(c *Catalog) { s.current.Store(c) }

// DefaultWatchInterval is the poll interval used when Watcher.Interval is not positive.
const DefaultWatchInterval = time.Second

// Watcher polls a vocabulary file and rebuilds the catalog after it stops
// changing for Debounce. Failed rebuilds keep the previous catalog.
type Watcher struct {
	Path     string
	Interval time.Duration
	Debounce time.Duration
	Cache    *Cache
	Store    *Store
	Logger   *slog.Logger

	// OnError is called with every failed rebuild.
	OnError func(error)
	// OnReload is called after a new catalog was stored.
	OnReload func(*Catalog)
}

// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	debounced := debounce.New(max(w.Debounce, 0))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastMod time.Time
	var lastSize int64
	if info, err := os.Stat(w.Path); err == nil {
		lastMod, lastSize = info.ModTime(), info.Size()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(w.Path)
			if err != nil {
				logger.Warn("vocabulary not readable", "path", w.Path, "error", err)
				continue
			}
			if info.ModTime().Equal(lastMod) && info.Size() == lastSize {
				continue
			}
			lastMod, lastSize = info.ModTime(), info.Size()
			logger.Debug("vocabulary changed", "path", w.Path, "mod_time", lastMod)
			debounced(func() {
				if ctx.Err() != nil {
					return
				}
				w.reload(logger)
			})
		}
	}
}

func (w *Watcher) reload(logger *slog.Logger) {
	c, err := w.Cache.Get(w.Path)
	if err != nil {
		logger.Error("reloading vocabulary failed, keeping previous catalog", "path", w.Path, "error", err)
		if w.OnError != nil {
			w.OnError(err)
		}
		return
	}
	if prev := w.Store.Get(); prev == c {
		return
	}
	w.Store.Set(c)
	logger.Info("vocabulary reloaded", "path", w.Path, "build", c.BuildID(), "chords", len(c.chordNames))
	if w.OnReload != nil {
		w.OnReload(c)
	}
}
