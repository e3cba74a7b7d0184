package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extraChord = `
(chord (name Cm) (pronounce C minor) (key c) (family minor) (spell c eb g) (color eb) (priority eb c g) (approach)
  (voicings (triad (type closed) (notes c eb g) (extension))) (extensions) (scales) (avoid) (substitute))
`

func copyFixture(t *testing.T) string {
	t.Helper()
	src, err := os.ReadFile(fixture)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "My.voc")
	require.NoError(t, os.WriteFile(path, src, 0o644))
	return path
}

func appendTo(t *testing.T, path, text string, mod time.Time) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(text)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestCacheReusesUntilFileChanges(t *testing.T) {
	path := copyFixture(t)
	cache := NewCache(DefaultOptions())

	first, err := cache.Get(path)
	require.NoError(t, err)
	second, err := cache.Get(path)
	require.NoError(t, err)
	assert.Same(t, first, second)

	appendTo(t, path, extraChord, time.Now().Add(time.Minute))
	third, err := cache.Get(path)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Contains(t, third.ChordNames(), "Cm")
}

func TestCacheInvalidateAndClear(t *testing.T) {
	path := copyFixture(t)
	cache := NewCache(DefaultOptions())

	first, err := cache.Get(path)
	require.NoError(t, err)
	cached, ok := cache.Cached(path)
	assert.True(t, ok)
	assert.Same(t, first, cached)

	cache.Invalidate(path)
	_, ok = cache.Cached(path)
	assert.False(t, ok)

	second, err := cache.Get(path)
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	cache.Clear()
	_, ok = cache.Cached(path)
	assert.False(t, ok)
}

func TestCacheKeepsEntryWhenRebuildFails(t *testing.T) {
	path := copyFixture(t)
	cache := NewCache(DefaultOptions())

	first, err := cache.Get(path)
	require.NoError(t, err)

	appendTo(t, path, "(chord (name broken) (same nowhere))", time.Now().Add(time.Minute))
	_, err = cache.Get(path)
	assert.Error(t, err)

	cached, ok := cache.Cached(path)
	assert.True(t, ok)
	assert.Same(t, first, cached)
}

func TestWatcherReloadsAndSurvivesBadEdits(t *testing.T) {
	path := copyFixture(t)
	cache := NewCache(DefaultOptions())
	initial, err := cache.Get(path)
	require.NoError(t, err)
	store := NewStore(initial)

	var failures, reloads atomic.Int32
	w := &Watcher{
		Path:     path,
		Interval: 10 * time.Millisecond,
		Debounce: 20 * time.Millisecond,
		Cache:    cache,
		Store:    store,
		OnError:  func(error) { failures.Add(1) },
		OnReload: func(*Catalog) { reloads.Add(1) },
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	appendTo(t, path, extraChord, time.Now().Add(time.Minute))
	assert.Eventually(t, func() bool {
		return len(store.Get().ChordNames()) == 4
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), reloads.Load())

	good := store.Get()
	appendTo(t, path, "(chord (name broken) (same nowhere))", time.Now().Add(2*time.Minute))
	assert.Eventually(t, func() bool {
		return failures.Load() > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Same(t, good, store.Get())
}

func TestWatcherWithoutIntervalFallsBack(t *testing.T) {
	path := copyFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &Watcher{Path: path, Cache: NewCache(DefaultOptions()), Store: NewStore(nil), Debounce: -time.Second}
	assert.NotPanics(t, func() { w.Run(ctx) })
}

func TestStoreStartsEmpty(t *testing.T) {
	s := NewStore(nil)
	assert.Nil(t, s.Get())
	c := load(t)
	s.Set(c)
	assert.Same(t, c, s.Get())
}
