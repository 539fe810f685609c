package calendarfile

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingReloader struct {
	calls atomic.Int32
	err   error
}

func (r *countingReloader) Reload(context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "calendar.json")
	writeFile(t, path, "{}")

	reloader := &countingReloader{}
	w, err := NewWatcher(path, 100*time.Millisecond, reloader, nopLogger{})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	// Серия быстрых записей дает одну перезагрузку
	for i := 0; i < 5; i++ {
		writeFile(t, path, `{"n": 1}`)
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return reloader.calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, int32(1), reloader.calls.Load())

	w.Stop()
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "calendar.json")
	writeFile(t, path, "{}")

	reloader := &countingReloader{}
	w, err := NewWatcher(path, 20*time.Millisecond, reloader, nopLogger{})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	writeFile(t, filepath.Join(dir, "other.json"), "{}")
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), reloader.calls.Load())

	w.Stop()
}

func TestWatcher_FailedReloadKeepsWatching(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "calendar.json")
	writeFile(t, path, "{}")

	reloader := &countingReloader{err: errors.New("broken calendar")}
	w, err := NewWatcher(path, 20*time.Millisecond, reloader, nopLogger{})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	writeFile(t, path, "{")
	require.Eventually(t, func() bool { return reloader.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	writeFile(t, path, "{}")
	require.Eventually(t, func() bool { return reloader.calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	w.Stop()
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "calendar.json")

	ctx, cancel := context.WithCancel(context.Background())
	w, err := NewWatcher(path, 0, &countingReloader{}, nopLogger{})
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))

	cancel()
	w.Stop()
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(filepath.Join(t.TempDir(), "calendar.json"), 0, &countingReloader{}, nopLogger{})
	require.NoError(t, err)
	w.Stop()
}

func TestHolder(t *testing.T) {
	h := NewHolder()

	_, ok := h.Get()
	assert.False(t, ok)
	assert.Nil(t, h.Report())

	cal := &domain.Calendar{}
	report := &domain.CalendarReport{}
	at := time.Date(2024, time.September, 1, 10, 0, 0, 0, time.UTC)
	h.Set(cal, report, at)

	got, ok := h.Get()
	require.True(t, ok)
	assert.Same(t, cal, got)
	assert.Same(t, report, h.Report())
	assert.Equal(t, at, h.LoadedAt())
}
