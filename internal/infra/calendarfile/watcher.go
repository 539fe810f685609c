package calendarfile

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce интервал, в течение которого серия событий файловой системы схлопывается в одну перезагрузку
const DefaultDebounce = 500 * time.Millisecond

// Reloader перечитывает календарь
// Если новый файл некорректен, реализация должна оставить предыдущий календарь
type Reloader interface {
	Reload(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Watcher следит за файлом календаря и перезагружает его при изменениях
// Наблюдение ведется за каталогом: редакторы часто сохраняют файл через rename
type Watcher struct {
	dir      string
	base     string
	debounce time.Duration
	reloader Reloader
	logger   Logger

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher создает watcher для файла path
func NewWatcher(path string, debounce time.Duration, reloader Reloader, logger Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: create: %v", ErrWatcher, err)
	}

	return &Watcher{
		dir:      filepath.Dir(path),
		base:     filepath.Base(path),
		debounce: debounce,
		reloader: reloader,
		logger:   logger,
		watcher:  fw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start начинает наблюдение, не блокирует
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("%w: watch %s: %v", ErrWatcher, w.dir, err)
	}

	w.running = true
	go w.run(ctx)

	w.logger.Info("CalendarWatcher: watching %s", filepath.Join(w.dir, w.base))
	return nil
}

// Stop останавливает наблюдение и дожидается завершения горутины
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("CalendarWatcher: failed to close watcher: %v", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}

			// Откладываем перезагрузку до затишья
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("CalendarWatcher: %v", err)

		case <-timerCh:
			timerCh = nil
			if err := w.reloader.Reload(ctx); err != nil {
				w.logger.Warn("CalendarWatcher: reload failed, keeping previous calendar: %v", err)
				continue
			}
			w.logger.Info("CalendarWatcher: calendar reloaded")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != w.base {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
