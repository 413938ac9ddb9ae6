package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DefaultAutoSaveDelay is the quiet period before a scheduled save runs.
const DefaultAutoSaveDelay = 300 * time.Millisecond

// ErrAutoSaverClosed is returned by Schedule after Close.
var ErrAutoSaverClosed = errors.New("autosave: closed")

// SaveFunc performs one deferred save.
type SaveFunc func(ctx context.Context) error

// AutoSaver debounces saves per key (usually an entry id). Scheduling a
// key again before its delay elapses replaces the pending save and restarts
// the timer, so a burst of edits produces one write with the last content.
type AutoSaver struct {
	delay  time.Duration
	logger *slog.Logger

	mu       sync.Mutex
	pending  map[string]*pendingSave
	inflight map[string]chan struct{} // closed when the running save for a key returns
	closed   bool
	running  sync.WaitGroup
}

type pendingSave struct {
	timer *time.Timer
	fn    SaveFunc
}

func NewAutoSaver(delay time.Duration, logger *slog.Logger) *AutoSaver {
	if delay <= 0 {
		delay = DefaultAutoSaveDelay
	}
	return &AutoSaver{
		delay:    delay,
		logger:   logger,
		pending:  map[string]*pendingSave{},
		inflight: map[string]chan struct{}{},
	}
}

// Schedule queues fn to run once key has been quiet for the delay.
func (a *AutoSaver) Schedule(key string, fn SaveFunc) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrAutoSaverClosed
	}
	if prev, ok := a.pending[key]; ok {
		prev.timer.Stop()
	}
	p := &pendingSave{fn: fn}
	p.timer = time.AfterFunc(a.delay, func() { a.fire(key, p) })
	a.pending[key] = p
	return nil
}

// fire runs p unless it was replaced, cancelled or flushed in the meantime.
func (a *AutoSaver) fire(key string, p *pendingSave) {
	a.mu.Lock()
	if a.closed || a.pending[key] != p {
		a.mu.Unlock()
		return
	}
	delete(a.pending, key)
	done := a.startLocked(key)
	a.running.Add(1)
	a.mu.Unlock()

	defer a.running.Done()
	defer a.finish(key, done)
	a.run(key, p.fn)
}

// startLocked marks key as running and returns the channel finish closes.
func (a *AutoSaver) startLocked(key string) chan struct{} {
	done := make(chan struct{})
	a.inflight[key] = done
	return done
}

func (a *AutoSaver) finish(key string, done chan struct{}) {
	a.mu.Lock()
	if a.inflight[key] == done {
		delete(a.inflight, key)
	}
	a.mu.Unlock()
	close(done)
}

func (a *AutoSaver) run(key string, fn SaveFunc) error {
	err := fn(context.Background())
	if err != nil {
		a.logger.Error("autosave failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return err
}

// Cancel drops the pending save for key, if any, and waits for a save of
// key that has already started. A write made after Cancel returns is not
// overtaken by an older autosave.
func (a *AutoSaver) Cancel(key string) {
	a.mu.Lock()
	if p, ok := a.pending[key]; ok {
		p.timer.Stop()
		delete(a.pending, key)
	}
	done := a.inflight[key]
	a.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Pending reports whether a save for key is waiting to run.
func (a *AutoSaver) Pending(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.pending[key]
	return ok
}

// Flush runs every pending save now, on the calling goroutine, and returns
// their joined errors.
func (a *AutoSaver) Flush() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	due := a.pending
	a.pending = map[string]*pendingSave{}
	for _, p := range due {
		p.timer.Stop()
	}
	a.running.Add(1)
	a.mu.Unlock()
	defer a.running.Done()

	var errs []error
	for key, p := range due {
		if err := a.flushOne(key, p.fn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *AutoSaver) flushOne(key string, fn SaveFunc) error {
	a.mu.Lock()
	done := a.startLocked(key)
	a.mu.Unlock()
	defer a.finish(key, done)
	return a.run(key, fn)
}

// Close discards pending saves, waits for saves already running, and
// rejects further scheduling. Call Flush first to keep pending work.
func (a *AutoSaver) Close() {
	a.mu.Lock()
	a.closed = true
	for key, p := range a.pending {
		p.timer.Stop()
		delete(a.pending, key)
	}
	a.mu.Unlock()

	a.running.Wait()
}
