package countdown

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Store persists the single timer record. Save overwrites; Load reports
// false when nothing has been stored.
type Store interface {
	Save(Record) error
	Load() (Record, bool, error)
}

// LoadRecord reads the stored record once, falling back to fallback when the
// store is empty or unreadable. Records violating the status invariants are
// kept; NewMachine repairs them when expanding the state.
func LoadRecord(store Store, fallback Record, logger *slog.Logger) Record {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if store == nil {
		return fallback
	}
	rec, ok, err := store.Load()
	if err != nil {
		logger.Error("timer record load failed, using defaults", "error", err)
		return fallback
	}
	if !ok {
		logger.Info("no stored timer record, using defaults")
		return fallback
	}
	if !rec.Valid() {
		logger.Warn("stored timer record is inconsistent", "status", rec.Status.String())
	}
	if rec.ConfiguredDuration < 0 {
		rec.ConfiguredDuration = fallback.ConfiguredDuration
	}
	return rec
}

// Persister saves records on a background goroutine. It is meant to be
// registered as a Machine listener: OnChange never blocks, skips records
// identical to the last one queued, and collapses bursts so only the latest
// pending record is written.
type Persister struct {
	store  Store
	logger *slog.Logger

	mu      sync.Mutex
	last    Record
	pending *Record
	closed  bool

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

// NewPersister starts the save worker. initial is the record already in the
// store, so an unchanged first snapshot does not trigger a write.
func NewPersister(store Store, initial Record, logger *slog.Logger) *Persister {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &Persister{
		store:  store,
		logger: logger,
		last:   initial,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	p.wg.Add(1)
	go p.loop()
	return p
}

// OnChange queues next for saving when it differs from the last queued record.
func (p *Persister) OnChange(_, next Snapshot) {
	rec := next.Record()
	p.mu.Lock()
	if p.closed || rec.Equal(p.last) {
		p.mu.Unlock()
		return
	}
	p.last = rec
	p.pending = &rec
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Close writes any pending record and stops the worker.
func (p *Persister) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()
	close(p.done)
	p.wg.Wait()
}

func (p *Persister) loop() {
	defer p.wg.Done()
	for {
		select {
		case <-p.wake:
			p.flush()
		case <-p.done:
			p.flush()
			return
		}
	}
}

func (p *Persister) flush() {
	p.mu.Lock()
	rec := p.pending
	p.pending = nil
	p.mu.Unlock()
	if rec == nil || p.store == nil {
		return
	}
	if err := p.save(*rec); err != nil {
		p.logger.Error("timer record save failed", "error", err, "status", rec.Status.String())
		return
	}
	p.logger.Debug("timer record saved", "status", rec.Status.String())
}

// save calls the store, turning a panic into an error so one bad write does
// not stop the worker.
func (p *Persister) save(rec Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("timer record save panicked", "error", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("store panic: %v", r)
		}
	}()
	return p.store.Save(rec)
}
