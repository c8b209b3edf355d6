package market

import (
	"context"
	"sync"

	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
)

// DefaultQueueSize is the number of pending mutations the writer buffers
const DefaultQueueSize = 100

// CommandFunc is one load → validate → mutate → save cycle
type CommandFunc func(ctx context.Context) error

// writeRequest represents a queued mutation
type writeRequest struct {
	ctx        context.Context
	name       string
	fn         CommandFunc
	resultChan chan error
}

// LedgerWriter serializes every mutation of the ledger through one goroutine,
// so two purchases can never read the same snapshot and overwrite each other.
type LedgerWriter struct {
	logger coreport.Logger

	queue chan *writeRequest
	mu    sync.RWMutex
	done  bool
	wg    sync.WaitGroup
}

// NewLedgerWriter creates a writer and starts its worker goroutine
func NewLedgerWriter(logger coreport.Logger, queueSize int) *LedgerWriter {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	w := &LedgerWriter{
		logger: logger,
		queue:  make(chan *writeRequest, queueSize),
	}

	w.wg.Add(1)
	go w.run()

	return w
}

// Submit enqueues fn and blocks until it has run or ctx is done.
// A command that has already started always runs to completion.
func (w *LedgerWriter) Submit(ctx context.Context, name string, fn CommandFunc) error {
	req := &writeRequest{
		ctx:        ctx,
		name:       name,
		fn:         fn,
		resultChan: make(chan error, 1),
	}

	w.mu.RLock()
	if w.done {
		w.mu.RUnlock()
		return errs.ErrWriterClosed
	}

	select {
	case w.queue <- req:
		w.mu.RUnlock()
		w.logger.Debug("Ledger command enqueued", map[string]any{
			"command": name,
		})
	case <-ctx.Done():
		w.mu.RUnlock()
		w.logger.Warn("Context canceled while enqueueing ledger command", map[string]any{
			"command": name,
			"error":   ctx.Err().Error(),
		})
		return ctx.Err()
	}

	select {
	case err := <-req.resultChan:
		return err
	case <-ctx.Done():
		// A command that finished as ctx expired still reports its own result.
		select {
		case err := <-req.resultChan:
			return err
		default:
		}
		w.logger.Warn("Context canceled while waiting for ledger command", map[string]any{
			"command": name,
			"error":   ctx.Err().Error(),
		})
		return ctx.Err()
	}
}

// run executes queued commands one at a time
func (w *LedgerWriter) run() {
	defer w.wg.Done()

	w.logger.Info("Ledger writer started", nil)

	for req := range w.queue {
		if err := req.ctx.Err(); err != nil {
			req.resultChan <- err
			continue
		}

		req.resultChan <- req.fn(req.ctx)
	}

	w.logger.Info("Ledger writer stopped", nil)
}

// Shutdown stops accepting commands, drains the queue and waits for the worker
func (w *LedgerWriter) Shutdown() {
	w.mu.Lock()
	if w.done {
		w.mu.Unlock()
		return
	}
	w.done = true
	close(w.queue)
	w.mu.Unlock()

	w.wg.Wait()
}
