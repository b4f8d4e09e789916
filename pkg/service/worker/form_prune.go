package worker

import (
	"context"
	"time"

	"github.com/secmon-lab/regform/pkg/utils/async"
	"github.com/secmon-lab/regform/pkg/utils/logging"
)

// FormPruner removes form state untouched for longer than age
type FormPruner interface {
	PruneForms(ctx context.Context, age time.Duration, withErrorsOnly bool) (int, error)
}

// FormPruneWorker periodically removes abandoned form state.
//
// Assumes a single server instance; concurrent workers only race on deletes
// of the same stale documents, which is harmless.
type FormPruneWorker struct {
	pruner   FormPruner
	interval time.Duration
	ttl      time.Duration
	cancel   context.CancelFunc
	doneCh   chan struct{}
}

// NewFormPruneWorker creates a worker pruning forms older than ttl every interval
func NewFormPruneWorker(pruner FormPruner, interval, ttl time.Duration) *FormPruneWorker {
	return &FormPruneWorker{
		pruner:   pruner,
		interval: interval,
		ttl:      ttl,
		doneCh:   make(chan struct{}),
	}
}

// Start runs an initial prune and the periodic loop in the background
func (w *FormPruneWorker) Start(ctx context.Context) {
	logging.From(ctx).Info("Form prune worker starting",
		"interval", w.interval.String(),
		"ttl", w.ttl.String())

	ctx, w.cancel = context.WithCancel(ctx)
	go w.run(ctx)
}

// Stop signals the worker to stop and waits for completion
func (w *FormPruneWorker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.doneCh
	logging.Default().Info("Form prune worker stopped")
}

func (w *FormPruneWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.prune(ctx); err != nil {
		logging.From(ctx).Error("Initial form prune failed (will retry next interval)",
			"error", err.Error())
	}

	async.Repeat(ctx, w.interval, w.prune)
}

func (w *FormPruneWorker) prune(ctx context.Context) error {
	_, err := w.pruner.PruneForms(ctx, w.ttl, false)
	return err
}
