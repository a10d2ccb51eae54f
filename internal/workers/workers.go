package workers

import (
	"context"
	"fmt"
)

// Workers starts and stops a fixed set of workers together.
type Workers struct {
	workers []Worker
}

// NewWorkers groups workers. Nil entries are skipped.
func NewWorkers(workers ...Worker) *Workers {
	w := &Workers{}
	for _, worker := range workers {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Start starts every worker in order. If one fails, the workers already
// started are stopped and the error is returned.
func (w *Workers) Start(ctx context.Context) error {
	for i, worker := range w.workers {
		if err := worker.Start(ctx); err != nil {
			stopAll(w.workers[:i])
			return fmt.Errorf("start worker %d: %w", i, err)
		}
	}
	return nil
}

// Stop stops every worker in reverse start order.
func (w *Workers) Stop() {
	stopAll(w.workers)
}

func stopAll(workers []Worker) {
	for i := len(workers) - 1; i >= 0; i-- {
		workers[i].Stop()
	}
}
