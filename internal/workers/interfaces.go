// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// starting and stopping multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker's goroutines and returns without blocking. The
// worker runs until ctx is cancelled or Stop is called. Stop blocks until the
// worker has fully exited and is safe to call on a worker that never started.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc }
//
//	func (w *MyWorker) Start(ctx context.Context) error {
//	    ctx, w.cancel = context.WithCancel(ctx)
//	    go process(ctx)
//	    return nil
//	}
type Worker interface {
	Start(ctx context.Context) error
	Stop()
}
