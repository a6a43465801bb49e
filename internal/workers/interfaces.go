// Package workers provides the application's background jobs: the periodic
// sync pass, the mutation-triggered sync, and the tombstone purge sweeps.
// It defines the Worker interface and a Workers aggregate that runs
// multiple workers in a unified way.
package workers

import "context"

// Worker is the interface implemented by every background job. Run blocks
// until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
