// Package progress defines the progress updates emitted while a sweep runs.
package progress

import "context"

// Update reports that a worker finished a batch of combinations.
type Update struct {
	// Worker is the index of the worker that sent the update.
	Worker int
	// Completed is the number of combinations finished since the worker's
	// previous update.
	Completed int
}

// Send delivers u on ch, giving up when ctx is done. Reporters drain their
// channel until it is closed, so a send only waits while the buffer is full.
func Send(ctx context.Context, ch chan<- Update, u Update) bool {
	if ch == nil {
		return false
	}
	select {
	case ch <- u:
		return true
	case <-ctx.Done():
		return false
	}
}
