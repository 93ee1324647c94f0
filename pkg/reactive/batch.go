package reactive

import "sync"

var (
	batchMu      sync.Mutex
	batchDepth   int
	pendingQueue []Listener
)

// Batch groups signal updates so subscribers are notified once, after the
// outermost batch returns. Batches nest.
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()

	fn()
}

// processPendingUpdates deduplicates and notifies all pending listeners.
func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	for _, listener := range updates {
		id := listener.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		listener.MarkDirty()
	}
}

func incrementBatchDepth() {
	batchMu.Lock()
	batchDepth++
	batchMu.Unlock()
}

// decrementBatchDepth reports whether the outermost batch just ended.
func decrementBatchDepth() bool {
	batchMu.Lock()
	defer batchMu.Unlock()
	batchDepth--
	return batchDepth == 0
}

func getBatchDepth() int {
	batchMu.Lock()
	defer batchMu.Unlock()
	return batchDepth
}

func queuePendingUpdate(l Listener) {
	batchMu.Lock()
	pendingQueue = append(pendingQueue, l)
	batchMu.Unlock()
}

func drainPendingUpdates() []Listener {
	batchMu.Lock()
	defer batchMu.Unlock()
	out := pendingQueue
	pendingQueue = nil
	return out
}
