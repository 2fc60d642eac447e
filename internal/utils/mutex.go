package utils

import "sync"

var mu sync.Mutex

// ExecuteWithMutex serializes bookkeeping done from worker goroutines.
func ExecuteWithMutex(fn func()) {
	mu.Lock()
	defer mu.Unlock()
	fn()
}
