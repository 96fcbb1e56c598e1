package concurrency

import (
	"context"
	"sync"
)

// LockManager handles named locks that can be waited on with a context
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

func (lm *LockManager) slot(key string) chan struct{} {
	ch, _ := lm.locks.LoadOrStore(key, make(chan struct{}, 1))
	return ch.(chan struct{})
}

// Lock blocks until the named lock is held or ctx is done. The returned
// release func is safe to call more than once.
func (lm *LockManager) Lock(ctx context.Context, key string) (func(), error) {
	ch := lm.slot(key)
	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryLock acquires the named lock without waiting.
func (lm *LockManager) TryLock(key string) (func(), bool) {
	ch := lm.slot(key)
	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, true
	default:
		return nil, false
	}
}
