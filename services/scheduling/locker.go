package scheduling

import (
	"context"
	"sync"
)

// AdmissionLocker serializes admission decisions per owner. Between the
// guard's conflict read and the commit of the accepted interval, no other
// admission for the same lock key may proceed; pure optimistic
// re-validation is not enough to close the check-then-act window.
type AdmissionLocker interface {
	// Acquire blocks until the key's lock is held or ctx is done. The
	// returned release function must be called exactly once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// memoryLocker is the single-node locker: one mutex per key. It also backs
// the concurrency tests.
type memoryLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewMemoryLocker returns an in-process AdmissionLocker.
func NewMemoryLocker() AdmissionLocker {
	return &memoryLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *memoryLocker) Acquire(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
