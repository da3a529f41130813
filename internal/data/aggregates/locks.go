package aggregates

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// KeyLocker serializes writers that share a key. Acquire blocks until the key
// is free or ctx is done; the returned release is safe to call more than once.
type KeyLocker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// ProgressLockKey names the lock guarding one (user, course) progress record.
func ProgressLockKey(userID, courseID uuid.UUID) string {
	return "progress:" + userID.String() + ":" + courseID.String()
}

type memoryLockEntry struct {
	slot chan struct{}
	refs int
}

// MemoryLocker is an in-process KeyLocker. Entries are dropped once no
// goroutine holds or waits on them.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*memoryLockEntry
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: map[string]*memoryLockEntry{}}
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e := l.locks[key]
	if e == nil {
		e = &memoryLockEntry{slot: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.slot <- struct{}{}:
	case <-ctx.Done():
		l.drop(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.slot
			l.drop(key, e)
		})
	}, nil
}

func (l *MemoryLocker) drop(key string, e *memoryLockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs <= 0 && l.locks[key] == e {
		delete(l.locks, key)
	}
}

func (l *MemoryLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
