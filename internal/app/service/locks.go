package service

import "sync"

// taskLocks serializes mutations per task id so a completion check and the
// status write it guards run as one unit. Lock entries are refcounted and
// dropped once the last holder releases them.
type taskLocks struct {
	mu    sync.Mutex
	locks map[uint64]*taskLock
}

type taskLock struct {
	mu   sync.Mutex
	refs int
}

func newTaskLocks() *taskLocks {
	return &taskLocks{locks: make(map[uint64]*taskLock)}
}

func (l *taskLocks) lock(id uint64) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &taskLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *taskLocks) unlock(id uint64) {
	l.mu.Lock()
	entry := l.locks[id]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, id)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
