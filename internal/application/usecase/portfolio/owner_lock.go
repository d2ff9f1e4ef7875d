package portfolio

import "sync"

// ownerLocks serializes the merge-sync-broadcast region per owner identity,
// so back-to-back updates to the same owner resolve last-writer-wins instead
// of interleaving between the mirror write and the customer projection.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the owner and returns its unlock func. Lock
// entries are never removed; the owner-identity space is small and stable.
func (l *ownerLocks) Lock(ownerID string) func() {
	l.mu.Lock()
	m, ok := l.locks[ownerID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[ownerID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
