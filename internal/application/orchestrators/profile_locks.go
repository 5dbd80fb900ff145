package orchestrators

import "sync"

// ProfileLocks serializes read-modify-write cycles per profile ID.
// The zero value is ready to use.
type ProfileLocks struct {
	mu    sync.Mutex
	locks map[string]*profileLock
}

type profileLock struct {
	mu   sync.Mutex
	refs int
}

// Lock blocks until the key is free and returns its release function.
// INVARIANT: entries are dropped once no goroutine holds or waits on them
func (l *ProfileLocks) Lock(key string) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*profileLock)
	}
	pl, ok := l.locks[key]
	if !ok {
		pl = &profileLock{}
		l.locks[key] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.mu.Lock()
	return func() {
		pl.mu.Unlock()
		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// Len reports how many keys are currently held or awaited.
func (l *ProfileLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// lockProfile locks key when locks is non-nil; a nil set means no serialization.
func lockProfile(locks *ProfileLocks, key string) func() {
	if locks == nil {
		return func() {}
	}
	return locks.Lock(key)
}
