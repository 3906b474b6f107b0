package services

import "sync"

// accountLocker hands out one mutex per account number and forgets it once
// nobody holds or waits on it.
type accountLocker struct {
	mu    sync.Mutex
	locks map[string]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocker() *accountLocker {
	return &accountLocker{locks: make(map[string]*accountLock)}
}

func (l *accountLocker) Lock(accountNumber string) (unlock func()) {
	l.mu.Lock()
	lock, ok := l.locks[accountNumber]
	if !ok {
		lock = &accountLock{}
		l.locks[accountNumber] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, accountNumber)
		}
		l.mu.Unlock()
	}
}

func (l *accountLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
