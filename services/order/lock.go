package order

import (
	"context"
	"sync"
)

// executorLocks is an in-process mutex per executor. It keeps concurrent
// confirmations for one executor from each holding a store connection while
// they queue on the shared lock.
type executorLocks struct {
	mu    sync.Mutex
	locks map[int64]*executorLock
}

type executorLock struct {
	held chan struct{}
	refs int
}

func (l *executorLocks) acquire(ctx context.Context, executorID int64) (func(), error) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[int64]*executorLock)
	}
	lock, ok := l.locks[executorID]
	if !ok {
		lock = &executorLock{held: make(chan struct{}, 1)}
		l.locks[executorID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	select {
	case lock.held <- struct{}{}:
		return func() {
			<-lock.held
			l.drop(executorID, lock)
		}, nil
	case <-ctx.Done():
		l.drop(executorID, lock)
		return nil, ctx.Err()
	}
}

func (l *executorLocks) drop(executorID int64, lock *executorLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, executorID)
	}
}

// withExecutorLock runs fn under the in-process lock and, when configured,
// the store-level lock shared with other instances.
func (s *DefaultOrderService) withExecutorLock(ctx context.Context, executorID int64, fn func(ctx context.Context) error) error {
	release, err := s.locks.acquire(ctx, executorID)
	if err != nil {
		return err
	}
	defer release()

	if s.Locker == nil {
		return fn(ctx)
	}
	return s.Locker.WithScheduleLock(ctx, executorID, fn)
}
