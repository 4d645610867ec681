package cache

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/pkg/errors"
)

// Locker serializes computations of the same key across processes.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type RedsyncLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

func NewRedsyncLocker(rs *redsync.Redsync, expiry time.Duration) *RedsyncLocker {
	return &RedsyncLocker{rs: rs, expiry: expiry}
}

func (l *RedsyncLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.rs.NewMutex("mutex:"+key,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(int(l.expiry/(time.Millisecond*500))+1),
		redsync.WithRetryDelay(time.Millisecond*500),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to acquire lock")
	}
	return func() {
		// the lock may have expired already; nothing else to do about it
		_, _ = mutex.Unlock()
	}, nil
}
