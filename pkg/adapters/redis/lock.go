package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/blockscript/pkg/ports"
)

var (
	// ErrLockAcquire is returned when the lock cannot be acquired.
	ErrLockAcquire = errors.New("failed to acquire distributed lock")
	// ErrLockLost is returned by unlock when the lock expired and another
	// holder took it in the meantime. The other holder's lock is kept.
	ErrLockLost = errors.New("lock was no longer held")
)

// DefaultRetryInterval is how often a contended Lock polls Redis.
const DefaultRetryInterval = 100 * time.Millisecond

// Locker implements ports.DistributedLocker with SET NX PX. Each
// acquisition stores a random owner token under <prefix>lock:<key>.
type Locker struct {
	client *backend.Client
	prefix string
	retry  time.Duration
}

// LockerOption configures a Locker.
type LockerOption func(*Locker)

// WithRetryInterval changes the polling interval under contention.
func WithRetryInterval(d time.Duration) LockerOption {
	return func(l *Locker) {
		if d > 0 {
			l.retry = d
		}
	}
}

// NewLocker creates a Locker sharing client with a Store using the same prefix.
func NewLocker(client *backend.Client, prefix string, opts ...LockerOption) *Locker {
	l := &Locker{client: client, prefix: prefix, retry: DefaultRetryInterval}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := uuid.NewString()

	var wait *time.Timer
	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %w", ErrLockAcquire, ctx.Err())
			}
			return nil, fmt.Errorf("acquire %s: %w", lockKey, err)
		}
		if ok {
			return l.release(lockKey, token), nil
		}

		if wait == nil {
			wait = time.NewTimer(l.retry)
			defer wait.Stop()
		} else {
			wait.Reset(l.retry)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrLockAcquire, ctx.Err())
		case <-wait.C:
		}
	}
}

// compareAndDelete removes KEYS[1] only while it still holds ARGV[1].
var compareAndDelete = backend.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (l *Locker) release(lockKey, token string) ports.UnlockFunc {
	return func(ctx context.Context) error {
		n, err := compareAndDelete.Run(ctx, l.client, []string{lockKey}, token).Int()
		if err != nil {
			return fmt.Errorf("release %s: %w", lockKey, err)
		}
		if n == 0 {
			return ErrLockLost
		}
		return nil
	}
}
