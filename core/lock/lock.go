package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned by TryLock when another holder owns the key.
var ErrNotAcquired = errors.New("lock already held")

// Lease is a held lock.
type Lease interface {
	// Release gives the lock back. Releasing an expired or stolen lease is a no-op.
	Release(ctx context.Context) error
}

// Locker hands out exclusive leases by key.
type Locker interface {
	TryLock(ctx context.Context, key string) (Lease, error)
}

// releaseScript deletes the key only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// refreshScript extends the key's expiry only when it still holds our token.
var refreshScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX. Held leases are refreshed
// every third of the TTL until released, so a run may outlive the TTL while
// a crashed holder still frees the key after at most one TTL.
type RedisLocker struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

// NewClient creates a redis client from the configuration.
func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisLocker creates a locker over an existing redis client.
func NewRedisLocker(client redis.Cmdable, cfg Config) *RedisLocker {
	ttl := cfg.LeaseTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisLocker{client: client, ttl: ttl, prefix: cfg.KeyPrefix}
}

// TryLock acquires key without waiting.
func (l *RedisLocker) TryLock(ctx context.Context, key string) (Lease, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	fullKey := l.prefix + key
	ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", fullKey, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	lease := &redisLease{
		client: l.client,
		key:    fullKey,
		token:  token,
		ttl:    l.ttl,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go lease.keepAlive()
	return lease, nil
}

type redisLease struct {
	client redis.Cmdable
	key    string
	token  string
	ttl    time.Duration

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// keepAlive extends the lease until Release is called or the key is lost.
func (r *redisLease) keepAlive() {
	defer close(r.done)

	ticker := time.NewTicker(r.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.ttl/3)
			n, err := refreshScript.Run(ctx, r.client, []string{r.key}, r.token, r.ttl.Milliseconds()).Int()
			cancel()
			// Lost to expiry or another holder; retrying cannot win it back
			if err == nil && n == 0 {
				return
			}
		}
	}
}

func (r *redisLease) Release(ctx context.Context) error {
	r.once.Do(func() { close(r.stop) })
	<-r.done

	if err := releaseScript.Run(ctx, r.client, []string{r.key}, r.token).Err(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", r.key, err)
	}
	return nil
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate lock token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NopLocker always grants the lock. Used when no redis is configured.
type NopLocker struct{}

// TryLock returns a lease whose Release does nothing.
func (NopLocker) TryLock(context.Context, string) (Lease, error) {
	return nopLease{}, nil
}

type nopLease struct{}

func (nopLease) Release(context.Context) error { return nil }
