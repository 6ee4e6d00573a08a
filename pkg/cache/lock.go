package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned when another holder owns the lock
var ErrLocked = errors.New("lock already held")

// Locker hands out short-lived exclusive locks keyed by name
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), err error)
}

// releaseScript deletes the key only if it still carries our token
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

type redisLocker struct {
	client   redis.Cmdable
	prefix   string
	newToken func() string
}

// NewRedisLocker stores locks as SET NX keys under prefix
func NewRedisLocker(client redis.Cmdable, prefix string) Locker {
	return &redisLocker{client: client, prefix: prefix, newToken: uuid.NewString}
}

func (l *redisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), error) {
	key := l.prefix + name
	token := l.newToken()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		l.client.Eval(releaseCtx, releaseScript, []string{key}, token)
	}, nil
}

type noopLocker struct{}

// NoopLocker always grants the lock. Used when Redis is disabled.
func NoopLocker() Locker {
	return noopLocker{}
}

func (noopLocker) Acquire(context.Context, string, time.Duration) (func(), error) {
	return func() {}, nil
}
