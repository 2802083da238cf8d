package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	lockKeyPrefix    = "admission:"
	defaultLockTTL   = 5 * time.Second
	defaultLockRetry = 25 * time.Millisecond
)

// releaseScript deletes the lock only if this locker still owns it, so an
// expired-and-reacquired lock is never released by the old holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker implements AdmissionLocker with SET NX PX, for deployments
// where admission checks run on more than one node. The TTL bounds how
// long a crashed holder can block an owner.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

// NewRedisLocker returns an AdmissionLocker backed by the given client.
func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    defaultLockTTL,
		retry:  defaultLockRetry,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := lockKeyPrefix + key
	token := uuid.New().String()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire admission lock %q: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err()
	}
	return release, nil
}
