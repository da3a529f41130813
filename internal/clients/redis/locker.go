package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

// ErrLockTimeout is returned when the key stayed held for the whole wait budget.
var ErrLockTimeout = errors.New("redis lock: timed out waiting for key")

// releaseScript deletes the key only if it still carries our token, so a
// holder whose TTL expired cannot release someone else's lock.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type LockerConfig struct {
	Prefix string
	// TTL bounds how long a crashed holder can block the key.
	TTL time.Duration
	// Wait is the longest Acquire polls before giving up.
	Wait time.Duration
	// Poll is the delay between SET NX attempts.
	Poll time.Duration
}

// Locker is a distributed per-key lock built on SET NX PX.
type Locker struct {
	rdb goredis.UniversalClient
	log *logger.Logger
	cfg LockerConfig
}

func NewLocker(rdb goredis.UniversalClient, cfg LockerConfig, log *logger.Logger) *Locker {
	if cfg.Prefix == "" {
		cfg.Prefix = "lock:"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Second
	}
	if cfg.Wait <= 0 {
		cfg.Wait = 5 * time.Second
	}
	if cfg.Poll <= 0 {
		cfg.Poll = 25 * time.Millisecond
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Locker{rdb: rdb, log: log.With("service", "RedisLocker"), cfg: cfg}
}

func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	if l == nil || l.rdb == nil {
		return nil, fmt.Errorf("redis locker not initialized")
	}
	fullKey := l.cfg.Prefix + key
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.cfg.Wait)
	defer cancel()

	ticker := time.NewTicker(l.cfg.Poll)
	defer ticker.Stop()
	for {
		ok, err := l.rdb.SetNX(waitCtx, fullKey, token, l.cfg.TTL).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			return l.releaser(fullKey, token), nil
		}
		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, ErrLockTimeout
		case <-ticker.C:
		}
	}
}

func (l *Locker) releaser(fullKey, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() { l.release(fullKey, token) })
	}
}

func (l *Locker) release(fullKey, token string) {
	// The request context may already be cancelled; release on our own clock.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.rdb, []string{fullKey}, token).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		l.log.Warn("Redis lock release failed", "key", fullKey, "error", err)
	}
}
