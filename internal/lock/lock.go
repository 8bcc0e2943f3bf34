package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrNotObtained is returned when another holder owns the key.
var ErrNotObtained = errors.New("lock not obtained")

const defaultTTL = 30 * time.Second

// Locker serialises work on a key across service instances.
type Locker interface {
	// Acquire returns a release func. The release func is never nil on success.
	Acquire(ctx context.Context, key string) (func(), error)
}

type redisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewRedisLocker wraps a go-redis client with bsm/redislock.
func NewRedisLocker(rdb *redis.Client, logger *logrus.Logger) Locker {
	return &redisLocker{client: redislock.New(rdb), ttl: defaultTTL, logger: logger}
}

func (l *redisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	lk, err := l.client.Obtain(ctx, "lock:"+key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotObtained)
	}
	if err != nil {
		// redis trouble degrades to unlocked operation
		l.logger.WithFields(logrus.Fields{"key": key}).Warn("error obtaining redis lock; proceeding without lock: " + err.Error())
		return func() {}, nil
	}
	return func() {
		// release with a fresh context, the request one may already be cancelled
		if releaseErr := lk.Release(context.Background()); releaseErr != nil && !errors.Is(releaseErr, redislock.ErrLockNotHeld) {
			l.logger.WithFields(logrus.Fields{"key": key}).Warn("failed to release redis lock: " + releaseErr.Error())
		}
	}, nil
}

type noopLocker struct{}

// NewNoopLocker is used when no Redis address is configured.
func NewNoopLocker() Locker { return noopLocker{} }

func (noopLocker) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}

// Connect pings Redis once; a nil client means locking is disabled.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       0,
		PoolSize: 100,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}
