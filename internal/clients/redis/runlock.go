package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/selahapp/selah-backend/internal/logger"
)

// RunLocker serializes generation runs per user+engine. Acquire returns false
// when another run already holds the lock; the TTL bounds how long a crashed
// holder can block new runs.
type RunLocker interface {
	Acquire(ctx context.Context, userID uuid.UUID, engineType string) (bool, error)
	Release(ctx context.Context, userID uuid.UUID, engineType string) error
	Close() error
}

type runLocker struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewRunLocker(log *logger.Logger) (RunLocker, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &runLocker{
		log: log.With("service", "RedisRunLocker"),
		rdb: rdb,
		ttl: 2 * time.Minute,
	}, nil
}

func lockKey(userID uuid.UUID, engineType string) string {
	return fmt.Sprintf("personalization:lock:%s:%s", userID, engineType)
}

func (l *runLocker) Acquire(ctx context.Context, userID uuid.UUID, engineType string) (bool, error) {
	if l == nil || l.rdb == nil {
		return false, fmt.Errorf("run locker not initialized")
	}
	ok, err := l.rdb.SetNX(ctx, lockKey(userID, engineType), time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (l *runLocker) Release(ctx context.Context, userID uuid.UUID, engineType string) error {
	if l == nil || l.rdb == nil {
		return fmt.Errorf("run locker not initialized")
	}
	return l.rdb.Del(ctx, lockKey(userID, engineType)).Err()
}

func (l *runLocker) Close() error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Close()
}
