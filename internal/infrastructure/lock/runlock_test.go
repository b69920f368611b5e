package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLock(t *testing.T) (*RedisRunLock, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisRunLock(rdb), s
}

func TestAcquireRelease(t *testing.T) {
	l, _ := newTestLock(t)
	ctx := context.Background()
	const key = "invoice_run:2025-06"

	ok, err := l.Acquire(ctx, key, time.Minute)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !ok {
		t.Fatalf("first acquire should succeed")
	}

	ok, err = l.Acquire(ctx, key, time.Minute)
	if err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	if ok {
		t.Fatalf("second acquire should be rejected while held")
	}

	if err := l.Release(ctx, key); err != nil {
		t.Fatalf("Release: %v", err)
	}

	ok, err = l.Acquire(ctx, key, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("acquire after release should succeed")
	}
}

func TestAcquireAfterTTLExpiry(t *testing.T) {
	l, s := newTestLock(t)
	ctx := context.Background()
	const key = "invoice_run:2025-06"

	if ok, _ := l.Acquire(ctx, key, time.Minute); !ok {
		t.Fatalf("first acquire should succeed")
	}

	s.FastForward(2 * time.Minute)

	ok, err := l.Acquire(ctx, key, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("lock should be reacquirable after its TTL lapses")
	}
}
