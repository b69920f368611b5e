package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_Success(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	c, err := OpenRedis(s.Addr(), 1)
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if got := c.Options().DB; got != 1 {
		t.Fatalf("client DB = %d, want 1", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.Set(ctx, "k", "v", 0).Err(); err != nil {
		t.Fatalf("SET: %v", err)
	}
}

func TestOpenRedis_BadAddr(t *testing.T) {
	if _, err := OpenRedis("127.0.0.1:1", 0); err == nil {
		t.Fatalf("expected connection error")
	}
}
