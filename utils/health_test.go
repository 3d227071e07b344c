package utils

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestProbeHealthReportsEachStore(t *testing.T) {
	cache := unreachableRedis()
	dedupe := unreachableRedis()
	defer cache.Close()
	defer dedupe.Close()

	s := probeHealth(context.Background(), cache, dedupe, nil)
	if s.Cache {
		t.Error("cache reported healthy with no server listening")
	}
	if s.Dedupe {
		t.Error("dedupe reported healthy with no server listening")
	}
	if s.Mongo {
		t.Error("mongo reported healthy with a nil client")
	}
	if s.CheckedAt.IsZero() {
		t.Error("CheckedAt not stamped")
	}
}

func TestHealthSnapshotRoundTrip(t *testing.T) {
	want := HealthStatus{Mongo: true, Cache: true, Dedupe: false, CheckedAt: time.Now()}
	setHealthStatus(want)

	got := GetHealthStatus()
	if got.Mongo != want.Mongo || got.Cache != want.Cache || got.Dedupe != want.Dedupe {
		t.Errorf("snapshot = %+v, want %+v", got, want)
	}
	if !got.CheckedAt.Equal(want.CheckedAt) {
		t.Errorf("CheckedAt = %v, want %v", got.CheckedAt, want.CheckedAt)
	}
}
