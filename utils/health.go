package utils

import (
	"context"
	"sync"
	"time"

	"randevio/config"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest probe of the stores this service depends on:
// mongo for bookings and sessions, the cache redis for entitlement reads,
// the dedupe redis for webhook idempotency keys.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Cache     bool      `json:"cache"`
	Dedupe    bool      `json:"dedupe"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func setHealthStatus(s HealthStatus) {
	healthMu.Lock()
	currentHealth = s
	healthMu.Unlock()
}

// probeHealth pings each dependency once. A nil client counts as down.
func probeHealth(ctx context.Context, cache, dedupe *redis.Client, mongoClient *mongo.Client) HealthStatus {
	s := HealthStatus{CheckedAt: time.Now()}
	if cache != nil {
		s.Cache = cache.Ping(ctx).Err() == nil
	}
	if dedupe != nil {
		s.Dedupe = dedupe.Ping(ctx).Err() == nil
	}
	if mongoClient != nil {
		s.Mongo = mongoClient.Ping(ctx, nil) == nil
	}
	return s
}

// StartHealthMonitor probes the stores on the configured interval and keeps
// the in-memory snapshot current. The first probe runs immediately so the
// health endpoint has data before the first tick.
func StartHealthMonitor(cache, dedupe *redis.Client, mongoClient *mongo.Client) {
	interval := time.Duration(config.AppConfig.HealthIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 60 * time.Second
	}

	go func() {
		ctx := context.Background()
		setHealthStatus(probeHealth(ctx, cache, dedupe, mongoClient))

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			setHealthStatus(probeHealth(ctx, cache, dedupe, mongoClient))
		}
	}()
}
