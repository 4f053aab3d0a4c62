// Package cache defines the snapshot cache shared between the refresh
// scheduler (writer) and the HTTP read path (readers).
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
)

var (
	ErrNotFound   = errors.New("key not found in cache")
	ErrInvalidKey = errors.New("invalid cache key")
)

// LiveSnapshotKey is the single logical key holding the current aggregated
// snapshot.
const LiveSnapshotKey = "live_opportunities"

// SnapshotCache stores whole snapshots with a fixed TTL. Get must never
// observe a partially written snapshot; Set replaces the entry wholesale and
// resets its age.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (*models.Snapshot, error)

	Set(ctx context.Context, key string, snapshot *models.Snapshot) error

	Clear(ctx context.Context) error

	Close() error
}

type Options struct {
	TTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func DefaultOptions() Options {
	return Options{
		TTL: 30 * time.Minute,
	}
}
