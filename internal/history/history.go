// Package history records per-cycle aggregation stats in ClickHouse.
// Cached opportunity data itself stays transient; only cycle summaries are
// durable.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/config"
)

// CycleRecord summarizes one completed refresh cycle.
type CycleRecord struct {
	ID            string
	StartedAt     time.Time
	Duration      time.Duration
	Jobs          int
	Internships   int
	Hackathons    int
	FailedSources int
	TotalSources  int
}

// NewCycleID returns a fresh identifier for a refresh cycle.
func NewCycleID() string {
	return uuid.NewString()
}

// Recorder persists cycle records. Implementations must be safe for use from
// the scheduler goroutine.
type Recorder interface {
	RecordCycle(ctx context.Context, record CycleRecord) error
	Close() error
}

type clickhouseRecorder struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

// New opens a ClickHouse connection and ensures the refresh_cycles table
// exists.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Recorder, error) {
	hostAndParams := strings.Split(cfg.ClickHouseDSN, "?")
	host := hostAndParams[0]

	conn, err := clickhouse.Open(&clickhouse.Options{
		Protocol: clickhouse.Native,
		Addr:     []string{host},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Auth: clickhouse.Auth{
			Database: cfg.ClickHouseDatabase,
			Username: cfg.ClickHouseUsername,
			Password: cfg.ClickHousePassword,
		},
		DialTimeout:     time.Second * 30,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create clickhouse connection: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	r := &clickhouseRecorder{conn: conn, logger: logger}
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *clickhouseRecorder) ensureTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS refresh_cycles (
			id UUID,
			started_at DateTime,
			duration_ms UInt64,
			jobs UInt32,
			internships UInt32,
			hackathons UInt32,
			failed_sources UInt8,
			total_sources UInt8
		) ENGINE = MergeTree()
		ORDER BY started_at
	`

	if err := r.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create refresh_cycles table: %w", err)
	}
	return nil
}

func (r *clickhouseRecorder) RecordCycle(ctx context.Context, record CycleRecord) error {
	query := `
		INSERT INTO refresh_cycles (
			id, started_at, duration_ms, jobs, internships, hackathons,
			failed_sources, total_sources
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if err := r.conn.Exec(ctx, query,
		record.ID,
		record.StartedAt,
		uint64(record.Duration.Milliseconds()),
		uint32(record.Jobs),
		uint32(record.Internships),
		uint32(record.Hackathons),
		uint8(record.FailedSources),
		uint8(record.TotalSources),
	); err != nil {
		return fmt.Errorf("insert refresh cycle: %w", err)
	}

	r.logger.Debug("recorded refresh cycle",
		zap.String("cycle_id", record.ID),
		zap.Duration("duration", record.Duration))
	return nil
}

func (r *clickhouseRecorder) Close() error {
	return r.conn.Close()
}

// NoopRecorder discards cycle records; used when history is disabled.
type NoopRecorder struct{}

func (NoopRecorder) RecordCycle(ctx context.Context, record CycleRecord) error { return nil }

func (NoopRecorder) Close() error { return nil }
