// Package events delivers "opportunities updated" notifications to the push
// transport. The payload contract is fixed here; the transport behind it is
// not this service's concern.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/config"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/errors"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/telemetry"
)

var tracer = telemetry.GetTracer("skillspring/opportunities/events")

const OpportunitiesUpdatedSubject = "opportunities.updated"

// UpdateEvent is the payload emitted once per completed refresh cycle.
type UpdateEvent struct {
	Event     string        `json:"event"`
	Counts    models.Counts `json:"counts"`
	Timestamp time.Time     `json:"timestamp"`
}

// Sink receives refresh notifications for push delivery.
type Sink interface {
	PublishUpdate(ctx context.Context, counts models.Counts, timestamp time.Time) error
	Close()
}

type natsSink struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// NewSink connects to the configured NATS server, or degrades to a
// log-only sink when no NATS URL is configured.
func NewSink(logger *zap.Logger, cfg *config.Config) (Sink, error) {
	if cfg.NATSURL == "" {
		logger.Info("no NATS URL configured, update events will only be logged")
		return &logSink{logger: logger}, nil
	}

	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name("opportunities-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, errors.Unavailable("connecting to NATS", err)
	}

	return &natsSink{conn: conn, logger: logger}, nil
}

func (s *natsSink) PublishUpdate(ctx context.Context, counts models.Counts, timestamp time.Time) error {
	_, span := tracer.Start(ctx, "PublishUpdate")
	defer span.End()

	event := UpdateEvent{
		Event:     "opportunities_updated",
		Counts:    counts,
		Timestamp: timestamp,
	}

	data, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling update event", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", OpportunitiesUpdatedSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := s.conn.Publish(OpportunitiesUpdatedSubject, data); err != nil {
		span.RecordError(err)
		s.logger.Error("failed to publish update event", zap.Error(err))
		return errors.Internal("publishing to NATS", err)
	}

	s.logger.Debug("published update event",
		zap.String("subject", OpportunitiesUpdatedSubject),
		zap.Int("jobs", counts.Jobs),
		zap.Int("internships", counts.Internships),
		zap.Int("hackathons", counts.Hackathons))
	return nil
}

func (s *natsSink) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}

// logSink satisfies Sink without a broker.
type logSink struct {
	logger *zap.Logger
}

func (s *logSink) PublishUpdate(ctx context.Context, counts models.Counts, timestamp time.Time) error {
	s.logger.Info("opportunities updated",
		zap.Int("jobs", counts.Jobs),
		zap.Int("internships", counts.Internships),
		zap.Int("hackathons", counts.Hackathons),
		zap.Time("timestamp", timestamp))
	return nil
}

func (s *logSink) Close() {}
