// Package aggregator runs all source adapters concurrently and folds their
// results into one scored, deduplicated, bounded snapshot per cycle.
package aggregator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/config"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/filter"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/scoring"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/source"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/telemetry"
)

var tracer = telemetry.GetTracer("skillspring/opportunities/aggregator")

// Stats describes one aggregation pass for observability and cycle history.
type Stats struct {
	FailedSources int
	TotalSources  int
	Elapsed       time.Duration
}

type Aggregator struct {
	sources  []source.Source
	fallback source.Source
	logger   *zap.Logger
	cfg      *config.Config
	now      func() time.Time
}

// New builds an aggregator over the given sources. The fallback source seeds
// the snapshot only when every regular source fails; pass nil to disable
// fallback seeding.
func New(sources []source.Source, fallback source.Source, logger *zap.Logger, cfg *config.Config) *Aggregator {
	return &Aggregator{
		sources:  sources,
		fallback: fallback,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// NewWithClock is New with an injected reference clock for deterministic
// scoring in tests.
func NewWithClock(sources []source.Source, fallback source.Source, logger *zap.Logger, cfg *config.Config, now func() time.Time) *Aggregator {
	a := New(sources, fallback, logger, cfg)
	a.now = now
	return a
}

// Aggregate produces a best-effort snapshot. It never fails: source errors
// shrink the result, and a total upstream failure falls back to seed data.
func (a *Aggregator) Aggregate(ctx context.Context, prefs *models.PreferenceSet) models.Snapshot {
	snapshot, _ := a.Run(ctx, prefs)
	return snapshot
}

// Run is Aggregate plus pass statistics, used by the refresh scheduler to
// record cycle history.
func (a *Aggregator) Run(ctx context.Context, prefs *models.PreferenceSet) (models.Snapshot, Stats) {
	ctx, span := tracer.Start(ctx, "Aggregator.Run")
	defer span.End()

	start := a.now()
	merged := a.fetchAll(ctx)
	stats := Stats{TotalSources: len(a.sources)}

	var all []models.Opportunity
	for i, opportunities := range merged {
		if opportunities == nil {
			stats.FailedSources++
			continue
		}
		all = append(all, merged[i]...)
	}

	// Total failure still yields a well-formed snapshot, seeded from the
	// fallback source when one is configured.
	if stats.FailedSources == stats.TotalSources && stats.TotalSources > 0 && a.fallback != nil {
		a.logger.Warn("all sources failed, seeding snapshot from fallback",
			zap.Int("sources", stats.TotalSources))
		seeded, err := a.fallback.Fetch(ctx)
		if err != nil {
			a.logger.Error("fallback source failed", zap.Error(err))
		} else {
			all = seeded
		}
	}

	jobs := dedupe(byCategory(all, models.CategoryJob))
	internships := dedupe(byCategory(all, models.CategoryInternship))
	hackathons := dedupe(byCategory(all, models.CategoryHackathon))

	now := a.now()
	scoring.Rank(jobs, now)
	scoring.Rank(internships, now)
	scoring.Rank(hackathons, now)

	if prefs != nil && !prefs.IsEmpty() {
		jobs = filter.Apply(jobs, *prefs)
		internships = filter.Apply(internships, *prefs)
		hackathons = filter.Apply(hackathons, *prefs)
	}

	snapshot := models.Snapshot{
		GeneratedAt: now,
		Counts: models.Counts{
			Jobs:        len(jobs),
			Internships: len(internships),
			Hackathons:  len(hackathons),
		},
		Jobs:        truncateTo(jobs, a.cfg.MaxJobs),
		Internships: truncateTo(internships, a.cfg.MaxInternships),
		Hackathons:  truncateTo(hackathons, a.cfg.MaxHackathons),
	}

	stats.Elapsed = a.now().Sub(start)
	span.SetAttributes(
		telemetry.Int("aggregate.jobs", snapshot.Counts.Jobs),
		telemetry.Int("aggregate.internships", snapshot.Counts.Internships),
		telemetry.Int("aggregate.hackathons", snapshot.Counts.Hackathons),
		telemetry.Int("aggregate.failed_sources", stats.FailedSources),
	)
	a.logger.Info("aggregation pass complete",
		zap.Int("jobs", snapshot.Counts.Jobs),
		zap.Int("internships", snapshot.Counts.Internships),
		zap.Int("hackathons", snapshot.Counts.Hackathons),
		zap.Int("failed_sources", stats.FailedSources),
		zap.Duration("elapsed", stats.Elapsed))

	return snapshot, stats
}

// fetchAll fans out one goroutine per source with a bounded per-source
// timeout and joins all of them. Each source writes only its own slot, so the
// merged order follows registration order regardless of completion order.
// A failed source leaves a nil slot.
func (a *Aggregator) fetchAll(ctx context.Context) [][]models.Opportunity {
	results := make([][]models.Opportunity, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, a.cfg.SourceTimeout)
			defer cancel()

			opportunities, err := src.Fetch(fetchCtx)
			if err != nil {
				a.logger.Warn("source fetch failed",
					zap.String("source", src.Name()),
					zap.Error(err))
				return
			}
			if opportunities == nil {
				opportunities = []models.Opportunity{}
			}
			results[i] = opportunities
		}(i, src)
	}
	wg.Wait()

	return results
}

func byCategory(opportunities []models.Opportunity, category models.Category) []models.Opportunity {
	var out []models.Opportunity
	for _, o := range opportunities {
		if o.Category == category {
			out = append(out, o)
		}
	}
	return out
}

// dedupe collapses duplicate IDs within one cycle, keeping the entry with the
// more recent posted_at in the position of the first occurrence.
func dedupe(opportunities []models.Opportunity) []models.Opportunity {
	index := make(map[string]int, len(opportunities))
	out := opportunities[:0]
	for _, o := range opportunities {
		if at, ok := index[o.ID]; ok {
			if o.PostedAt.After(out[at].PostedAt) {
				out[at] = o
			}
			continue
		}
		index[o.ID] = len(out)
		out = append(out, o)
	}
	return out
}

// truncateTo never returns nil, so empty categories serialize as [] rather
// than null.
func truncateTo(opportunities []models.Opportunity, limit int) []models.Opportunity {
	if opportunities == nil {
		return []models.Opportunity{}
	}
	if limit > 0 && len(opportunities) > limit {
		return opportunities[:limit]
	}
	return opportunities
}
