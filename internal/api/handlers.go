package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/cache"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/scoring"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "opportunities-service",
		"version": "1.0.0",
	})
}

// liveOpportunities serves the cached snapshot. A cache miss triggers one
// on-demand aggregation pass; "no data yet" is never an error.
func (s *Server) liveOpportunities(c *gin.Context) {
	ctx := c.Request.Context()

	snapshot, err := s.cache.Get(ctx, cache.LiveSnapshotKey)
	if err != nil {
		if err != cache.ErrNotFound {
			s.logger.Warn("cache read failed, aggregating on demand", zap.Error(err))
		}
		fresh := s.aggregator.Aggregate(ctx, nil)
		snapshot = &fresh
		if cerr := s.cache.Set(ctx, cache.LiveSnapshotKey, snapshot); cerr != nil {
			s.logger.Warn("failed to cache on-demand snapshot", zap.Error(cerr))
		}
	}

	c.JSON(http.StatusOK, snapshot)
}

// searchOpportunities runs an on-demand aggregation narrowed by preferences,
// then applies a case-insensitive text-containment filter over title,
// organization, tags, and description.
func (s *Server) searchOpportunities(c *gin.Context) {
	ctx := c.Request.Context()

	query := strings.ToLower(strings.TrimSpace(c.Query("q")))
	category := c.DefaultQuery("category", "all")

	prefs := models.PreferenceSet{
		Domains:   splitParam(c.Query("domains")),
		Locations: splitParam(c.Query("locations")),
	}

	var prefsArg *models.PreferenceSet
	if !prefs.IsEmpty() {
		prefsArg = &prefs
	}
	snapshot := s.aggregator.Aggregate(ctx, prefsArg)

	var pool []models.Opportunity
	switch category {
	case "all":
		pool = append(pool, snapshot.Jobs...)
		pool = append(pool, snapshot.Internships...)
		pool = append(pool, snapshot.Hackathons...)
	case "jobs", string(models.CategoryJob):
		pool = snapshot.Jobs
	case "internships", string(models.CategoryInternship):
		pool = snapshot.Internships
	case "hackathons", string(models.CategoryHackathon):
		pool = snapshot.Hackathons
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + category})
		return
	}

	results := make([]models.Opportunity, 0, len(pool))
	for _, o := range pool {
		if query == "" || strings.Contains(o.SearchText(), query) {
			results = append(results, o)
		}
	}

	scoring.Sort(results)
	if len(results) > s.cfg.MaxSearchResults {
		results = results[:s.cfg.MaxSearchResults]
	}

	c.JSON(http.StatusOK, gin.H{
		"results":      results,
		"count":        len(results),
		"generated_at": snapshot.GeneratedAt,
	})
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
