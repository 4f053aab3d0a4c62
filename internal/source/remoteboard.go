package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/config"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/errors"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/telemetry"
)

// remoteBoardSource fetches remote-only listings. The board throttles
// aggressive clients, so requests go through a token-bucket limiter.
type remoteBoardSource struct {
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
	baseURL string
}

func NewRemoteBoard(logger *zap.Logger, cfg *config.Config) Source {
	return &remoteBoardSource{
		client:  &http.Client{Timeout: cfg.SourceTimeout},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		logger:  logger,
		baseURL: cfg.RemoteBoardBaseURL,
	}
}

func (s *remoteBoardSource) Name() string { return "remoteboard" }

type remoteBoardListing struct {
	Slug        string   `json:"slug"`
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	ApplyURL    string   `json:"apply_url"`
	Salary      string   `json:"salary"`
}

type remoteBoardResponse struct {
	Jobs []remoteBoardListing `json:"jobs"`
}

func (s *remoteBoardSource) Fetch(ctx context.Context) ([]models.Opportunity, error) {
	ctx, span := tracer.Start(ctx, "RemoteBoard.Fetch")
	defer span.End()

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, errors.RateLimit("waiting for rate limiter", err)
	}

	url := fmt.Sprintf("%s/remote-jobs", s.baseURL)
	span.SetAttributes(telemetry.String("http.url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Internal("creating request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Unavailable("executing request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.RateLimit("remote board throttled the request", nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Unavailable(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var payload remoteBoardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		span.RecordError(err)
		return nil, errors.Internal("decoding response", err)
	}

	now := time.Now()
	opportunities := make([]models.Opportunity, 0, len(payload.Jobs))
	for _, listing := range payload.Jobs {
		category := models.CategoryJob
		if strings.Contains(strings.ToLower(listing.Position), "intern") {
			category = models.CategoryInternship
		}

		o := models.Opportunity{
			Category:     category,
			Title:        listing.Position,
			Organization: listing.Company,
			Location:     "Remote",
			Tags:         append(listing.Tags, ExtractTags(listing.Position, listing.Description)...),
			PostedAt:     parseTime(listing.Date, now),
			ApplyURL:     listing.ApplyURL,
			Description:  listing.Description,
			Compensation: listing.Salary,
			Platform:     s.Name(),
		}
		if !normalize(&o, listing.Slug, now) {
			continue
		}
		opportunities = append(opportunities, o)
	}

	span.SetAttributes(telemetry.Int("opportunities.count", len(opportunities)))
	s.logger.Debug("fetched remote board listings", zap.Int("count", len(opportunities)))
	return opportunities, nil
}
