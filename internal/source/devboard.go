package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/config"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/errors"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/telemetry"
)

var tracer = telemetry.GetTracer("skillspring/opportunities/source")

// devboardSource fetches developer jobs and internships from the Devboard
// positions API.
type devboardSource struct {
	client  *http.Client
	logger  *zap.Logger
	baseURL string
}

func NewDevboard(logger *zap.Logger, cfg *config.Config) Source {
	return &devboardSource{
		client:  &http.Client{Timeout: cfg.SourceTimeout},
		logger:  logger,
		baseURL: cfg.DevboardBaseURL,
	}
}

func (s *devboardSource) Name() string { return "devboard" }

type devboardPosition struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	CreatedAt   string   `json:"created_at"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Salary      string   `json:"salary"`
	ClosesAt    string   `json:"closes_at"`
}

func (s *devboardSource) Fetch(ctx context.Context) ([]models.Opportunity, error) {
	ctx, span := tracer.Start(ctx, "Devboard.Fetch")
	defer span.End()

	url := fmt.Sprintf("%s/positions.json", s.baseURL)
	span.SetAttributes(telemetry.String("http.url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Internal("creating request", err)
	}

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

	span.SetAttributes(telemetry.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Unavailable(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var positions []devboardPosition
	if err := json.NewDecoder(resp.Body).Decode(&positions); err != nil {
		span.RecordError(err)
		return nil, errors.Internal("decoding response", err)
	}

	now := time.Now()
	opportunities := make([]models.Opportunity, 0, len(positions))
	for _, pos := range positions {
		o, ok := s.toOpportunity(pos, now)
		if !ok {
			continue
		}
		opportunities = append(opportunities, o)
	}

	span.SetAttributes(telemetry.Int("opportunities.count", len(opportunities)))
	s.logger.Debug("fetched devboard positions",
		zap.Int("raw", len(positions)),
		zap.Int("kept", len(opportunities)))
	return opportunities, nil
}

func (s *devboardSource) toOpportunity(pos devboardPosition, now time.Time) (models.Opportunity, bool) {
	category := models.CategoryJob
	if pos.Type == "internship" || strings.Contains(strings.ToLower(pos.Title), "intern") {
		category = models.CategoryInternship
	}

	o := models.Opportunity{
		Category:     category,
		Title:        pos.Title,
		Organization: pos.Company,
		Location:     pos.Location,
		Tags:         append(pos.Tags, ExtractTags(pos.Title, pos.Description)...),
		PostedAt:     parseTime(pos.CreatedAt, now),
		Deadline:     parseDeadline(pos.ClosesAt),
		ApplyURL:     pos.URL,
		Description:  pos.Description,
		Compensation: pos.Salary,
		Platform:     s.Name(),
	}

	if !normalize(&o, pos.ID, now) {
		s.logger.Debug("dropping expired devboard position", zap.String("id", pos.ID))
		return models.Opportunity{}, false
	}
	return o, true
}

// parseTime accepts RFC 3339 timestamps and falls back to the reference time
// for anything unparsable, so a malformed upstream date never discards the
// listing.
func parseTime(value string, fallback time.Time) time.Time {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return fallback
}

func parseDeadline(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t
	}
	return nil
}
