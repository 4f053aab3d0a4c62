package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/config"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/errors"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/telemetry"
)

// launchpoolSource fetches startup roles from the Launchpool talent API.
// Listings carry a nested company object and an explicit kind field, so
// category inference is direct.
type launchpoolSource struct {
	client  *http.Client
	logger  *zap.Logger
	baseURL string
}

func NewLaunchpool(logger *zap.Logger, cfg *config.Config) Source {
	return &launchpoolSource{
		client:  &http.Client{Timeout: cfg.SourceTimeout},
		logger:  logger,
		baseURL: cfg.LaunchpoolBaseURL,
	}
}

func (s *launchpoolSource) Name() string { return "launchpool" }

type launchpoolRole struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Kind    string `json:"kind"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Description   string `json:"description"`
	Compensation  string `json:"compensation"`
	RedirectURL   string `json:"redirect_url"`
	PublishedAt   string `json:"published_at"`
	ApplicationBy string `json:"application_by"`
}

type launchpoolResponse struct {
	Results []launchpoolRole `json:"results"`
	Count   int              `json:"count"`
}

func (s *launchpoolSource) Fetch(ctx context.Context) ([]models.Opportunity, error) {
	ctx, span := tracer.Start(ctx, "Launchpool.Fetch")
	defer span.End()

	url := fmt.Sprintf("%s/roles?status=open&sort_by=date", s.baseURL)
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

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Unavailable(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var payload launchpoolResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		span.RecordError(err)
		return nil, errors.Internal("decoding response", err)
	}

	now := time.Now()
	opportunities := make([]models.Opportunity, 0, len(payload.Results))
	for _, role := range payload.Results {
		category := models.CategoryJob
		if role.Kind == "internship" {
			category = models.CategoryInternship
		}

		o := models.Opportunity{
			Category:     category,
			Title:        role.Title,
			Organization: role.Company.DisplayName,
			Location:     role.Location.DisplayName,
			Tags:         ExtractTags(role.Title, role.Description),
			PostedAt:     parseTime(role.PublishedAt, now),
			Deadline:     parseDeadline(role.ApplicationBy),
			ApplyURL:     role.RedirectURL,
			Description:  role.Description,
			Compensation: role.Compensation,
			Platform:     s.Name(),
		}
		if !normalize(&o, role.ID, now) {
			continue
		}
		opportunities = append(opportunities, o)
	}

	span.SetAttributes(telemetry.Int("opportunities.count", len(opportunities)))
	s.logger.Debug("fetched launchpool roles",
		zap.Int("total_available", payload.Count),
		zap.Int("kept", len(opportunities)))
	return opportunities, nil
}
