package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/config"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/errors"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/telemetry"
)

// hackarenaSource scrapes the Hackarena listings page. The site has no API,
// so listings come from the rendered challenge cards.
type hackarenaSource struct {
	client  *http.Client
	logger  *zap.Logger
	baseURL string
}

func NewHackarena(logger *zap.Logger, cfg *config.Config) Source {
	return &hackarenaSource{
		client:  &http.Client{Timeout: cfg.SourceTimeout},
		logger:  logger,
		baseURL: cfg.HackarenaBaseURL,
	}
}

func (s *hackarenaSource) Name() string { return "hackarena" }

func (s *hackarenaSource) Fetch(ctx context.Context) ([]models.Opportunity, error) {
	ctx, span := tracer.Start(ctx, "Hackarena.Fetch")
	defer span.End()

	url := fmt.Sprintf("%s/hackathons", s.baseURL)
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

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Unavailable(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("parsing HTML", err)
	}

	now := time.Now()
	var opportunities []models.Opportunity
	doc.Find(".challenge-card").Each(func(i int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find(".challenge-title").Text())
		if title == "" {
			return
		}
		organizer := strings.TrimSpace(sel.Find(".challenge-organizer").Text())
		location := strings.TrimSpace(sel.Find(".challenge-location").Text())
		prize := strings.TrimSpace(sel.Find(".challenge-prize").Text())
		description := strings.TrimSpace(sel.Find(".challenge-description").Text())

		link, _ := sel.Find("a").Attr("href")
		if link != "" && !strings.HasPrefix(link, "http") {
			link = s.baseURL + link
		}

		nativeID, ok := sel.Attr("data-challenge-id")
		if !ok {
			nativeID = link
		}

		var deadline *time.Time
		if raw, ok := sel.Attr("data-deadline"); ok {
			deadline = parseDeadline(raw)
		}

		o := models.Opportunity{
			Category:     models.CategoryHackathon,
			Title:        title,
			Organization: organizer,
			Location:     location,
			Tags:         ExtractTags(title, description),
			PostedAt:     now,
			Deadline:     deadline,
			ApplyURL:     link,
			Description:  description,
			Compensation: prize,
			Platform:     s.Name(),
		}
		if raw, ok := sel.Attr("data-posted-at"); ok {
			o.PostedAt = parseTime(raw, now)
		}

		if !normalize(&o, nativeID, now) {
			s.logger.Debug("dropping closed hackathon", zap.String("title", title))
			return
		}
		opportunities = append(opportunities, o)
	})

	span.SetAttributes(telemetry.Int("opportunities.count", len(opportunities)))
	s.logger.Debug("scraped hackarena listings", zap.Int("count", len(opportunities)))
	return opportunities, nil
}
