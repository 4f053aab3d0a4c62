package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/config"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/source"
)

func hackarenaConfig(baseURL string) *config.Config {
	return &config.Config{
		SourceTimeout:    time.Second,
		HackarenaBaseURL: baseURL,
	}
}

func TestHackarena_Fetch(t *testing.T) {
	deadline := time.Now().Add(20 * 24 * time.Hour).UTC().Format("2006-01-02")
	page := `<html><body>
		<div class="challenge-card" data-challenge-id="ch-1" data-deadline="` + deadline + `" data-posted-at="2026-03-12T08:00:00Z">
			<h3 class="challenge-title">AI Robotics Challenge</h3>
			<span class="challenge-organizer">RoboCorp</span>
			<span class="challenge-location">Online</span>
			<span class="challenge-prize">$5,000</span>
			<p class="challenge-description">Build autonomous agents with machine learning.</p>
			<a href="/challenges/ch-1">Details</a>
		</div>
		<div class="challenge-card">
			<h3 class="challenge-title"></h3>
		</div>
	</body></html>`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hackathons" {
			t.Errorf("path = %q, want /hackathons", r.URL.Path)
		}
		if _, err := w.Write([]byte(page)); err != nil {
			t.Error(err)
		}
	}))
	defer ts.Close()

	src := source.NewHackarena(zap.NewNop(), hackarenaConfig(ts.URL))
	opportunities, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(opportunities) != 1 {
		t.Fatalf("Fetch() returned %d opportunities, want 1 (untitled card dropped)", len(opportunities))
	}

	o := opportunities[0]
	if o.Category != models.CategoryHackathon {
		t.Errorf("category = %s, want hackathon", o.Category)
	}
	if o.ID != models.OpportunityID("hackarena", "ch-1", models.CategoryHackathon) {
		t.Errorf("ID = %q, want derived from data-challenge-id", o.ID)
	}
	if o.Title != "AI Robotics Challenge" || o.Organization != "RoboCorp" {
		t.Errorf("title/org = %q/%q", o.Title, o.Organization)
	}
	if o.Compensation != "$5,000" {
		t.Errorf("compensation = %q, want the prize text", o.Compensation)
	}
	if o.ApplyURL != ts.URL+"/challenges/ch-1" {
		t.Errorf("apply URL = %q, want relative link resolved against base", o.ApplyURL)
	}
	if o.Deadline == nil {
		t.Error("deadline not parsed from data-deadline")
	}
	if want := time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC); !o.PostedAt.Equal(want) {
		t.Errorf("posted_at = %v, want %v from data-posted-at", o.PostedAt, want)
	}
}

func TestHackarena_DropsClosedChallenges(t *testing.T) {
	page := `<html><body>
		<div class="challenge-card" data-challenge-id="ch-done" data-deadline="2026-01-01">
			<h3 class="challenge-title">Finished Challenge</h3>
		</div>
	</body></html>`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(page)); err != nil {
			t.Error(err)
		}
	}))
	defer ts.Close()

	src := source.NewHackarena(zap.NewNop(), hackarenaConfig(ts.URL))
	opportunities, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(opportunities) != 0 {
		t.Errorf("Fetch() kept %d closed challenges, want 0", len(opportunities))
	}
}

func TestHackarena_UpstreamErrorSurfaces(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	src := source.NewHackarena(zap.NewNop(), hackarenaConfig(ts.URL))
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Error("Fetch() error = nil, want failure on 503")
	}
}
