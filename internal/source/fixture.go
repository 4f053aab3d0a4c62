package source

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
)

// fixtureSource serves a curated seed dataset. It backs the fixture source
// mode for offline development and doubles as the aggregator's fallback when
// every live upstream fails.
type fixtureSource struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewFixture(logger *zap.Logger) Source {
	return &fixtureSource{logger: logger, now: time.Now}
}

// NewFixtureWithClock builds a fixture source with a fixed reference clock,
// keeping seeded recency deterministic in tests.
func NewFixtureWithClock(logger *zap.Logger, now func() time.Time) Source {
	return &fixtureSource{logger: logger, now: now}
}

func (s *fixtureSource) Name() string { return "fixture" }

type fixtureEntry struct {
	category     models.Category
	nativeID     string
	title        string
	organization string
	location     string
	tags         []string
	postedAgo    time.Duration
	deadlineIn   time.Duration // zero means rolling deadline
	applyURL     string
	description  string
	compensation string
}

var fixtureEntries = []fixtureEntry{
	{
		category:     models.CategoryJob,
		nativeID:     "seed-job-1",
		title:        "Senior Frontend Developer",
		organization: "TechCorp",
		location:     "Remote",
		tags:         []string{"React", "TypeScript", "Remote"},
		postedAgo:    6 * time.Hour,
		applyURL:     "https://careers.techcorp.example/frontend",
		description:  "Own the design system and component library for a product used by millions. React, TypeScript, strong CSS fundamentals.",
		compensation: "$90,000 - $130,000",
	},
	{
		category:     models.CategoryJob,
		nativeID:     "seed-job-2",
		title:        "Python Backend Developer",
		organization: "DataFlow Inc.",
		location:     "Remote",
		tags:         []string{"Python", "Django", "Backend"},
		postedAgo:    20 * time.Hour,
		applyURL:     "https://dataflow.example/jobs/backend",
		description:  "Build data ingestion APIs on Django and PostgreSQL for a fully remote team.",
		compensation: "$70,000 - $100,000",
	},
	{
		category:     models.CategoryJob,
		nativeID:     "seed-job-3",
		title:        "Full Stack Developer",
		organization: "InnovateLab",
		location:     "New York, NY",
		tags:         []string{"Full Stack", "Node.js", "React"},
		postedAgo:    3 * 24 * time.Hour,
		applyURL:     "https://innovatelab.example/careers/fullstack",
		description:  "Join a fast-growing startup building tools for early-stage founders. Equity included.",
		compensation: "$80,000 - $120,000",
	},
	{
		category:     models.CategoryInternship,
		nativeID:     "seed-intern-1",
		title:        "Full Stack Engineer Intern",
		organization: "StartupXYZ",
		location:     "San Francisco, CA",
		tags:         []string{"Node.js", "React"},
		postedAgo:    10 * time.Hour,
		applyURL:     "https://startupxyz.example/internships/1",
		description:  "Summer internship shipping production features alongside the core team.",
		compensation: "$4,000/month",
	},
	{
		category:     models.CategoryInternship,
		nativeID:     "seed-intern-2",
		title:        "Data Science Intern",
		organization: "AITech Solutions",
		location:     "Boston, MA",
		tags:         []string{"Data Science", "Python", "AI"},
		postedAgo:    2 * 24 * time.Hour,
		applyURL:     "https://aitech.example/internships/ds",
		description:  "Work on recommendation models with the applied ML group.",
		compensation: "$3,500/month",
	},
	{
		category:     models.CategoryHackathon,
		nativeID:     "seed-hack-1",
		title:        "AI/ML Hackathon 2026",
		organization: "TechFest",
		location:     "Online",
		tags:         []string{"AI", "Machine Learning", "Online"},
		postedAgo:    12 * time.Hour,
		deadlineIn:   15 * 24 * time.Hour,
		applyURL:     "https://techfest.example/hackathons/aiml",
		description:  "48-hour sprint building practical AI solutions. Open to students and professionals.",
		compensation: "$5,000 prize pool",
	},
	{
		category:     models.CategoryHackathon,
		nativeID:     "seed-hack-2",
		title:        "Web3 Innovation Challenge",
		organization: "BlockTech",
		location:     "Hybrid",
		tags:         []string{"Web3", "Blockchain"},
		postedAgo:    2 * 24 * time.Hour,
		deadlineIn:   20 * 24 * time.Hour,
		applyURL:     "https://blocktech.example/challenge",
		description:  "Build the next generation of decentralized applications with mentor support.",
		compensation: "$10,000 prize pool",
	},
}

func (s *fixtureSource) Fetch(ctx context.Context) ([]models.Opportunity, error) {
	now := s.now()
	opportunities := make([]models.Opportunity, 0, len(fixtureEntries))
	for _, entry := range fixtureEntries {
		var deadline *time.Time
		if entry.deadlineIn > 0 {
			d := now.Add(entry.deadlineIn)
			deadline = &d
		}

		o := models.Opportunity{
			Category:     entry.category,
			Title:        entry.title,
			Organization: entry.organization,
			Location:     entry.location,
			Tags:         entry.tags,
			PostedAt:     now.Add(-entry.postedAgo),
			Deadline:     deadline,
			ApplyURL:     entry.applyURL,
			Description:  entry.description,
			Compensation: entry.compensation,
			Platform:     s.Name(),
		}
		if !normalize(&o, entry.nativeID, now) {
			continue
		}
		opportunities = append(opportunities, o)
	}

	s.logger.Debug("serving fixture opportunities", zap.Int("count", len(opportunities)))
	return opportunities, nil
}
