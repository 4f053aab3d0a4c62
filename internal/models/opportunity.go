package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category classifies an opportunity. The three values cover everything the
// platform aggregates.
type Category string

const (
	CategoryJob        Category = "job"
	CategoryInternship Category = "internship"
	CategoryHackathon  Category = "hackathon"
)

// Tag returns the display-cased fallback tag for the category, assigned when
// normalization finds no tags at all.
func (c Category) Tag() string {
	switch c {
	case CategoryJob:
		return "Job"
	case CategoryInternship:
		return "Internship"
	case CategoryHackathon:
		return "Hackathon"
	}
	return string(c)
}

// Opportunity is the canonical unit of aggregated data: one normalized job,
// internship, or hackathon listing. Instances live only for the duration of a
// refresh cycle plus the cache entry that holds them.
type Opportunity struct {
	ID             string     `json:"id"`
	Category       Category   `json:"category"`
	Title          string     `json:"title"`
	Organization   string     `json:"organization"`
	Location       string     `json:"location"`
	Tags           []string   `json:"tags"`
	PostedAt       time.Time  `json:"posted_at"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	ApplyURL       string     `json:"apply_url"`
	Description    string     `json:"description"`
	Compensation   string     `json:"compensation,omitempty"`
	Platform       string     `json:"platform"`
	RelevanceScore float64    `json:"relevance_score"`
	IsOpen         bool       `json:"is_open"`
}

var idNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// OpportunityID derives a stable ID from the originating platform, the
// upstream's native identifier, and the category, so re-ingesting the same
// listing yields the same ID every cycle.
func OpportunityID(platform, nativeID string, category Category) string {
	key := strings.ToLower(platform) + ":" + nativeID + ":" + string(category)
	return uuid.NewSHA1(idNamespace, []byte(key)).String()
}

// IsRemote reports whether the opportunity is flagged as remote work, either
// via its tags or via remote signal words in its location, title, or
// description.
func (o Opportunity) IsRemote() bool {
	for _, tag := range o.Tags {
		if strings.EqualFold(tag, "remote") {
			return true
		}
	}
	text := strings.ToLower(o.Location + " " + o.Title + " " + o.Description)
	return strings.Contains(text, "remote") ||
		strings.Contains(text, "work from home") ||
		strings.Contains(text, "work-from-home")
}

// SearchText returns the lowercased concatenation of all text fields that the
// search endpoint matches against.
func (o Opportunity) SearchText() string {
	return strings.ToLower(
		o.Title + " " + o.Organization + " " + strings.Join(o.Tags, " ") + " " + o.Description,
	)
}

// Counts holds per-category totals as they were before truncation, so a
// consumer can tell that more listings exist than the snapshot carries.
type Counts struct {
	Jobs        int `json:"jobs"`
	Internships int `json:"internships"`
	Hackathons  int `json:"hackathons"`
}

// Snapshot is one aggregated result set, produced wholesale by a refresh
// cycle and replaced wholesale by the next one.
type Snapshot struct {
	Jobs        []Opportunity `json:"jobs"`
	Internships []Opportunity `json:"internships"`
	Hackathons  []Opportunity `json:"hackathons"`
	GeneratedAt time.Time     `json:"generated_at"`
	Counts      Counts        `json:"counts"`
}

func (s Snapshot) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *Snapshot) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}

// PreferenceSet narrows an opportunity set at query time. Empty fields mean
// no constraint.
type PreferenceSet struct {
	Domains   []string `json:"domains"`
	Locations []string `json:"locations"`
}

// IsEmpty reports whether the preference set constrains nothing.
func (p PreferenceSet) IsEmpty() bool {
	return len(p.Domains) == 0 && len(p.Locations) == 0
}
