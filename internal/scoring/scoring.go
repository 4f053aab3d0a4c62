// Package scoring assigns relevance scores to opportunities and produces the
// deterministic ordering served by every read path.
package scoring

import (
	"sort"
	"strings"
	"time"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
)

const (
	baseScore = 5.0
	minScore  = 0.0
	maxScore  = 10.0

	// Bonus weights. Tunable, not load-bearing.
	dayRecencyBonus  = 2.0
	weekRecencyBonus = 1.0
	entryLevelBonus  = 1.5
	remoteBonus      = 1.0
)

var entrySignals = []string{"intern", "junior", "entry", "graduate", "beginner"}

// Score computes the relevance score for one opportunity at the given
// reference time. The result is always within [0, 10].
func Score(o models.Opportunity, now time.Time) float64 {
	score := baseScore

	age := now.Sub(o.PostedAt)
	switch {
	case age >= 0 && age < 24*time.Hour:
		score += dayRecencyBonus
	case age >= 0 && age < 7*24*time.Hour:
		score += weekRecencyBonus
	}

	text := strings.ToLower(o.Title + " " + o.Description)
	for _, signal := range entrySignals {
		if strings.Contains(text, signal) {
			score += entryLevelBonus
			break
		}
	}

	if o.IsRemote() {
		score += remoteBonus
	}

	if score > maxScore {
		score = maxScore
	}
	if score < minScore {
		score = minScore
	}
	return score
}

// Rank recomputes every score at the given reference time, refreshes the
// open/closed flag, and sorts the slice in place: score descending, then
// deadline ascending with missing deadlines last, preserving the original
// relative order of fully tied entries.
func Rank(opportunities []models.Opportunity, now time.Time) {
	for i := range opportunities {
		opportunities[i].RelevanceScore = Score(opportunities[i], now)
		opportunities[i].IsOpen = opportunities[i].Deadline == nil || opportunities[i].Deadline.After(now)
	}
	Sort(opportunities)
}

// Sort orders opportunities by their current scores without recomputing them.
func Sort(opportunities []models.Opportunity) {
	sort.SliceStable(opportunities, func(i, j int) bool {
		a, b := opportunities[i], opportunities[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		switch {
		case a.Deadline == nil && b.Deadline == nil:
			return false
		case a.Deadline == nil:
			return false
		case b.Deadline == nil:
			return true
		default:
			return a.Deadline.Before(*b.Deadline)
		}
	})
}
