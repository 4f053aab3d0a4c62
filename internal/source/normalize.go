package source

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
)

// maxDescriptionLen bounds cached payload size; descriptions are cut at
// ingestion, never later.
const maxDescriptionLen = 500

// normalize applies the canonical-schema guarantees every adapter must honor
// before returning an opportunity: a derived stable ID, a bounded
// description, a deduplicated non-empty tag set, and a fresh open flag.
// It reports false when the listing's deadline has already passed and the
// entry must be dropped.
func normalize(o *models.Opportunity, nativeID string, now time.Time) bool {
	if o.Deadline != nil && !o.Deadline.After(now) {
		return false
	}

	o.ID = models.OpportunityID(o.Platform, nativeID, o.Category)
	o.Description = truncate(o.Description, maxDescriptionLen)
	o.Tags = dedupeTags(o.Tags)
	if len(o.Tags) == 0 {
		o.Tags = []string{o.Category.Tag()}
	}
	o.IsOpen = true
	return true
}

// truncate cuts s to at most limit bytes without splitting a multi-byte rune.
func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// dedupeTags removes duplicate tags case-insensitively while preserving the
// case and order of the first occurrence. The input is left untouched; callers
// may pass slices that alias shared data.
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}
