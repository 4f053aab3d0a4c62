// Package filter narrows opportunity sets to a consumer's declared interests.
package filter

import (
	"strings"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
)

// Apply returns the opportunities matching the preference set. An opportunity
// passes when it is still open, at least one tag matches a preferred domain
// (or no domains are set), and its location matches a preferred location
// (or no locations are set). A "remote" location preference matches any
// remote-flagged opportunity regardless of its location text.
func Apply(opportunities []models.Opportunity, prefs models.PreferenceSet) []models.Opportunity {
	out := make([]models.Opportunity, 0, len(opportunities))
	for _, o := range opportunities {
		if !o.IsOpen {
			continue
		}
		if !matchesDomains(o, prefs.Domains) {
			continue
		}
		if !matchesLocations(o, prefs.Locations) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesDomains(o models.Opportunity, domains []string) bool {
	if len(domains) == 0 {
		return true
	}
	for _, domain := range domains {
		for _, tag := range o.Tags {
			if strings.EqualFold(tag, domain) {
				return true
			}
		}
	}
	return false
}

func matchesLocations(o models.Opportunity, locations []string) bool {
	if len(locations) == 0 {
		return true
	}
	loc := strings.ToLower(o.Location)
	for _, preferred := range locations {
		token := strings.ToLower(strings.TrimSpace(preferred))
		if token == "" {
			continue
		}
		if strings.Contains(loc, token) {
			return true
		}
		if token == "remote" && o.IsRemote() {
			return true
		}
	}
	return false
}
