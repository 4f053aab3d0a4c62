package filter_test

import (
	"testing"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/filter"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
)

func open(title, location string, tags ...string) models.Opportunity {
	return models.Opportunity{
		Title:    title,
		Location: location,
		Tags:     tags,
		IsOpen:   true,
	}
}

func titles(opportunities []models.Opportunity) []string {
	out := make([]string, len(opportunities))
	for i, o := range opportunities {
		out[i] = o.Title
	}
	return out
}

func TestApply_NoPreferencesKeepsOpenOnly(t *testing.T) {
	closed := open("Closed Role", "Berlin", "Go")
	closed.IsOpen = false

	got := filter.Apply([]models.Opportunity{
		open("Open Role", "Berlin", "Go"),
		closed,
	}, models.PreferenceSet{})

	if len(got) != 1 || got[0].Title != "Open Role" {
		t.Errorf("Apply() = %v, want only the open listing", titles(got))
	}
}

func TestApply_DomainMatchesAnyTagCaseInsensitive(t *testing.T) {
	opportunities := []models.Opportunity{
		open("Frontend", "Berlin", "react", "TypeScript"),
		open("Backend", "Berlin", "Python", "Django"),
		open("Mobile", "Berlin", "Swift"),
	}

	got := filter.Apply(opportunities, models.PreferenceSet{
		Domains: []string{"React", "PYTHON"},
	})

	want := []string{"Frontend", "Backend"}
	if len(got) != len(want) {
		t.Fatalf("Apply() = %v, want %v", titles(got), want)
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestApply_LocationSubstringMatch(t *testing.T) {
	opportunities := []models.Opportunity{
		open("NYC Role", "New York, NY", "Go"),
		open("SF Role", "San Francisco, CA", "Go"),
	}

	got := filter.Apply(opportunities, models.PreferenceSet{
		Locations: []string{"new york"},
	})

	if len(got) != 1 || got[0].Title != "NYC Role" {
		t.Errorf("Apply() = %v, want only the New York listing", titles(got))
	}
}

func TestApply_RemotePreferenceMatchesRemoteFlagged(t *testing.T) {
	tagged := open("Tagged Remote", "Lisbon", "Go", "Remote")
	worded := open("Worded Remote", "Anywhere", "Go")
	worded.Description = "Fully remote team across timezones."
	onsite := open("Onsite", "Munich", "Go")

	got := filter.Apply([]models.Opportunity{tagged, worded, onsite}, models.PreferenceSet{
		Locations: []string{"remote"},
	})

	want := []string{"Tagged Remote", "Worded Remote"}
	if len(got) != len(want) {
		t.Fatalf("Apply() = %v, want %v", titles(got), want)
	}
}

func TestApply_DomainsAndLocationsBothRequired(t *testing.T) {
	opportunities := []models.Opportunity{
		open("Match", "Berlin, Germany", "Go"),
		open("Wrong Place", "Paris", "Go"),
		open("Wrong Stack", "Berlin, Germany", "Java"),
	}

	got := filter.Apply(opportunities, models.PreferenceSet{
		Domains:   []string{"Go"},
		Locations: []string{"Berlin"},
	})

	if len(got) != 1 || got[0].Title != "Match" {
		t.Errorf("Apply() = %v, want only the full match", titles(got))
	}
}

func TestApply_PreservesInputOrder(t *testing.T) {
	opportunities := []models.Opportunity{
		open("A", "Berlin", "Go"),
		open("B", "Berlin", "Go"),
		open("C", "Berlin", "Go"),
	}

	got := filter.Apply(opportunities, models.PreferenceSet{Domains: []string{"Go"}})

	want := []string{"A", "B", "C"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestApply_NoMatchesReturnsEmptyNotNil(t *testing.T) {
	got := filter.Apply([]models.Opportunity{
		open("Role", "Berlin", "Go"),
	}, models.PreferenceSet{Domains: []string{"Haskell"}})

	if got == nil {
		t.Fatal("Apply() returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Apply() = %v, want empty", titles(got))
	}
}
