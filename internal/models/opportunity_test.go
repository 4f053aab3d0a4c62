package models_test

import (
	"testing"
	"time"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
)

func TestOpportunityID(t *testing.T) {
	a := models.OpportunityID("devboard", "pos-1", models.CategoryJob)
	b := models.OpportunityID("devboard", "pos-1", models.CategoryJob)
	if a != b {
		t.Errorf("same inputs gave different IDs: %q vs %q", a, b)
	}

	if models.OpportunityID("Devboard", "pos-1", models.CategoryJob) != a {
		t.Error("platform casing changed the ID")
	}
	if models.OpportunityID("devboard", "pos-2", models.CategoryJob) == a {
		t.Error("different native ID gave the same ID")
	}
	if models.OpportunityID("devboard", "pos-1", models.CategoryInternship) == a {
		t.Error("different category gave the same ID")
	}
	if models.OpportunityID("otherboard", "pos-1", models.CategoryJob) == a {
		t.Error("different platform gave the same ID")
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		name string
		o    models.Opportunity
		want bool
	}{
		{
			name: "remote tag",
			o:    models.Opportunity{Location: "Lisbon", Tags: []string{"Go", "Remote"}},
			want: true,
		},
		{
			name: "remote location text",
			o:    models.Opportunity{Location: "Remote (EU)"},
			want: true,
		},
		{
			name: "work from home in description",
			o:    models.Opportunity{Location: "Berlin", Description: "Flexible work from home policy."},
			want: true,
		},
		{
			name: "onsite",
			o:    models.Opportunity{Location: "Munich", Tags: []string{"Go"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.o.IsRemote(); got != tt.want {
				t.Errorf("IsRemote() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshotBinaryRoundTrip(t *testing.T) {
	deadline := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	snapshot := models.Snapshot{
		Jobs: []models.Opportunity{{
			ID:       models.OpportunityID("devboard", "pos-1", models.CategoryJob),
			Category: models.CategoryJob,
			Title:    "Go Developer",
			Tags:     []string{"Go"},
			PostedAt: time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC),
			Deadline: &deadline,
			IsOpen:   true,
		}},
		GeneratedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Counts:      models.Counts{Jobs: 1},
	}

	data, err := snapshot.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	var decoded models.Snapshot
	if err := decoded.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if len(decoded.Jobs) != 1 || decoded.Jobs[0].ID != snapshot.Jobs[0].ID {
		t.Errorf("decoded = %+v, want the original job back", decoded.Jobs)
	}
	if decoded.Jobs[0].Deadline == nil || !decoded.Jobs[0].Deadline.Equal(deadline) {
		t.Errorf("deadline = %v, want %v", decoded.Jobs[0].Deadline, deadline)
	}
	if decoded.Counts.Jobs != 1 {
		t.Errorf("Counts.Jobs = %d, want 1", decoded.Counts.Jobs)
	}
}

func TestPreferenceSetIsEmpty(t *testing.T) {
	if !(models.PreferenceSet{}).IsEmpty() {
		t.Error("zero-value set not empty")
	}
	if (models.PreferenceSet{Domains: []string{"Go"}}).IsEmpty() {
		t.Error("set with domains reported empty")
	}
	if (models.PreferenceSet{Locations: []string{"Berlin"}}).IsEmpty() {
		t.Error("set with locations reported empty")
	}
}
