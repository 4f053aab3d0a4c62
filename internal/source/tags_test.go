package source_test

import (
	"reflect"
	"testing"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/source"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        []string
	}{
		{
			name:  "single keyword",
			title: "Senior React Developer",
			want:  []string{"React"},
		},
		{
			name:        "keywords from both fields",
			title:       "Backend Engineer",
			description: "Python and Django services on AWS.",
			want:        []string{"Python", "Django", "Backend", "AWS"},
		},
		{
			name:  "synonyms collapse to one tag",
			title: "Remote work from home position",
			want:  []string{"Remote"},
		},
		{
			name:  "case insensitive",
			title: "TYPESCRIPT and KUBERNETES",
			want:  []string{"TypeScript", "Kubernetes"},
		},
		{
			name:  "intern keyword",
			title: "Software Engineering Intern",
			want:  []string{"Internship"},
		},
		{
			name:  "no keywords",
			title: "Office Manager",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := source.ExtractTags(tt.title, tt.description)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTags(%q, %q) = %v, want %v", tt.title, tt.description, got, tt.want)
			}
		})
	}
}

func TestExtractTags_Deterministic(t *testing.T) {
	title := "Full Stack Developer, remote, React + Python on Kubernetes"
	first := source.ExtractTags(title, "")
	for i := 0; i < 10; i++ {
		if got := source.ExtractTags(title, ""); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: ExtractTags() = %v, want stable %v", i, got, first)
		}
	}
}
