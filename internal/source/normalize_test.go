package source

import (
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
)

var refNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestNormalize_DerivesStableID(t *testing.T) {
	a := models.Opportunity{Category: models.CategoryJob, Platform: "devboard", Title: "Role"}
	b := models.Opportunity{Category: models.CategoryJob, Platform: "devboard", Title: "Role"}

	if !normalize(&a, "pos-1", refNow) || !normalize(&b, "pos-1", refNow) {
		t.Fatal("normalize() dropped a listing with no deadline")
	}
	if a.ID == "" || a.ID != b.ID {
		t.Errorf("IDs = %q, %q, want equal and non-empty", a.ID, b.ID)
	}

	c := models.Opportunity{Category: models.CategoryInternship, Platform: "devboard", Title: "Role"}
	normalize(&c, "pos-1", refNow)
	if c.ID == a.ID {
		t.Error("different category produced the same ID")
	}
}

func TestNormalize_DropsExpiredDeadline(t *testing.T) {
	past := refNow.Add(-time.Minute)
	o := models.Opportunity{Category: models.CategoryJob, Platform: "p", Deadline: &past}

	if normalize(&o, "x", refNow) {
		t.Error("normalize() kept a listing whose deadline already passed")
	}
}

func TestNormalize_KeepsFutureDeadline(t *testing.T) {
	future := refNow.Add(time.Minute)
	o := models.Opportunity{Category: models.CategoryJob, Platform: "p", Deadline: &future}

	if !normalize(&o, "x", refNow) {
		t.Error("normalize() dropped a listing with a future deadline")
	}
	if !o.IsOpen {
		t.Error("normalized listing not marked open")
	}
}

func TestNormalize_TruncatesDescription(t *testing.T) {
	o := models.Opportunity{
		Category:    models.CategoryJob,
		Platform:    "p",
		Description: strings.Repeat("x", 900),
	}

	normalize(&o, "x", refNow)

	if len(o.Description) != maxDescriptionLen {
		t.Errorf("description length = %d, want %d", len(o.Description), maxDescriptionLen)
	}
}

func TestNormalize_CategoryFallbackTag(t *testing.T) {
	for _, category := range []models.Category{
		models.CategoryJob, models.CategoryInternship, models.CategoryHackathon,
	} {
		o := models.Opportunity{Category: category, Platform: "p"}
		normalize(&o, "x", refNow)
		want := []string{category.Tag()}
		if !reflect.DeepEqual(o.Tags, want) {
			t.Errorf("category %s tags = %v, want %v", category, o.Tags, want)
		}
	}
}

func TestDedupeTags(t *testing.T) {
	got := dedupeTags([]string{"React", "react", " TypeScript ", "", "REACT", "Go"})
	want := []string{"React", "TypeScript", "Go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupeTags() = %v, want %v", got, want)
	}
}

func TestDedupeTags_InputUntouched(t *testing.T) {
	input := []string{"React", "react", "Go"}
	original := append([]string(nil), input...)

	dedupeTags(input)

	if !reflect.DeepEqual(input, original) {
		t.Errorf("input mutated to %v, want %v left intact", input, original)
	}
}

func TestTruncate_RuneBoundary(t *testing.T) {
	// Each rune is 2 bytes; an odd limit would land mid-rune.
	s := strings.Repeat("é", 20)
	got := truncate(s, 7)

	if !utf8.ValidString(got) {
		t.Errorf("truncate() = %q, not valid UTF-8", got)
	}
	if len(got) > 7 {
		t.Errorf("truncate() kept %d bytes, want at most 7", len(got))
	}
	if got != strings.Repeat("é", 3) {
		t.Errorf("truncate() = %q, want the last whole rune dropped", got)
	}
}

func TestParseDeadline(t *testing.T) {
	if d := parseDeadline(""); d != nil {
		t.Errorf("parseDeadline(\"\") = %v, want nil", d)
	}
	if d := parseDeadline("not a date"); d != nil {
		t.Errorf("parseDeadline(garbage) = %v, want nil", d)
	}
	if d := parseDeadline("2026-04-01"); d == nil || d.Day() != 1 {
		t.Errorf("parseDeadline(date-only) = %v, want April 1", d)
	}
	if d := parseDeadline("2026-04-01T10:00:00Z"); d == nil || d.Hour() != 10 {
		t.Errorf("parseDeadline(RFC3339) = %v, want 10:00", d)
	}
}

func TestParseTime_FallsBackOnGarbage(t *testing.T) {
	if got := parseTime("yesterday-ish", refNow); !got.Equal(refNow) {
		t.Errorf("parseTime(garbage) = %v, want fallback %v", got, refNow)
	}
	if got := parseTime("2026-03-01T08:00:00Z", refNow); got.Equal(refNow) {
		t.Error("parseTime(valid) returned the fallback")
	}
}
