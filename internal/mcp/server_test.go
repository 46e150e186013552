package mcp

import (
	"context"
	"testing"
)

// TestUserIDFromContextDefault verifies the default user ID (1) when no value
// is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// TestParseFlexTime verifies both accepted date formats and rejection.
func TestParseFlexTime(t *testing.T) {
	got, err := parseFlexTime("2026-06-15T10:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 10 || got.Minute() != 30 {
		t.Errorf("time = %v, want 10:30", got)
	}

	got, err = parseFlexTime("2026-06-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2026 || got.Month() != 6 || got.Day() != 15 {
		t.Errorf("date = %v, want 2026-06-15", got)
	}

	if _, err = parseFlexTime("not-a-date"); err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestParseEquipmentList verifies comma splitting, trimming, and validation.
func TestParseEquipmentList(t *testing.T) {
	got, err := parseEquipmentList("barbell, dumbbell,cable")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d items, want 3", len(got))
	}

	if _, err = parseEquipmentList("barbell,hoverboard"); err == nil {
		t.Error("expected error for unknown equipment")
	}
}

// TestParseMuscleList verifies validation against the muscle taxonomy.
func TestParseMuscleList(t *testing.T) {
	got, err := parseMuscleList("biceps,triceps")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d muscles, want 2", len(got))
	}

	if _, err = parseMuscleList("wings"); err == nil {
		t.Error("expected error for unknown muscle")
	}
}
