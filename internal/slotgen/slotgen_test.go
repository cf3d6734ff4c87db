package slotgen_test

import (
	"testing"
	"time"

	"clinic-booking-api/internal/slotgen"
)

func TestGenerateMidweekAfternoon(t *testing.T) {
	// Wednesday 12:15 — the current day contributes only the remaining windows
	now := time.Date(2025, 3, 12, 12, 15, 0, 0, time.UTC)
	windows := slotgen.Generate(now)

	// Wed 12:30..16:30 = 9, plus Thu+Fri+Mon+Tue full days (16 each)
	if len(windows) != 9+4*16 {
		t.Fatalf("expected %d windows, got %d", 9+4*16, len(windows))
	}

	first := windows[0]
	want := time.Date(2025, 3, 12, 12, 30, 0, 0, time.UTC)
	if !first.StartAt.Equal(want) {
		t.Errorf("first window starts %v, want %v", first.StartAt, want)
	}
}

func TestGenerateProperties(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 15, 0, 0, time.UTC)
	horizon := now.AddDate(0, 0, slotgen.HorizonDays)

	prev := time.Time{}
	for _, w := range windowsOrFatal(t, now) {
		if !w.StartAt.After(now) {
			t.Errorf("window %v not strictly in the future", w.StartAt)
		}
		if w.StartAt.After(horizon) {
			t.Errorf("window %v beyond the %d-day horizon", w.StartAt, slotgen.HorizonDays)
		}
		if wd := w.StartAt.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("window %v falls on a weekend", w.StartAt)
		}
		if h := w.StartAt.Hour(); h < slotgen.OpenHour || h >= slotgen.CloseHour {
			t.Errorf("window %v outside business hours", w.StartAt)
		}
		if got := w.EndAt.Sub(w.StartAt); got != slotgen.SlotMinutes*time.Minute {
			t.Errorf("window %v has duration %v", w.StartAt, got)
		}
		if !w.StartAt.After(prev) {
			t.Errorf("windows not strictly ascending at %v", w.StartAt)
		}
		prev = w.StartAt
	}
}

func TestGenerateBeforeOpening(t *testing.T) {
	// Monday 08:00 — the full day is still ahead
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	windows := slotgen.Generate(now)

	// Mon..Fri of this week = 5 full days
	if len(windows) != 5*16 {
		t.Fatalf("expected %d windows, got %d", 5*16, len(windows))
	}
	want := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	if !windows[0].StartAt.Equal(want) {
		t.Errorf("first window starts %v, want %v", windows[0].StartAt, want)
	}
}

func TestGenerateOnWeekend(t *testing.T) {
	// Saturday noon — only Mon..Fri of the horizon contribute
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	windows := slotgen.Generate(now)

	if len(windows) != 5*16 {
		t.Fatalf("expected %d windows, got %d", 5*16, len(windows))
	}
	if wd := windows[0].StartAt.Weekday(); wd != time.Monday {
		t.Errorf("first window on %v, want Monday", wd)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 15, 0, 0, time.UTC)
	a := slotgen.Generate(now)
	b := slotgen.Generate(now)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].StartAt.Equal(b[i].StartAt) || !a[i].EndAt.Equal(b[i].EndAt) {
			t.Fatalf("window %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func windowsOrFatal(t *testing.T, now time.Time) []slotgen.Window {
	t.Helper()
	windows := slotgen.Generate(now)
	if len(windows) == 0 {
		t.Fatal("no windows generated")
	}
	return windows
}
