package normalize

import (
	"testing"

	"c3track/internal"
)

func TestParseDateTimeYearFirst(t *testing.T) {
	got, ok := ParseDateTime("2026/01/14 2:50 CST")
	if !ok {
		t.Fatal("expected match")
	}
	want := internal.DateTimeValue{Date: "2026-01-14", Time: "02:50:00"}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestParseDateTimeDayFirst(t *testing.T) {
	got, ok := ParseDateTime("16/01/2026 14:30 MST")
	if !ok {
		t.Fatal("expected match")
	}
	want := internal.DateTimeValue{Date: "2026-01-16", Time: "14:30:00"}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestParseDateTimeSeconds(t *testing.T) {
	got, ok := ParseDateTime("2026/01/14 02:50:17")
	if !ok {
		t.Fatal("expected match")
	}
	if got.Time != "02:50:17" {
		t.Fatalf("got %q", got.Time)
	}
}

func TestParseDateTimeNoMatch(t *testing.T) {
	for _, in := range []string{"", "tomorrow at noon", "2026-01-14 02:50"} {
		if _, ok := ParseDateTime(in); ok {
			t.Fatalf("%q: expected no match", in)
		}
	}
}
