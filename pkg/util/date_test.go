package util

import (
	"testing"
	"time"
)

func TestParseDateLayout(t *testing.T) {
	got, ok := ParseDate("2024-10-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Year() != 2024 || got.Month() != time.October || got.Day() != 10 {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseDateRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseDate(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseDateDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	got := ParseDateDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
	got = ParseDateDefault("garbage", def)
	if !got.Equal(def) {
		t.Fatalf("expected default on invalid input")
	}
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2024, 10, 10, 15, 4, 5, 0, time.UTC)
	got := TruncateToDay(in)
	want := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestFormatDate(t *testing.T) {
	in := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if FormatDate(in) != "2024-01-02" {
		t.Fatalf("unexpected format %s", FormatDate(in))
	}
}
