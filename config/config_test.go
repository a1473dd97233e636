package config

import (
	"reflect"
	"testing"
)

func TestGetStringDefaults(t *testing.T) {
	t.Parallel()

	c := map[string]string{"PORT": "9090", "EMPTY": ""}

	if got := GetString(c, "PORT", "8080"); got != "9090" {
		t.Fatalf("expected configured value, got %q", got)
	}
	if got := GetString(c, "MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for missing key, got %q", got)
	}
	if got := GetString(c, "EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for empty value, got %q", got)
	}
	if got := GetString(nil, "ANY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for nil config, got %q", got)
	}
}

func TestGetInt(t *testing.T) {
	t.Parallel()

	c := map[string]string{"TIMEOUT": "30", "BROKEN": "not-a-number"}

	if got := GetInt(c, "TIMEOUT", 180); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
	if got := GetInt(c, "MISSING", 180); got != 180 {
		t.Fatalf("expected default for missing key, got %d", got)
	}
	if got := GetInt(c, "BROKEN", 180); got != 180 {
		t.Fatalf("expected default for unparsable value, got %d", got)
	}
}

func TestGetStrings(t *testing.T) {
	t.Parallel()

	c := map[string]string{
		"ORIGINS": "http://localhost:3000, https://example.com ,",
	}

	got := GetStrings(c, "ORIGINS", []string{"*"})
	want := []string{"http://localhost:3000", "https://example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if got := GetStrings(c, "MISSING", []string{"*"}); !reflect.DeepEqual(got, []string{"*"}) {
		t.Fatalf("expected default for missing key, got %v", got)
	}
}
