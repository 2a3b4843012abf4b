package config

import (
	"reflect"
	"testing"
)

// TestParseCSVEnv проверяет разбор списка email из ENV.
func TestParseCSVEnv(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", " Admin@example.com, ,USER@Example.com ")

	got := parseCSVEnv("ADMIN_EMAILS")
	want := []string{"admin@example.com", "user@example.com"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestParseCSVEnvMissing проверяет поведение при отсутствии переменной.
func TestParseCSVEnvMissing(t *testing.T) {
	got := parseCSVEnv("MISSING_ENV")
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

// TestParseClockEnv проверяет разбор времени дайджеста.
func TestParseClockEnv(t *testing.T) {
	t.Setenv("NOTIFY_DAILY_TIME", "21:30")

	hour, minute, err := parseClockEnv("NOTIFY_DAILY_TIME", 9, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hour != 21 || minute != 30 {
		t.Fatalf("expected 21:30, got %d:%d", hour, minute)
	}
}

// TestParseClockEnvMidnight проверяет, что полночь не считается ошибкой.
func TestParseClockEnvMidnight(t *testing.T) {
	t.Setenv("NOTIFY_DAILY_TIME", "00:00")

	hour, minute, err := parseClockEnv("NOTIFY_DAILY_TIME", 9, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hour != 0 || minute != 0 {
		t.Fatalf("expected 0:00, got %d:%d", hour, minute)
	}
}

// TestParseClockEnvInvalid проверяет ошибку на мусорном значении.
func TestParseClockEnvInvalid(t *testing.T) {
	t.Setenv("NOTIFY_DAILY_TIME", "nine in the morning")

	if _, _, err := parseClockEnv("NOTIFY_DAILY_TIME", 9, 0); err == nil {
		t.Fatal("expected error")
	}
}

// TestParseClockEnvMissing проверяет дефолт при отсутствии переменной.
func TestParseClockEnvMissing(t *testing.T) {
	hour, minute, err := parseClockEnv("MISSING_CLOCK_ENV", 9, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hour != 9 || minute != 15 {
		t.Fatalf("expected 9:15, got %d:%d", hour, minute)
	}
}
