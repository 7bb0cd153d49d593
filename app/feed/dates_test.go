package feed

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateRFC1123Z(t *testing.T) {
	result, err := ParseDate("Mon, 02 Jan 2023 10:00:00 +0000", "")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expected := time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)
	if !result.Equal(expected) {
		t.Errorf("Expected %v, got: %v", expected, result)
	}
}

func TestParseDateRFC3339(t *testing.T) {
	result, err := ParseDate("2023-07-03T12:30:00Z", "")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expected := time.Date(2023, 7, 3, 12, 30, 0, 0, time.UTC)
	if !result.Equal(expected) {
		t.Errorf("Expected %v, got: %v", expected, result)
	}
}

func TestParseDatePDT(t *testing.T) {
	result, err := ParseDate("Mon, 02 Jan 2023 10:00:00 PDT", "")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// PDT is UTC-7
	expected := time.Date(2023, 1, 2, 17, 0, 0, 0, time.UTC)
	if !result.Equal(expected) {
		t.Errorf("Expected %v, got: %v", expected, result)
	}
}

func TestParseDatePST(t *testing.T) {
	result, err := ParseDate("Mon, 02 Jan 2023 10:00:00 PST", "")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// PST is UTC-8
	expected := time.Date(2023, 1, 2, 18, 0, 0, 0, time.UTC)
	if !result.Equal(expected) {
		t.Errorf("Expected %v, got: %v", expected, result)
	}
}

func TestParseDatePrefersPublished(t *testing.T) {
	result, err := ParseDate("2023-07-03T12:00:00Z", "2023-07-04T12:00:00Z")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.Day() != 3 {
		t.Errorf("Expected published date to win, got: %v", result)
	}
}

func TestParseDateFallsBackToUpdated(t *testing.T) {
	result, err := ParseDate("", "2023-07-04T12:00:00Z")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.Day() != 4 {
		t.Errorf("Expected updated date, got: %v", result)
	}
}

func TestParseDateEmpty(t *testing.T) {
	_, err := ParseDate("", "")
	if err == nil {
		t.Fatal("Expected error for empty date")
	}
	if !errors.Is(err, ErrEmptyDate) {
		t.Errorf("Expected ErrEmptyDate, got: %v", err)
	}
}

func TestParseDateUnparseable(t *testing.T) {
	_, err := ParseDate("not a date at all", "")
	if err == nil {
		t.Fatal("Expected error for unparseable date")
	}
}
