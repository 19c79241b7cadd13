package types

import (
	"strings"
	"testing"
)

func TestSeverityOrdering(t *testing.T) {
	order := []Severity{SeverityGreen, SeverityYellow, SeverityRed, SeverityCritical}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("%s should rank above %s", order[i], order[i-1])
		}
	}
	if Severity("MAROON").Rank() != -1 {
		t.Error("unknown severity should rank -1")
	}
}

func TestParseSeverity(t *testing.T) {
	if s, err := ParseSeverity("CRITICAL"); err != nil || s != SeverityCritical {
		t.Errorf("expected CRITICAL, got %s, %v", s, err)
	}
	if _, err := ParseSeverity("critical"); err == nil {
		t.Error("severity vocabulary is case-sensitive")
	}
	if _, err := ParseSeverity("MAROON"); err == nil || !strings.Contains(err.Error(), `"MAROON"`) {
		t.Errorf("expected quoted offending value, got %v", err)
	}
}

func TestParseRiskCategory(t *testing.T) {
	for _, c := range AllCategories {
		if got, err := ParseRiskCategory(string(c)); err != nil || got != c {
			t.Errorf("canonical category %s should parse, got %v", c, err)
		}
	}
	_, err := ParseRiskCategory("sentiment")
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	for _, c := range AllCategories {
		if !strings.Contains(err.Error(), string(c)) {
			t.Errorf("error should list %s, got %v", c, err)
		}
	}
}

func TestCountSeverities(t *testing.T) {
	flags := []RedFlag{
		{Severity: SeverityCritical},
		{Severity: SeverityRed},
		{Severity: SeverityRed},
		{Severity: SeverityYellow},
		{Severity: SeverityGreen}, // greens carry no penalty and are not tallied
	}
	counts := CountSeverities(flags)
	if counts != (SeverityCounts{Critical: 1, Red: 2, Yellow: 1}) {
		t.Errorf("unexpected counts: %+v", counts)
	}
}
