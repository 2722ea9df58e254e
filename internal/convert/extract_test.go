package convert

import (
	"errors"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	raw := "Uncertain conversion rate: 0.85\nConverted Amount: 85.00"
	rate, converted, err := StdoutParser{}.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if rate != 0.85 {
		t.Errorf("rate: got %v, want 0.85", rate)
	}
	if converted != 85.0 {
		t.Errorf("converted: got %v, want 85.0", converted)
	}
}

func TestParseDiscardsSentinelNoise(t *testing.T) {
	raw := "Uncertain conversion rate: 0.85\nConverted Amount: 85.00\nUx3f diagnostic garbage 12.5"
	rate, converted, err := StdoutParser{}.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if rate != 0.85 || converted != 85.0 {
		t.Errorf("got rate=%v converted=%v", rate, converted)
	}
}

func TestParsePatternsAfterSentinelFail(t *testing.T) {
	raw := "Ux\nUncertain conversion rate: 0.85\nConverted Amount: 85.00"
	_, _, err := StdoutParser{}.Parse(raw)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestParseFailures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"rate only", "Uncertain conversion rate: 0.85"},
		{"amount only", "Converted Amount: 85.00"},
		{"unrelated text", "hello world"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := StdoutParser{}.Parse(tc.raw)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
		})
	}
}

func TestParseSurroundingNoise(t *testing.T) {
	raw := "compiling...\nUncertain conversion rate: 1.204500\nConverted Amount: 120.450000\ndone\n"
	rate, converted, err := StdoutParser{}.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if rate != 1.2045 {
		t.Errorf("rate: got %v, want 1.2045", rate)
	}
	if converted != 120.45 {
		t.Errorf("converted: got %v, want 120.45", converted)
	}
}
