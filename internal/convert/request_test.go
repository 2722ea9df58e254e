package convert

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		target  string
		rateMin float64
		rateMax float64
		amount  float64
		wantOK  bool
	}{
		{"valid", "USD", "EUR", 1, 2, 100, true},
		{"same currency", "USD", "USD", 1, 2, 100, false},
		{"inverted rates", "USD", "EUR", 2, 1, 100, false},
		{"negative amount", "USD", "EUR", 1, 2, -100, false},
		{"zero amount", "USD", "EUR", 1, 2, 0, false},
		{"zero rate-min", "USD", "EUR", 0, 2, 100, false},
		{"negative rate-max", "USD", "EUR", 1, -2, 100, false},
		{"equal rates", "USD", "EUR", 1.5, 1.5, 100, false},
		{"short code", "US", "EUR", 1, 2, 100, false},
		{"non-letter code", "U5D", "EUR", 1, 2, 100, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := Request{
				Source: tc.source, Target: tc.target,
				RateMin: tc.rateMin, RateMax: tc.rateMax, Amount: tc.amount,
			}
			err := req.Validate()
			if tc.wantOK && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.wantOK {
				if err == nil {
					t.Fatal("expected validation error")
				}
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	req := Request{Source: " usd ", Target: "eur"}
	req.Normalize()
	if req.Source != "USD" || req.Target != "EUR" {
		t.Errorf("got %q/%q, want USD/EUR", req.Source, req.Target)
	}
}

func TestArgs(t *testing.T) {
	req := Request{RateMin: 0.8, RateMax: 0.9, Amount: 100}
	if got := req.Args(); got != "0.8 0.9 100" {
		t.Errorf("args: got %q, want %q", got, "0.8 0.9 100")
	}
}
