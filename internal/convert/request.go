package convert

import (
	"fmt"
	"strings"
)

// Request is one validated conversion: amount of Source currency converted
// to Target at an uncertain rate drawn from [RateMin, RateMax].
// Constructed once per invocation, never mutated after Validate.
type Request struct {
	Source  string
	Target  string
	Amount  float64
	RateMin float64
	RateMax float64
}

// Result is the structured output extracted from the remote task.
type Result struct {
	TaskID    string
	Rate      float64
	Converted float64
}

// ValidationError reports malformed or contradictory user input.
// Callers should map this to exit code 2.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Normalize uppercases the currency codes so "usd" and "USD" compare equal.
func (r *Request) Normalize() {
	r.Source = strings.ToUpper(strings.TrimSpace(r.Source))
	r.Target = strings.ToUpper(strings.TrimSpace(r.Target))
}

// Validate enforces the request invariants before any remote call:
// well-formed distinct currency codes, 0 < rate-min < rate-max, amount > 0.
func (r *Request) Validate() error {
	if err := checkCode("source currency", r.Source); err != nil {
		return err
	}
	if err := checkCode("target currency", r.Target); err != nil {
		return err
	}
	if r.Source == r.Target {
		return &ValidationError{Field: "target currency", Reason: "must differ from source currency"}
	}
	if r.RateMin <= 0 {
		return &ValidationError{Field: "rate-min", Reason: "must be greater than zero"}
	}
	if r.RateMax <= r.RateMin {
		return &ValidationError{Field: "rate-max", Reason: "must be greater than rate-min"}
	}
	if r.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be positive and greater than zero"}
	}
	return nil
}

func checkCode(field, code string) error {
	if len(code) != 3 {
		return &ValidationError{Field: field, Reason: "must be a 3-letter code"}
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return &ValidationError{Field: field, Reason: "must contain only letters"}
		}
	}
	return nil
}
