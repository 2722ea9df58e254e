package convert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// OutputParser turns raw remote stdout text into structured numbers.
// Isolated behind an interface so the output format can change (e.g. to
// structured JSON) without touching submission or polling.
type OutputParser interface {
	Parse(raw string) (rate, converted float64, err error)
}

// ParseError reports output that was fetched but did not contain both
// required numeric fields. Partial extraction is never returned.
type ParseError struct {
	Missing string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("task output missing %s", e.Missing)
}

// sentinel marks the start of diagnostic noise the execution environment
// appends to stdout; everything from it onward is discarded before matching.
const sentinel = "Ux"

var (
	ratePattern      = regexp.MustCompile(`Uncertain conversion rate:\s*([-+]?[0-9]*\.?[0-9]+)`)
	convertedPattern = regexp.MustCompile(`Converted Amount:\s*([-+]?[0-9]*\.?[0-9]+)`)
)

// StdoutParser is the regex-based parser for the C program's plain-text
// output format.
type StdoutParser struct{}

// Parse extracts the conversion rate and the converted amount, in that
// priority. Either pattern failing to match is fatal.
func (StdoutParser) Parse(raw string) (float64, float64, error) {
	if i := strings.Index(raw, sentinel); i >= 0 {
		raw = raw[:i]
	}

	rate, err := extractFloat(ratePattern, raw, "uncertain conversion rate")
	if err != nil {
		return 0, 0, err
	}
	converted, err := extractFloat(convertedPattern, raw, "converted amount")
	if err != nil {
		return 0, 0, err
	}
	return rate, converted, nil
}

func extractFloat(re *regexp.Regexp, text, name string) (float64, error) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, &ParseError{Missing: name}
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &ParseError{Missing: name}
	}
	return v, nil
}
