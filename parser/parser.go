// Package parser normalizes raw catalog text into typed field values.
// Every parser fails soft: malformed or missing input yields a null (or
// a zero availability), never an error, because source markup is
// inherently unreliable.
package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// priceCharset matches everything except digits and decimal or
	// grouping separators.
	priceCharset = regexp.MustCompile(`[^\d.,]`)
	// digitRun captures the first run of digits in availability text.
	digitRun = regexp.MustCompile(`\d+`)
)

// starWords is checked in order; the first word present in the class
// token set wins.
var starWords = []struct {
	word  string
	value int
}{
	{"One", 1},
	{"Two", 2},
	{"Three", 3},
	{"Four", 4},
	{"Five", 5},
}

// ParsePrice extracts a decimal price from text such as "£51.77".
// Commas are treated as thousands grouping and dropped. Returns nil on
// empty input or when no parseable number remains.
func ParsePrice(text string) *float64 {
	s := priceCharset.ReplaceAllString(strings.TrimSpace(text), "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// ParseAvailability extracts a stock count from text such as
// "In stock (19 available)". Without an explicit count, an "In stock"
// marker counts as 1. Empty or unrecognized text counts as 0.
func ParseAvailability(text string) int {
	if text == "" {
		return 0
	}
	if m := digitRun.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	if strings.Contains(text, "In stock") {
		return 1
	}
	return 0
}

// ParseStarRating maps a class attribute such as "star-rating Three" to
// a 1..5 rating. Returns nil when no rating word is present.
func ParseStarRating(classAttr string) *int {
	if classAttr == "" {
		return nil
	}
	tokens := strings.Fields(classAttr)
	for _, sw := range starWords {
		for _, tok := range tokens {
			if tok == sw.word {
				v := sw.value
				return &v
			}
		}
	}
	return nil
}
