// Package parse converts the free-text tokens found on fight-statistics
// pages into typed values. The count-style parsers (Fraction, DurationSeconds,
// Percentage) never fail; malformed input yields zero. The biographical
// parsers (HeightInches, WeightPounds, ReachInches, ReformatDate) return an
// error wrapping ErrParse so callers can fall back to an unknown value
// without losing the record.
package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrParse marks a field value that did not match its expected format.
var ErrParse = errors.New("malformed value")

// OutputDateLayout is the normalized date format used across all records.
const OutputDateLayout = "02/01/2006"

var heightPattern = regexp.MustCompile(`^(\d+)'\s*(\d+)"$`)

// Fraction splits an "X of Y" pair into landed and attempted counts.
// Anything that is not two integers around the literal " of " separator
// yields (0, 0).
func Fraction(s string) (landed, attempted int) {
	parts := strings.Split(s, " of ")
	if len(parts) != 2 {
		return 0, 0
	}
	landed, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0
	}
	attempted, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0
	}
	return landed, attempted
}

// DurationSeconds converts an "MM:SS" time string to total seconds.
// Input without a colon, or with non-numeric parts, yields 0.
func DurationSeconds(s string) int {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	return minutes*60 + seconds
}

// Percentage strips a trailing percent sign and parses the remainder as a
// float. The site's "---" placeholder and any other malformed input yield 0.
func Percentage(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "---" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// HeightInches converts a feet-and-inches string such as `5' 11"` to total
// inches.
func HeightInches(s string) (int, error) {
	m := heightPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("height %q: %w", s, ErrParse)
	}
	feet, _ := strconv.Atoi(m[1])
	inches, _ := strconv.Atoi(m[2])
	return feet*12 + inches, nil
}

// WeightPounds extracts the integer pound count from a string such as
// "185 lbs.".
func WeightPounds(s string) (int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("weight %q: %w", s, ErrParse)
	}
	pounds, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("weight %q: %w", s, ErrParse)
	}
	return pounds, nil
}

// ReachInches extracts the integer inch count from a string such as `72"`.
func ReachInches(s string) (int, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), `"`)
	inches, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("reach %q: %w", s, ErrParse)
	}
	return inches, nil
}

// ReformatDate parses a date string in the given source layout and renders it
// as DD/MM/YYYY.
func ReformatDate(s, sourceLayout string) (string, error) {
	t, err := time.Parse(sourceLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("date %q: %w", s, ErrParse)
	}
	return t.Format(OutputDateLayout), nil
}
