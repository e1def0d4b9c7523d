package engine

// birthday.go infers the format of user-supplied dates and renders them in
// a fixed template. The inference cascade:
//
//  1. ISO-like YYYY-MM-DD (also with slashes) -- unambiguous, always wins.
//  2. A/B/YYYY -- positional inference: a component over 12 must be the
//     day. When both are 12 or less the value is ambiguous and MM/DD wins
//     by policy (US convention). Callers that want DD/MM supply an
//     explicit render format via ReformatBirthdays.
//  3. Textual "Month D, YYYY" or "D Month YYYY", full or three-letter
//     month names, comma optional.
//
// Anything else fails to parse and passes through the cleaners unchanged.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// BirthdayFormat selects the render template for parsed dates.
type BirthdayFormat string

const (
	BirthdayFormatMDY BirthdayFormat = "MM/DD/YYYY"
	BirthdayFormatDMY BirthdayFormat = "DD/MM/YYYY"
	BirthdayFormatYMD BirthdayFormat = "YYYY/MM/DD"
)

// BirthdayParts holds the parsed components of a date, zero-padded.
type BirthdayParts struct {
	Month string `json:"month"`
	Day   string `json:"day"`
	Year  string `json:"year"`
}

// Format renders the components in the given template. Unknown formats
// fall back to MM/DD/YYYY.
func (p BirthdayParts) Format(format BirthdayFormat) string {
	switch format {
	case BirthdayFormatDMY:
		return fmt.Sprintf("%s/%s/%s", p.Day, p.Month, p.Year)
	case BirthdayFormatYMD:
		return fmt.Sprintf("%s/%s/%s", p.Year, p.Month, p.Day)
	default:
		return fmt.Sprintf("%s/%s/%s", p.Month, p.Day, p.Year)
	}
}

var (
	isoDateRegex     = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
	numericDateRegex = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})$`)
	textualMDYRegex  = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})$`)
	textualDMYRegex  = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)\.?,?\s+(\d{4})$`)
)

// monthNames maps lowercase month names and three-letter abbreviations to
// month numbers.
var monthNames = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// ParseBirthday applies the inference cascade to a raw date string.
// Returns nil when no rule matches or the components are out of range.
func ParseBirthday(s string) *BirthdayParts {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if m := isoDateRegex.FindStringSubmatch(s); m != nil {
		return makeParts(atoi(m[2]), atoi(m[3]), m[1])
	}

	if m := numericDateRegex.FindStringSubmatch(s); m != nil {
		a, b := atoi(m[1]), atoi(m[2])
		switch {
		case a > 12 && b <= 12:
			return makeParts(b, a, m[3]) // day first
		case b > 12 && a <= 12:
			return makeParts(a, b, m[3])
		case a <= 12 && b <= 12:
			// Ambiguous: MM/DD by policy.
			return makeParts(a, b, m[3])
		default:
			return nil
		}
	}

	if m := textualMDYRegex.FindStringSubmatch(s); m != nil {
		if month, ok := monthNames[strings.ToLower(m[1])]; ok {
			return makeParts(month, atoi(m[2]), m[3])
		}
		return nil
	}

	if m := textualDMYRegex.FindStringSubmatch(s); m != nil {
		if month, ok := monthNames[strings.ToLower(m[2])]; ok {
			return makeParts(month, atoi(m[1]), m[3])
		}
		return nil
	}

	return nil
}

// makeParts validates component ranges and zero-pads.
func makeParts(month, day int, year string) *BirthdayParts {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	return &BirthdayParts{
		Month: fmt.Sprintf("%02d", month),
		Day:   fmt.Sprintf("%02d", day),
		Year:  year,
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ReformatBirthdays re-renders every row's Birthday value in the chosen
// format, returning a new row sequence. Rows whose Birthday fails to parse
// pass through unchanged -- not cleared, not errored. Returns the count of
// rows actually reformatted.
func ReformatBirthdays(rows []Row, format BirthdayFormat) ([]Row, int) {
	out := make([]Row, len(rows))
	changed := 0
	header := FieldBirthday.Header()
	for i, row := range rows {
		clone := row.Clone()
		if parts := ParseBirthday(clone[header]); parts != nil {
			rendered := parts.Format(format)
			if rendered != clone[header] {
				changed++
			}
			clone[header] = rendered
		}
		out[i] = clone
	}
	return out, changed
}
