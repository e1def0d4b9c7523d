package engine

// cleaners.go provides the per-field value cleaners.
//
// Every cleaner takes a raw string and returns a normalized string. They
// never fail: values that cannot be normalized pass through trimmed and
// get flagged by the validators instead. All cleaners are idempotent,
// clean(clean(x)) == clean(x), which the tests pin.

import (
	"regexp"
	"strings"
)

// emptyMarkers are values that mean "no data" regardless of field.
var emptyMarkers = map[string]bool{
	"":          true,
	"n/a":       true,
	"null":      true,
	"undefined": true,
}

var nonDigitRegex = regexp.MustCompile(`\D`)

// NormalizeEmpty coerces placeholder values ("n/a", "null", "undefined",
// case-insensitive, after trimming) to the empty string. It runs before
// any field-specific cleaner and short-circuits it.
func NormalizeEmpty(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if emptyMarkers[strings.ToLower(trimmed)] {
		return "", true
	}
	return trimmed, false
}

// CleanEmail lowercases and strips all whitespace, internal included.
func CleanEmail(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// CleanPhone strips every non-digit character. The result is a bare digit
// string of arbitrary length; display grouping happens at export time only
// (see FormatPhoneNumber).
func CleanPhone(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}

// CleanName converts a name to proper case: each space-delimited token is
// lowercased then has its first rune uppercased. Apostrophes, hyphens, and
// surname prefixes are not special-cased (McDonald becomes Mcdonald) --
// that is the documented contract, pinned by tests.
func CleanName(s string) string {
	parts := strings.Split(strings.TrimSpace(s), " ")
	for i, p := range parts {
		if p == "" {
			continue
		}
		runes := []rune(strings.ToLower(p))
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

// ValidStatuses is the closed set of canonical Status values.
var ValidStatuses = []string{"Lead", "Customer", "VIP"}

// CleanStatus canonicalizes the casing of a recognized status. Unrecognized
// values are returned trimmed and unchanged so the validators can flag them
// instead of silently coercing.
func CleanStatus(s string) string {
	trimmed := strings.TrimSpace(s)
	for _, status := range ValidStatuses {
		if strings.EqualFold(trimmed, status) {
			return status
		}
	}
	return trimmed
}

var tagSplitRegex = regexp.MustCompile(`[,;|]`)

// CleanTags splits on commas, semicolons, or pipes, trims each piece,
// drops empties, and rejoins with a pipe.
func CleanTags(s string) string {
	pieces := tagSplitRegex.Split(s, -1)
	kept := pieces[:0]
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "|")
}

// CleanBirthday parses a date using the format-inference rules in
// birthday.go and renders it as MM/DD/YYYY. Unparseable input passes
// through trimmed, unchanged.
func CleanBirthday(s string) string {
	trimmed := strings.TrimSpace(s)
	parts := ParseBirthday(trimmed)
	if parts == nil {
		return trimmed
	}
	return parts.Format(BirthdayFormatMDY)
}

// CleanValue dispatches a raw value to the cleaner for its target field.
// The empty-value normalization runs first and short-circuits the
// field-specific cleaner. Custom fields use the identity transform (the
// trimmed value from the empty check).
func CleanValue(target TargetField, raw string) string {
	trimmed, empty := NormalizeEmpty(raw)
	if empty {
		return ""
	}
	if target.IsCustom() {
		return trimmed
	}
	switch target.Standard {
	case FieldEmail:
		return CleanEmail(trimmed)
	case FieldFirstName, FieldLastName:
		return CleanName(trimmed)
	case FieldPhone:
		return CleanPhone(trimmed)
	case FieldStatus:
		return CleanStatus(trimmed)
	case FieldTags:
		return CleanTags(trimmed)
	case FieldTimeZone:
		return CleanTimeZone(trimmed)
	case FieldBirthday:
		return CleanBirthday(trimmed)
	case FieldAddress, FieldNotes:
		return trimmed
	default:
		return trimmed
	}
}
