package engine

// export.go prepares cell values for serialization. Sanitization defuses
// spreadsheet formula injection; phone grouping is display-only and never
// persisted back into the working row model.

import "strings"

// formulaPrefixes are the characters spreadsheet applications interpret as
// the start of a formula or control sequence.
var formulaPrefixes = []string{"=", "+", "-", "@", "\t", "\r"}

// SanitizeForExport prefixes formula-triggering values with an apostrophe
// so spreadsheet applications render them as text. Applied to every cell
// immediately before serialization, after all other cleaning.
func SanitizeForExport(value string) string {
	for _, p := range formulaPrefixes {
		if strings.HasPrefix(value, p) {
			return "'" + value
		}
	}
	return value
}

// FormatPhoneNumber renders a digit-only phone value in a grouped display
// format for export. This is distinct from CleanPhone, which strips
// non-digits for storage: the two compose as clean -> store digits ->
// format at export. Values that do not fit a known grouping pass through
// unchanged.
func FormatPhoneNumber(digits string) string {
	switch {
	case len(digits) == 10:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	case len(digits) == 11 && digits[0] == '1':
		return "1-" + digits[1:4] + "-" + digits[4:7] + "-" + digits[7:]
	default:
		return digits
	}
}
