package engine

// names.go splits combined name columns into First Name / Last Name.
// The splitter is a heuristic, not a parser with guarantees: it tokenizes
// on whitespace only, so "Smith, John" stays in written order with the
// comma attached. That limitation is documented policy, pinned by tests.

import "strings"

// namePrefixes are leading title tokens stripped before splitting,
// compared case-insensitively with or without a trailing period.
var namePrefixes = []string{
	"mr", "mrs", "ms", "dr", "prof", "rev", "hon", "sir", "dame", "lady", "lord",
}

// nameSuffixes are trailing generational or credential tokens stripped
// before splitting.
var nameSuffixes = []string{
	"jr", "sr", "i", "ii", "iii", "iv", "v",
	"phd", "md", "dds", "esq", "cpa", "rn", "mba",
}

// SplitName is the result of splitting one combined name value.
type SplitName struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	RemovedPrefix string `json:"removedPrefix,omitempty"`
	RemovedSuffix string `json:"removedSuffix,omitempty"`
}

// matchToken compares a token against a list entry, ignoring case and a
// trailing period on the token.
func matchToken(token string, list []string) bool {
	t := strings.ToLower(strings.TrimSuffix(token, "."))
	for _, entry := range list {
		if t == entry {
			return true
		}
	}
	return false
}

// SplitFullName splits a combined name into first and last name after
// stripping a recognized leading title and trailing suffix. Assignment by
// remaining token count:
//
//	1 token       first only
//	2 tokens      first, last
//	3 tokens      a single-letter middle initial is dropped; otherwise
//	              the middle joins the first name ("John Michael" "Smith")
//	4 or more     first two join as first, the rest join as last
func SplitFullName(s string) SplitName {
	tokens := strings.Fields(s)
	result := SplitName{}

	if len(tokens) > 0 && matchToken(tokens[0], namePrefixes) {
		result.RemovedPrefix = tokens[0]
		tokens = tokens[1:]
	}
	if len(tokens) > 0 && matchToken(tokens[len(tokens)-1], nameSuffixes) {
		result.RemovedSuffix = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
	}

	switch len(tokens) {
	case 0:
	case 1:
		result.FirstName = tokens[0]
	case 2:
		result.FirstName = tokens[0]
		result.LastName = tokens[1]
	case 3:
		if isMiddleInitial(tokens[1]) {
			result.FirstName = tokens[0]
			result.LastName = tokens[2]
		} else {
			result.FirstName = strings.Join(tokens[:2], " ")
			result.LastName = tokens[2]
		}
	default:
		result.FirstName = strings.Join(tokens[:2], " ")
		result.LastName = strings.Join(tokens[2:], " ")
	}

	return result
}

// isMiddleInitial reports whether a token is a single letter, bare or with
// a trailing period.
func isMiddleInitial(token string) bool {
	t := strings.TrimSuffix(token, ".")
	if len(t) != 1 {
		return false
	}
	c := t[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// SplitNameColumn applies SplitFullName to a combined-name column across a
// raw row sequence, writing First Name and Last Name columns and leaving
// the source column in place for the mapping stage to drop. Returns a new
// row sequence.
func SplitNameColumn(rows []Row, sourceHeader string) []Row {
	out := make([]Row, len(rows))
	firstHeader := FieldFirstName.Header()
	lastHeader := FieldLastName.Header()
	for i, row := range rows {
		clone := row.Clone()
		split := SplitFullName(clone[sourceHeader])
		clone[firstHeader] = split.FirstName
		clone[lastHeader] = split.LastName
		out[i] = clone
	}
	return out
}
