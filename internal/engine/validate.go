package engine

// validate.go produces the per-row data-quality diagnostics that drive the
// interactive resolvers. Validation is always a full recomputation over
// the current row set -- one edit can resolve or introduce issues anywhere,
// so diagnostics are never incrementally patched.

import (
	"regexp"
	"strings"
)

// MaxNameLength is the CRM's limit for first and last names.
const MaxNameLength = 26

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether the value looks like an email address.
func ValidateEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidateStatus reports whether the value is one of the canonical
// statuses, compared case-insensitively.
func ValidateStatus(s string) bool {
	for _, status := range ValidStatuses {
		if strings.EqualFold(strings.TrimSpace(s), status) {
			return true
		}
	}
	return false
}

// ValidateRows checks every row and returns one diagnostic per row with at
// least one issue. Rows with no issues are omitted entirely.
func ValidateRows(rows []Row) []RowValidation {
	var results []RowValidation

	for i, row := range rows {
		v := RowValidation{RowIndex: i}
		issue := false

		firstName := strings.TrimSpace(row[FieldFirstName.Header()])
		lastName := strings.TrimSpace(row[FieldLastName.Header()])
		email := strings.TrimSpace(row[FieldEmail.Header()])
		phone := strings.TrimSpace(row[FieldPhone.Header()])
		status := strings.TrimSpace(row[FieldStatus.Header()])
		timeZone := strings.TrimSpace(row[FieldTimeZone.Header()])

		if firstName == "" {
			v.FirstNameRequired = true
			v.MissingFields = append(v.MissingFields, FieldFirstName.Header())
			issue = true
		} else if len(firstName) > MaxNameLength {
			v.FirstNameTooLong = true
			issue = true
		}

		if len(lastName) > MaxNameLength {
			v.LastNameTooLong = true
			issue = true
		}

		if email == "" {
			v.MissingFields = append(v.MissingFields, FieldEmail.Header())
			issue = true
		} else if !ValidateEmail(email) {
			v.InvalidEmail = true
			issue = true
		}

		if phone == "" {
			v.MissingFields = append(v.MissingFields, FieldPhone.Header())
			issue = true
		}

		if lastName == "" {
			v.MissingFields = append(v.MissingFields, FieldLastName.Header())
			issue = true
		}

		if status != "" && !ValidateStatus(status) {
			v.InvalidStatus = true
			issue = true
		}

		if timeZone == "" {
			v.MissingTimeZone = true
			issue = true
		} else if !ValidateTimeZone(timeZone) {
			v.InvalidTimeZone = true
			issue = true
		}

		if issue {
			results = append(results, v)
		}
	}

	return results
}

// DetectDuplicates groups row indices by trimmed, case-insensitive Email.
// Only values occurring at least twice are emitted. The reported Value is
// the first occurrence's spelling.
func DetectDuplicates(rows []Row) []DuplicateGroup {
	header := FieldEmail.Header()
	indices := make(map[string][]int)
	firstSeen := make(map[string]string)
	var order []string

	for i, row := range rows {
		value := strings.TrimSpace(row[header])
		if value == "" {
			continue
		}
		key := strings.ToLower(value)
		if _, ok := indices[key]; !ok {
			order = append(order, key)
			firstSeen[key] = value
		}
		indices[key] = append(indices[key], i)
	}

	var groups []DuplicateGroup
	for _, key := range order {
		if len(indices[key]) < 2 {
			continue
		}
		groups = append(groups, DuplicateGroup{
			Field:      header,
			Value:      firstSeen[key],
			RowIndices: indices[key],
		})
	}
	return groups
}

// DetectPhoneDuplicates returns the indices of rows whose Phone value
// occurs more than once, as a flat map from digit string to indices. This
// narrower detector feeds the data-issues resolver and is deliberately a
// different shape from the Email duplicate groups.
func DetectPhoneDuplicates(rows []Row) map[string][]int {
	header := FieldPhone.Header()
	indices := make(map[string][]int)
	for i, row := range rows {
		value := strings.TrimSpace(row[header])
		if value == "" {
			continue
		}
		indices[value] = append(indices[value], i)
	}
	for key, idx := range indices {
		if len(idx) < 2 {
			delete(indices, key)
		}
	}
	return indices
}

// Derived selectors. Each must stay consistent with the flag ValidateRows
// would produce for the same predicate; the tests run both against shared
// fixtures to catch drift.

// RowsWithMissingTimeZone returns indices of rows with an empty Time Zone.
func RowsWithMissingTimeZone(rows []Row) []int {
	return selectRows(rows, func(r Row) bool {
		return strings.TrimSpace(r[FieldTimeZone.Header()]) == ""
	})
}

// RowsWithMissingStatus returns indices of rows with an empty Status.
func RowsWithMissingStatus(rows []Row) []int {
	return selectRows(rows, func(r Row) bool {
		return strings.TrimSpace(r[FieldStatus.Header()]) == ""
	})
}

// RowsWithInvalidStatus returns indices of rows whose Status is non-empty
// but not canonical.
func RowsWithInvalidStatus(rows []Row) []int {
	return selectRows(rows, func(r Row) bool {
		s := strings.TrimSpace(r[FieldStatus.Header()])
		return s != "" && !ValidateStatus(s)
	})
}

// RowsWithNameTooLong returns indices of rows where either name exceeds
// the CRM limit.
func RowsWithNameTooLong(rows []Row) []int {
	return selectRows(rows, func(r Row) bool {
		return len(strings.TrimSpace(r[FieldFirstName.Header()])) > MaxNameLength ||
			len(strings.TrimSpace(r[FieldLastName.Header()])) > MaxNameLength
	})
}

func selectRows(rows []Row, pred func(Row) bool) []int {
	var out []int
	for i, row := range rows {
		if pred(row) {
			out = append(out, i)
		}
	}
	return out
}
