package engine

import (
	"reflect"
	"strings"
	"testing"
)

// validRow returns a row that passes every validation check.
func validRow() Row {
	return Row{
		"Email":      "jane@example.com",
		"First Name": "Jane",
		"Last Name":  "Doe",
		"Phone":      "5551234567",
		"Status":     "Lead",
		"Time Zone":  "Eastern Time (US & Canada)",
	}
}

func TestValidateRowsCleanRowOmitted(t *testing.T) {
	results := ValidateRows([]Row{validRow()})
	if len(results) != 0 {
		t.Errorf("expected no diagnostics for a clean row, got %+v", results)
	}
}

func TestValidateRowsMissingFields(t *testing.T) {
	row := validRow()
	row["First Name"] = ""
	row["Email"] = ""
	row["Phone"] = ""
	row["Last Name"] = ""

	results := ValidateRows([]Row{row})
	if len(results) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(results))
	}

	v := results[0]
	if !v.FirstNameRequired {
		t.Error("FirstNameRequired not set")
	}
	want := []string{"First Name", "Email", "Phone", "Last Name"}
	if !reflect.DeepEqual(v.MissingFields, want) {
		t.Errorf("MissingFields = %v, want %v", v.MissingFields, want)
	}
}

// A too-long first name and a missing email are independent findings, and
// FirstNameTooLong excludes FirstNameRequired for the same row.
func TestValidateRowsIndependence(t *testing.T) {
	row := validRow()
	row["First Name"] = strings.Repeat("A", 30)
	row["Email"] = ""

	results := ValidateRows([]Row{row})
	if len(results) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(results))
	}

	v := results[0]
	if !v.FirstNameTooLong {
		t.Error("FirstNameTooLong not set")
	}
	if v.FirstNameRequired {
		t.Error("FirstNameRequired must be absent when the name is present")
	}
	if !reflect.DeepEqual(v.MissingFields, []string{"Email"}) {
		t.Errorf("MissingFields = %v, want [Email]", v.MissingFields)
	}
}

func TestValidateRowsFormats(t *testing.T) {
	row := validRow()
	row["Email"] = "not-an-email"
	row["Status"] = "prospect"
	row["Time Zone"] = "Mars Standard Time"

	results := ValidateRows([]Row{row})
	if len(results) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(results))
	}

	v := results[0]
	if !v.InvalidEmail {
		t.Error("InvalidEmail not set")
	}
	if !v.InvalidStatus {
		t.Error("InvalidStatus not set")
	}
	if !v.InvalidTimeZone {
		t.Error("InvalidTimeZone not set")
	}
	if v.MissingTimeZone {
		t.Error("MissingTimeZone must not co-occur with InvalidTimeZone")
	}
}

func TestValidateRowsMissingTimeZone(t *testing.T) {
	row := validRow()
	row["Time Zone"] = ""

	results := ValidateRows([]Row{row})
	if len(results) != 1 || !results[0].MissingTimeZone {
		t.Fatalf("expected MissingTimeZone, got %+v", results)
	}
}

func TestValidateRowsLastNameTooLong(t *testing.T) {
	row := validRow()
	row["Last Name"] = strings.Repeat("B", 27)

	results := ValidateRows([]Row{row})
	if len(results) != 1 || !results[0].LastNameTooLong {
		t.Fatalf("expected LastNameTooLong, got %+v", results)
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@sub.domain.org"}
	invalid := []string{"", "plain", "a@b", "a b@c.com", "a@b c.com", "@b.com", "a@.com"}

	for _, s := range valid {
		if !ValidateEmail(s) {
			t.Errorf("ValidateEmail(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidateEmail(s) {
			t.Errorf("ValidateEmail(%q) = true, want false", s)
		}
	}
}

// ============================================================================
// Duplicate detection
// ============================================================================

func TestDetectDuplicates(t *testing.T) {
	rows := []Row{
		{"Email": "A@B.com"},
		{"Email": "unique@x.com"},
		{"Email": "a@b.com"},
		{"Email": " a@b.com "},
		{"Email": ""},
	}

	groups := DetectDuplicates(rows)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d: %+v", len(groups), groups)
	}

	g := groups[0]
	if g.Field != "Email" {
		t.Errorf("Field = %q, want Email", g.Field)
	}
	if g.Value != "A@B.com" {
		t.Errorf("Value = %q, want first occurrence spelling", g.Value)
	}
	if !reflect.DeepEqual(g.RowIndices, []int{0, 2, 3}) {
		t.Errorf("RowIndices = %v, want [0 2 3]", g.RowIndices)
	}
}

func TestDetectPhoneDuplicates(t *testing.T) {
	rows := []Row{
		{"Phone": "5551112222"},
		{"Phone": "5553334444"},
		{"Phone": "5551112222"},
		{"Phone": ""},
	}

	dupes := DetectPhoneDuplicates(rows)
	if len(dupes) != 1 {
		t.Fatalf("expected 1 duplicated phone, got %+v", dupes)
	}
	if !reflect.DeepEqual(dupes["5551112222"], []int{0, 2}) {
		t.Errorf("indices = %v, want [0 2]", dupes["5551112222"])
	}
}

// ============================================================================
// Selector / validator consistency
// ============================================================================

// The derived selectors must agree with the flags ValidateRows produces
// for the same predicate over the same fixtures.
func TestSelectorsMatchValidation(t *testing.T) {
	rows := []Row{
		validRow(),
		func() Row { r := validRow(); r["Time Zone"] = ""; return r }(),
		func() Row { r := validRow(); r["Status"] = ""; return r }(),
		func() Row { r := validRow(); r["Status"] = "bogus"; return r }(),
		func() Row { r := validRow(); r["First Name"] = strings.Repeat("X", 30); return r }(),
	}

	validations := ValidateRows(rows)
	flagged := func(pred func(RowValidation) bool) []int {
		var out []int
		for _, v := range validations {
			if pred(v) {
				out = append(out, v.RowIndex)
			}
		}
		return out
	}

	if got, want := RowsWithMissingTimeZone(rows), flagged(func(v RowValidation) bool { return v.MissingTimeZone }); !reflect.DeepEqual(got, want) {
		t.Errorf("missing timezone selector %v != validation %v", got, want)
	}
	if got, want := RowsWithInvalidStatus(rows), flagged(func(v RowValidation) bool { return v.InvalidStatus }); !reflect.DeepEqual(got, want) {
		t.Errorf("invalid status selector %v != validation %v", got, want)
	}
	if got, want := RowsWithNameTooLong(rows), flagged(func(v RowValidation) bool { return v.FirstNameTooLong || v.LastNameTooLong }); !reflect.DeepEqual(got, want) {
		t.Errorf("name too long selector %v != validation %v", got, want)
	}
	if got, want := RowsWithMissingStatus(rows), []int{2}; !reflect.DeepEqual(got, want) {
		t.Errorf("missing status selector = %v, want %v", got, want)
	}
}
