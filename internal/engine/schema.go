// Package engine implements the data cleaning and reconciliation core for
// CRM imports. Every function in this package is a pure, synchronous
// transform over its explicit inputs: no I/O, no shared state, no errors
// thrown for bad data. Malformed cell values degrade to empty strings or
// pass through trimmed, paired with a validation flag the caller can act on.
package engine

// StandardField identifies one of the ten canonical CRM import columns.
type StandardField int

const (
	FieldEmail StandardField = iota
	FieldFirstName
	FieldLastName
	FieldPhone
	FieldAddress
	FieldBirthday
	FieldTimeZone
	FieldStatus
	FieldTags
	FieldNotes
)

// Header returns the canonical column header for the field.
func (f StandardField) Header() string {
	switch f {
	case FieldEmail:
		return "Email"
	case FieldFirstName:
		return "First Name"
	case FieldLastName:
		return "Last Name"
	case FieldPhone:
		return "Phone"
	case FieldAddress:
		return "Address"
	case FieldBirthday:
		return "Birthday"
	case FieldTimeZone:
		return "Time Zone"
	case FieldStatus:
		return "Status"
	case FieldTags:
		return "Tags"
	case FieldNotes:
		return "Notes"
	default:
		return ""
	}
}

// StandardFields lists the canonical fields in output column order.
var StandardFields = []StandardField{
	FieldEmail, FieldFirstName, FieldLastName, FieldPhone, FieldAddress,
	FieldBirthday, FieldTimeZone, FieldStatus, FieldTags, FieldNotes,
}

// StandardHeaders returns the ten canonical headers in output column order.
func StandardHeaders() []string {
	headers := make([]string, len(StandardFields))
	for i, f := range StandardFields {
		headers[i] = f.Header()
	}
	return headers
}

// TargetField is a tagged union over the closed standard schema and the
// open set of caller-declared custom fields. Custom fields pass through
// cleaning untouched.
type TargetField struct {
	Standard StandardField
	Custom   string // non-empty means custom; Standard is ignored
}

// IsCustom reports whether the target is a caller-declared custom field.
func (t TargetField) IsCustom() bool { return t.Custom != "" }

// Header returns the output column header for the target.
func (t TargetField) Header() string {
	if t.IsCustom() {
		return t.Custom
	}
	return t.Standard.Header()
}

// ResolveTarget maps an output header to its TargetField. Headers that are
// not one of the ten standard columns resolve to a custom field.
func ResolveTarget(header string) TargetField {
	for _, f := range StandardFields {
		if f.Header() == header {
			return TargetField{Standard: f}
		}
	}
	return TargetField{Custom: header}
}

// Row is one record of the working set, keyed by output column header.
// Column order is carried separately by the caller's header slice. Row
// identity is its position in the working sequence; indices are stable
// within a stage but not across row removals.
type Row map[string]string

// Clone returns an independent copy of the row. Pipeline stages never
// mutate their inputs; every transform produces a new row sequence.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CloneRows deep-copies a row sequence.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

// HeaderMapping assigns one source column to at most one target column.
// A nil Target leaves the source column unmapped (dropped at processing).
type HeaderMapping struct {
	SourceHeader string  `json:"sourceHeader"`
	TargetHeader *string `json:"targetHeader"`
	Confidence   float64 `json:"confidence"`
	IsCustom     bool    `json:"isCustom,omitempty"`
}

// AddressRole classifies an address-fragment column.
type AddressRole string

const (
	RoleStreet1 AddressRole = "street1"
	RoleAddress AddressRole = "address"
	RoleStreet2 AddressRole = "street2"
	RoleCity    AddressRole = "city"
	RoleState   AddressRole = "state"
	RoleZip     AddressRole = "zip"
	RoleCountry AddressRole = "country"
)

// AddressComponent ties a source column to its role in a consolidated
// Address value. Order determines join sequence, not slice position.
type AddressComponent struct {
	SourceHeader string      `json:"sourceHeader"`
	Role         AddressRole `json:"role"`
	Order        int         `json:"order"`
}

// CleaningStats counts the modifications of one coherent processing run.
// Created fresh per ProcessData call; out-of-band steps (address
// consolidation done earlier in the pipeline) fold their counts in via
// Merge rather than poking individual counters.
type CleaningStats struct {
	TotalRows             int `json:"totalRows"`
	EmailsCleaned         int `json:"emailsCleaned"`
	PhonesNormalized      int `json:"phonesNormalized"`
	EmptyValuesCleared    int `json:"emptyValuesCleared"`
	NamesToProperCase     int `json:"namesToProperCase"`
	StatusValidated       int `json:"statusValidated"`
	TimeZoneValidated     int `json:"timeZoneValidated"`
	TagsFormatted         int `json:"tagsFormatted"`
	BirthdayFormatted     int `json:"birthdayFormatted"`
	AddressesConsolidated int `json:"addressesConsolidated"`
	EmptyRowsRemoved      int `json:"emptyRowsRemoved"`
	EmptyColumnsRemoved   int `json:"emptyColumnsRemoved"`
	TotalCellsModified    int `json:"totalCellsModified"`
}

// Merge folds the counts of a partial run into s and returns the sum.
// TotalRows is taken from s (the authoritative processing run), not added.
func (s CleaningStats) Merge(partial CleaningStats) CleaningStats {
	s.EmailsCleaned += partial.EmailsCleaned
	s.PhonesNormalized += partial.PhonesNormalized
	s.EmptyValuesCleared += partial.EmptyValuesCleared
	s.NamesToProperCase += partial.NamesToProperCase
	s.StatusValidated += partial.StatusValidated
	s.TimeZoneValidated += partial.TimeZoneValidated
	s.TagsFormatted += partial.TagsFormatted
	s.BirthdayFormatted += partial.BirthdayFormatted
	s.AddressesConsolidated += partial.AddressesConsolidated
	s.EmptyRowsRemoved += partial.EmptyRowsRemoved
	s.EmptyColumnsRemoved += partial.EmptyColumnsRemoved
	s.TotalCellsModified += partial.TotalCellsModified
	return s
}

// RowValidation is the per-row diagnostic produced by ValidateRows. It is
// recomputed from scratch after every mutation, never patched: any edit
// can resolve or introduce unrelated issues anywhere in the row set.
type RowValidation struct {
	RowIndex          int      `json:"rowIndex"`
	MissingFields     []string `json:"missingFields,omitempty"`
	InvalidEmail      bool     `json:"invalidEmail,omitempty"`
	InvalidStatus     bool     `json:"invalidStatus,omitempty"`
	InvalidTimeZone   bool     `json:"invalidTimeZone,omitempty"`
	MissingTimeZone   bool     `json:"missingTimeZone,omitempty"`
	FirstNameRequired bool     `json:"firstNameRequired,omitempty"`
	FirstNameTooLong  bool     `json:"firstNameTooLong,omitempty"`
	LastNameTooLong   bool     `json:"lastNameTooLong,omitempty"`
}

// DuplicateGroup collects the indices of rows sharing one field value,
// case-insensitive. Only values occurring at least twice are emitted.
type DuplicateGroup struct {
	Field      string `json:"field"`
	Value      string `json:"value"`
	RowIndices []int  `json:"rowIndices"`
}
