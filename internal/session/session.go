// Package session orchestrates one import from upload to export. Each
// session holds the current row snapshot; every mutation applies one
// complete synchronous engine transform and produces a new snapshot with
// freshly recomputed validations and duplicate groups. Diagnostics are
// never patched in place -- a single edit can invalidate them anywhere in
// the row set.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GilTarablus/TidyImport/internal/engine"
)

var (
	// ErrNotProcessed is returned by operations that require a cleaned
	// working set before the mapping has been applied.
	ErrNotProcessed = errors.New("session has no processed data yet")

	// ErrNoMapping is returned by Process before a mapping is set.
	ErrNoMapping = errors.New("session has no header mapping")
)

// Session is one import in progress. All methods are safe for concurrent
// use; the engine itself stays pure while the session serializes access.
type Session struct {
	ID        string
	FileName  string
	CreatedAt time.Time

	mu sync.Mutex

	// Raw stage: parsed input plus detections and pre-processing edits.
	rawHeaders   []string
	rawRows      []engine.Row
	customFields []string
	mapping      []engine.HeaderMapping
	pendingStats engine.CleaningStats

	fullNameColumn    *engine.FullNameColumn
	addressComponents []engine.AddressComponent

	// Cleaned stage: output of the last ProcessData run plus diagnostics.
	processed   bool
	headers     []string
	rows        []engine.Row
	stats       engine.CleaningStats
	validations []engine.RowValidation
	duplicates  []engine.DuplicateGroup
}

// New creates a session over a parsed file, running the structural
// detectors and the keyword fallback mapper up front.
func New(fileName string, headers []string, rows []engine.Row, customFields []string) *Session {
	return &Session{
		ID:                uuid.NewString(),
		FileName:          fileName,
		CreatedAt:         time.Now(),
		rawHeaders:        headers,
		rawRows:           rows,
		customFields:      customFields,
		mapping:           engine.SuggestMapping(headers, customFields),
		fullNameColumn:    engine.DetectFullNameColumn(headers),
		addressComponents: engine.DetectAddressComponentColumns(headers),
	}
}

// Snapshot is the externally visible state of a session.
type Snapshot struct {
	ID                string                    `json:"id"`
	FileName          string                    `json:"fileName"`
	RawHeaders        []string                  `json:"rawHeaders"`
	RawRowCount       int                       `json:"rawRowCount"`
	Mapping           []engine.HeaderMapping    `json:"mapping"`
	FullNameColumn    *engine.FullNameColumn    `json:"fullNameColumn,omitempty"`
	AddressComponents []engine.AddressComponent `json:"addressComponents,omitempty"`
	Processed         bool                      `json:"processed"`
	Headers           []string                  `json:"headers,omitempty"`
	Rows              []engine.Row              `json:"rows,omitempty"`
	Stats             engine.CleaningStats      `json:"stats"`
	Validations       []engine.RowValidation    `json:"validations,omitempty"`
	Duplicates        []engine.DuplicateGroup   `json:"duplicates,omitempty"`
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:                s.ID,
		FileName:          s.FileName,
		RawHeaders:        append([]string(nil), s.rawHeaders...),
		RawRowCount:       len(s.rawRows),
		Mapping:           append([]engine.HeaderMapping(nil), s.mapping...),
		FullNameColumn:    s.fullNameColumn,
		AddressComponents: append([]engine.AddressComponent(nil), s.addressComponents...),
		Processed:         s.processed,
		Headers:           append([]string(nil), s.headers...),
		Rows:              engine.CloneRows(s.rows),
		Stats:             s.stats,
		Validations:       append([]engine.RowValidation(nil), s.validations...),
		Duplicates:        append([]engine.DuplicateGroup(nil), s.duplicates...),
	}
}

// SetMapping replaces the header mapping. Call before Process.
func (s *Session) SetMapping(mapping []engine.HeaderMapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapping = mapping
}

// Mapping returns the current mapping.
func (s *Session) Mapping() []engine.HeaderMapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]engine.HeaderMapping(nil), s.mapping...)
}

// SplitNameColumn applies the full-name splitter to the detected (or
// caller-chosen) combined-name column on the raw rows, and re-runs the
// mapper so the new First Name / Last Name columns map to their targets.
func (s *Session) SplitNameColumn(sourceHeader string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sourceHeader == "" {
		if s.fullNameColumn == nil {
			return errors.New("no combined-name column detected")
		}
		sourceHeader = s.fullNameColumn.SourceHeader
	}
	if !s.hasRawHeader(sourceHeader) {
		return fmt.Errorf("unknown column %q", sourceHeader)
	}

	s.rawRows = engine.SplitNameColumn(s.rawRows, sourceHeader)
	s.rawHeaders = appendMissing(s.rawHeaders,
		engine.FieldFirstName.Header(), engine.FieldLastName.Header())
	s.mapping = engine.SuggestMapping(s.rawHeaders, s.customFields)
	// The source column must not also map somewhere.
	for i := range s.mapping {
		if s.mapping[i].SourceHeader == sourceHeader {
			s.mapping[i].TargetHeader = nil
			s.mapping[i].Confidence = 0
		}
	}
	s.fullNameColumn = nil
	return nil
}

// ConsolidateAddress joins the detected address-fragment columns into the
// Address column on the raw rows, using the resolver-chosen separator. The
// consolidation count is held as partial stats and merged after Process.
func (s *Session) ConsolidateAddress(separator string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.addressComponents) < 2 {
		return errors.New("not enough address component columns to consolidate")
	}
	if separator == "" {
		separator = ", "
	}

	rows, partial := engine.ConsolidateAddresses(s.rawRows, s.addressComponents, separator)
	s.rawRows = rows
	s.rawHeaders = appendMissing(s.rawHeaders, engine.FieldAddress.Header())
	s.pendingStats = s.pendingStats.Merge(partial)

	// Map the consolidated column; the fragment columns drop out.
	fragments := make(map[string]bool, len(s.addressComponents))
	for _, c := range s.addressComponents {
		fragments[c.SourceHeader] = true
	}
	addressHeader := engine.FieldAddress.Header()
	s.mapping = engine.SuggestMapping(s.rawHeaders, s.customFields)
	for i := range s.mapping {
		if fragments[s.mapping[i].SourceHeader] && s.mapping[i].SourceHeader != addressHeader {
			s.mapping[i].TargetHeader = nil
			s.mapping[i].Confidence = 0
		}
	}
	s.addressComponents = nil
	return nil
}

// Process runs the row processor over the raw rows with the current
// mapping, folds in any pending partial stats, and computes diagnostics.
func (s *Session) Process() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.mapping) == 0 {
		return ErrNoMapping
	}

	result := engine.ProcessData(s.rawRows, s.mapping)
	s.headers = result.Headers
	s.rows = result.Data
	s.stats = result.Stats.Merge(s.pendingStats)
	s.pendingStats = engine.CleaningStats{}
	s.processed = true
	s.revalidate()
	return nil
}

// RemoveRows drops the given row indices (duplicate resolution). Indices
// refer to the current snapshot; surviving rows are re-indexed.
func (s *Session) RemoveRows(indices []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.processed {
		return ErrNotProcessed
	}

	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(s.rows) {
			return fmt.Errorf("row index %d out of range", i)
		}
		drop[i] = true
	}

	kept := make([]engine.Row, 0, len(s.rows)-len(drop))
	for i, row := range s.rows {
		if !drop[i] {
			kept = append(kept, row)
		}
	}
	s.rows = kept
	s.stats.TotalRows = len(kept)
	s.revalidate()
	return nil
}

// UpdateCell sets one cell (guided correction), cleaning the value through
// the target field's cleaner.
func (s *Session) UpdateCell(rowIndex int, header, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.processed {
		return ErrNotProcessed
	}
	if rowIndex < 0 || rowIndex >= len(s.rows) {
		return fmt.Errorf("row index %d out of range", rowIndex)
	}
	if !s.hasHeader(header) {
		return fmt.Errorf("unknown column %q", header)
	}

	rows := engine.CloneRows(s.rows)
	rows[rowIndex][header] = engine.CleanValue(engine.ResolveTarget(header), value)
	s.rows = rows
	s.revalidate()
	return nil
}

// FillField backfills a standard field on the given rows (or on every row
// missing it when indices is nil) with a resolver-chosen value.
func (s *Session) FillField(field engine.StandardField, value string, indices []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.processed {
		return ErrNotProcessed
	}

	header := field.Header()
	cleaned := engine.CleanValue(engine.TargetField{Standard: field}, value)

	targets := indices
	if targets == nil {
		switch field {
		case engine.FieldTimeZone:
			targets = engine.RowsWithMissingTimeZone(s.rows)
		case engine.FieldStatus:
			targets = engine.RowsWithMissingStatus(s.rows)
		default:
			return fmt.Errorf("no missing-value selector for %s", header)
		}
	}

	rows := engine.CloneRows(s.rows)
	for _, i := range targets {
		if i < 0 || i >= len(rows) {
			return fmt.Errorf("row index %d out of range", i)
		}
		rows[i][header] = cleaned
	}
	s.rows = rows
	s.headers = appendMissing(s.headers, header)
	s.revalidate()
	return nil
}

// ReformatBirthdays re-renders every parseable Birthday in the chosen
// format.
func (s *Session) ReformatBirthdays(format engine.BirthdayFormat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.processed {
		return ErrNotProcessed
	}

	rows, _ := engine.ReformatBirthdays(s.rows, format)
	s.rows = rows
	s.revalidate()
	return nil
}

// Export returns the current headers and rows for serialization.
func (s *Session) Export() ([]string, []engine.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.processed {
		return nil, nil, ErrNotProcessed
	}
	return append([]string(nil), s.headers...), engine.CloneRows(s.rows), nil
}

// revalidate recomputes all diagnostics. Callers hold s.mu.
func (s *Session) revalidate() {
	s.validations = engine.ValidateRows(s.rows)
	s.duplicates = engine.DetectDuplicates(s.rows)
}

func (s *Session) hasRawHeader(h string) bool {
	for _, rh := range s.rawHeaders {
		if rh == h {
			return true
		}
	}
	return false
}

func (s *Session) hasHeader(h string) bool {
	for _, sh := range s.headers {
		if sh == h {
			return true
		}
	}
	return false
}

// appendMissing appends each header not already present, preserving order.
func appendMissing(headers []string, add ...string) []string {
	out := append([]string(nil), headers...)
	for _, a := range add {
		found := false
		for _, h := range out {
			if h == a {
				found = true
				break
			}
		}
		if !found {
			out = append(out, a)
		}
	}
	return out
}
