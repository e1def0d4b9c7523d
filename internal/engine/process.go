package engine

// process.go applies a confirmed header mapping to the raw rows and runs
// every mapped cell through its field cleaner, accumulating change
// statistics. Fully-empty rows and fully-empty columns are pruned from the
// output. The processor never mutates its input; for a fixed input and
// mapping the output rows and stats are deterministic and order-preserving.

import "strings"

// ProcessResult pairs the cleaned row set with the stats of the run.
type ProcessResult struct {
	Headers []string      `json:"headers"`
	Data    []Row         `json:"data"`
	Stats   CleaningStats `json:"stats"`
}

// ProcessData builds the cleaned working set from raw rows and a
// caller-validated header mapping.
//
// Every output row carries every target key, empty when unmapped. A
// mapping whose target is not one of the ten standard headers is treated
// as a custom passthrough field; the processor tolerates unregistered
// targets rather than rejecting them, consistent with the engine's
// degrade-don't-throw posture.
func ProcessData(rawRows []Row, mappings []HeaderMapping) ProcessResult {
	headers := StandardHeaders()
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		seen[h] = true
	}
	for _, m := range mappings {
		if m.TargetHeader == nil || *m.TargetHeader == "" {
			continue
		}
		if !seen[*m.TargetHeader] {
			seen[*m.TargetHeader] = true
			headers = append(headers, *m.TargetHeader)
		}
	}

	var stats CleaningStats
	cleaned := make([]Row, 0, len(rawRows))

	for _, raw := range rawRows {
		out := make(Row, len(headers))
		for _, h := range headers {
			out[h] = ""
		}

		for _, m := range mappings {
			if m.TargetHeader == nil || *m.TargetHeader == "" || m.SourceHeader == "" {
				continue
			}
			target := ResolveTarget(*m.TargetHeader)
			rawValue := raw[m.SourceHeader]
			cleanedValue := CleanValue(target, rawValue)
			out[target.Header()] = cleanedValue

			trimmed := strings.TrimSpace(rawValue)
			if cleanedValue != trimmed {
				stats.TotalCellsModified++
				countFieldChange(&stats, target)
			}
			if cleanedValue == "" && trimmed != "" {
				stats.EmptyValuesCleared++
			}
		}

		cleaned = append(cleaned, out)
	}

	cleaned, removed := dropEmptyRows(cleaned)
	stats.EmptyRowsRemoved = removed

	headers, cleaned, dropped := dropEmptyColumns(headers, cleaned)
	stats.EmptyColumnsRemoved = dropped

	stats.TotalRows = len(cleaned)

	return ProcessResult{Headers: headers, Data: cleaned, Stats: stats}
}

// countFieldChange bumps the per-field stats counter for a modified cell.
// Custom fields have no dedicated counter; only TotalCellsModified moves.
func countFieldChange(stats *CleaningStats, target TargetField) {
	if target.IsCustom() {
		return
	}
	switch target.Standard {
	case FieldEmail:
		stats.EmailsCleaned++
	case FieldPhone:
		stats.PhonesNormalized++
	case FieldFirstName, FieldLastName:
		stats.NamesToProperCase++
	case FieldStatus:
		stats.StatusValidated++
	case FieldTimeZone:
		stats.TimeZoneValidated++
	case FieldTags:
		stats.TagsFormatted++
	case FieldBirthday:
		stats.BirthdayFormatted++
	}
}

// dropEmptyRows removes rows where every value is empty or whitespace.
func dropEmptyRows(rows []Row) ([]Row, int) {
	kept := make([]Row, 0, len(rows))
	removed := 0
	for _, row := range rows {
		empty := true
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if empty {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	return kept, removed
}

// dropEmptyColumns removes target columns with no non-empty value in any
// surviving row. The key is deleted from every row so exports and the UI
// never see the dead column.
func dropEmptyColumns(headers []string, rows []Row) ([]string, []Row, int) {
	hasValue := make(map[string]bool, len(headers))
	for _, row := range rows {
		for h, v := range row {
			if strings.TrimSpace(v) != "" {
				hasValue[h] = true
			}
		}
	}

	keptHeaders := make([]string, 0, len(headers))
	dropped := 0
	for _, h := range headers {
		if hasValue[h] {
			keptHeaders = append(keptHeaders, h)
		} else {
			dropped++
		}
	}
	if dropped > 0 {
		for _, row := range rows {
			for h := range row {
				if !hasValue[h] {
					delete(row, h)
				}
			}
		}
	}
	return keptHeaders, rows, dropped
}
