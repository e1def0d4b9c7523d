package engine

// mapping.go is the deterministic keyword-fallback header mapper. It backs
// the interactive mapping step whenever AI suggestions are unavailable or
// rate-limited; suggestions are plain data, the engine performs no network
// calls.

import "strings"

// fieldKeywords lists, per standard field, the exact normalized headers
// that identify it (high confidence) and the looser fragments accepted by
// containment (low confidence).
type fieldKeywords struct {
	field    StandardField
	exact    []string
	contains []string
}

var mappingKeywords = []fieldKeywords{
	{FieldEmail, []string{"email", "emailaddress", "mail", "e-mail"}, []string{"email"}},
	{FieldFirstName, []string{"firstname", "fname", "first", "givenname"}, []string{"first"}},
	{FieldLastName, []string{"lastname", "lname", "last", "surname", "familyname"}, []string{"last"}},
	{FieldPhone, []string{"phone", "phonenumber", "mobile", "cell", "telephone", "tel"}, []string{"phone", "mobile"}},
	{FieldAddress, []string{"address", "fulladdress", "streetaddress", "mailingaddress"}, []string{"address"}},
	{FieldBirthday, []string{"birthday", "birthdate", "dateofbirth", "dob", "born"}, []string{"birth"}},
	{FieldTimeZone, []string{"timezone", "tz", "zone"}, []string{"timezone"}},
	{FieldStatus, []string{"status", "clientstatus", "customerstatus", "type", "stage"}, []string{"status"}},
	{FieldTags, []string{"tags", "tag", "labels", "categories", "groups"}, []string{"tag", "label"}},
	{FieldNotes, []string{"notes", "note", "comments", "comment", "remarks", "description"}, []string{"note", "comment"}},
}

// Confidence tiers for the fallback mapper. AI-backed suggestions carry
// their own scores; these only apply to keyword matches.
const (
	confidenceExact    = 0.9
	confidenceStrong   = 0.75
	confidenceContains = 0.6
)

// SuggestMapping produces a HeaderMapping entry per source header using
// keyword matching. Each target is assigned at most once, in header order;
// later headers that would collide map to nil. Headers matching a declared
// custom field name map to it with full confidence.
func SuggestMapping(headers []string, customFields []string) []HeaderMapping {
	assigned := make(map[string]bool)
	mappings := make([]HeaderMapping, 0, len(headers))

	for _, h := range headers {
		normalized := normalizeHeader(h)
		m := HeaderMapping{SourceHeader: h}

		if custom := matchCustomField(normalized, customFields); custom != "" && !assigned[custom] {
			target := custom
			m.TargetHeader = &target
			m.Confidence = confidenceExact
			m.IsCustom = true
			assigned[custom] = true
			mappings = append(mappings, m)
			continue
		}

		if field, confidence, ok := matchKeyword(normalized); ok {
			target := field.Header()
			if !assigned[target] {
				m.TargetHeader = &target
				m.Confidence = confidence
				assigned[target] = true
			}
		}
		mappings = append(mappings, m)
	}

	return mappings
}

// matchCustomField compares a normalized header against declared custom
// field names, normalized the same way.
func matchCustomField(normalized string, customFields []string) string {
	for _, cf := range customFields {
		if normalizeHeader(cf) == normalized {
			return cf
		}
	}
	return ""
}

// matchKeyword resolves a normalized header to a standard field. The first
// keyword set with an exact hit wins at 0.9; an exact hit on a synonym
// beyond the primary keyword scores 0.75; containment scores 0.6.
func matchKeyword(normalized string) (StandardField, float64, bool) {
	if normalized == "" {
		return 0, 0, false
	}
	for _, kw := range mappingKeywords {
		for i, exact := range kw.exact {
			if normalized == exact {
				if i == 0 {
					return kw.field, confidenceExact, true
				}
				return kw.field, confidenceStrong, true
			}
		}
	}
	for _, kw := range mappingKeywords {
		for _, frag := range kw.contains {
			if strings.Contains(normalized, frag) {
				return kw.field, confidenceContains, true
			}
		}
	}
	return 0, 0, false
}
