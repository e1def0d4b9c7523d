package engine

// detect.go recognizes ambiguous column structures in uploaded headers:
// a combined full-name column that should be split, and scattered address
// fragments that should be consolidated into one Address value.

import (
	"regexp"
	"sort"
	"strings"
)

// headerSeparatorRegex strips spaces, underscores, and hyphens so header
// variants like "first_name", "First-Name", and "firstname" compare equal.
var headerSeparatorRegex = regexp.MustCompile(`[\s_\-]+`)

// normalizeHeader lowercases a header and strips separator characters.
func normalizeHeader(h string) string {
	return headerSeparatorRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), "")
}

var (
	firstNameHeaders = map[string]bool{"firstname": true, "fname": true, "first": true}
	lastNameHeaders  = map[string]bool{"lastname": true, "lname": true, "last": true}
)

// fullNamePatterns are scanned in priority order; the first pattern with a
// matching header wins. Bare "client"/"contact" sit last so a sheet with
// both "Client" and "Contact Name" splits the richer column.
var fullNamePatterns = []string{
	"fullname", "name", "clientname", "customername", "contactname",
	"client", "contact",
}

// FullNameColumn identifies a detected combined-name column.
type FullNameColumn struct {
	SourceHeader string `json:"sourceHeader"`
	Type         string `json:"type"`
}

// DetectFullNameColumn scans headers for a combined-name column. Returns
// nil when the sheet already carries recognizable separate First Name and
// Last Name columns, or when nothing name-like is found.
func DetectFullNameColumn(headers []string) *FullNameColumn {
	hasFirst, hasLast := false, false
	for _, h := range headers {
		n := normalizeHeader(h)
		if firstNameHeaders[n] {
			hasFirst = true
		}
		if lastNameHeaders[n] {
			hasLast = true
		}
	}
	if hasFirst && hasLast {
		return nil
	}

	for _, pattern := range fullNamePatterns {
		for _, h := range headers {
			if normalizeHeader(h) == pattern {
				return &FullNameColumn{SourceHeader: h, Type: "fullName"}
			}
		}
	}
	return nil
}

// addressRolePattern matches a header against one address-component role.
type addressRolePattern struct {
	role    AddressRole
	order   int
	pattern *regexp.Regexp
}

// addressRolePatterns are checked per header in priority order; the first
// matching role wins. Order values drive the join sequence at
// consolidation time.
var addressRolePatterns = []addressRolePattern{
	{RoleStreet1, 1, regexp.MustCompile(`(?i)^(street\s*(address)?\s*1|address\s*(line)?\s*1|addr\s*1|street)$`)},
	{RoleAddress, 2, regexp.MustCompile(`(?i)^(street\s*)?address$`)},
	{RoleStreet2, 3, regexp.MustCompile(`(?i)^(street\s*(address)?\s*2|address\s*(line)?\s*2|addr\s*2|apt|apartment|suite|unit)$`)},
	{RoleCity, 4, regexp.MustCompile(`(?i)^(city|town|municipality)$`)},
	{RoleState, 5, regexp.MustCompile(`(?i)^(state|province|region|st)$`)},
	{RoleZip, 6, regexp.MustCompile(`(?i)^(zip|zip\s*code|postal|postal\s*code|postcode)$`)},
	{RoleCountry, 7, regexp.MustCompile(`(?i)^(country|nation)$`)},
}

// DetectAddressComponentColumns classifies headers into address-component
// roles, sorted by the role's join order. The caller decides whether the
// match count justifies offering consolidation (the product threshold is
// two or more).
func DetectAddressComponentColumns(headers []string) []AddressComponent {
	var components []AddressComponent
	for _, h := range headers {
		trimmed := strings.TrimSpace(h)
		for _, rp := range addressRolePatterns {
			if rp.pattern.MatchString(trimmed) {
				components = append(components, AddressComponent{
					SourceHeader: h,
					Role:         rp.role,
					Order:        rp.order,
				})
				break
			}
		}
	}
	sort.SliceStable(components, func(i, j int) bool {
		return components[i].Order < components[j].Order
	})
	return components
}

var (
	repeatedCommaRegex = regexp.MustCompile(`,\s*,+`)
	whitespaceRunRegex = regexp.MustCompile(`\s+`)
)

// ConsolidateAddress joins the row's address-fragment values in component
// order with the given separator, skipping empty fragments, then collapses
// repeated commas and whitespace runs. Zero non-empty components yield "".
func ConsolidateAddress(row Row, components []AddressComponent, separator string) string {
	sorted := make([]AddressComponent, len(components))
	copy(sorted, components)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	var parts []string
	for _, c := range sorted {
		v := strings.TrimSpace(row[c.SourceHeader])
		if v != "" {
			parts = append(parts, v)
		}
	}

	joined := strings.Join(parts, separator)
	joined = repeatedCommaRegex.ReplaceAllString(joined, ",")
	joined = whitespaceRunRegex.ReplaceAllString(joined, " ")
	return strings.TrimSpace(joined)
}

// ConsolidateAddresses applies ConsolidateAddress across a raw row
// sequence, writing the Address column. Returns the new sequence and a
// partial stats value for the caller to merge after processing.
func ConsolidateAddresses(rows []Row, components []AddressComponent, separator string) ([]Row, CleaningStats) {
	out := make([]Row, len(rows))
	var partial CleaningStats
	header := FieldAddress.Header()
	for i, row := range rows {
		clone := row.Clone()
		consolidated := ConsolidateAddress(clone, components, separator)
		if consolidated != "" {
			partial.AddressesConsolidated++
		}
		clone[header] = consolidated
		out[i] = clone
	}
	return out, partial
}
