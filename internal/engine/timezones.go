package engine

// timezones.go resolves free-form time zone text to one of the canonical
// zone labels the CRM accepts. Resolution order: exact canonical match,
// exact alias match, then substring containment against alias keys. The
// ordering matters -- exact lookups must win before substring scanning so
// that "Central Park" is not quietly resolved to "Central Time".

import "strings"

// CanonicalTimeZones is the closed list of zone labels the CRM accepts.
var CanonicalTimeZones = []string{
	"International Date Line West", "Midway Island", "American Samoa",
	"Hawaii", "Aleutian Islands", "Alaska", "Pacific Time (US & Canada)",
	"Tijuana", "Mountain Time (US & Canada)", "Arizona", "Chihuahua",
	"Mazatlan", "Central Time (US & Canada)", "Saskatchewan", "Guadalajara",
	"Mexico City", "Monterrey", "Central America",
	"Eastern Time (US & Canada)", "Indiana (East)", "Bogota", "Lima",
	"Quito", "Atlantic Time (Canada)", "Caracas", "La Paz", "Santiago",
	"Newfoundland", "Brasilia", "Buenos Aires", "Montevideo", "Georgetown",
	"Puerto Rico", "Greenland", "Mid-Atlantic", "Azores", "Cape Verde Is.",
	"Dublin", "Edinburgh", "Lisbon", "London", "Casablanca", "Monrovia",
	"UTC", "Belgrade", "Bratislava", "Budapest", "Ljubljana", "Prague",
	"Sarajevo", "Skopje", "Warsaw", "Zagreb", "Brussels", "Copenhagen",
	"Madrid", "Paris", "Amsterdam", "Berlin", "Bern", "Rome", "Stockholm",
	"Vienna", "West Central Africa", "Bucharest", "Cairo", "Helsinki",
	"Kyiv", "Riga", "Sofia", "Tallinn", "Vilnius", "Athens", "Istanbul",
	"Minsk", "Jerusalem", "Harare", "Pretoria", "Kaliningrad", "Moscow",
	"St. Petersburg", "Volgograd", "Samara", "Kuwait", "Riyadh", "Nairobi",
	"Baghdad", "Tehran", "Abu Dhabi", "Muscat", "Baku", "Tbilisi",
	"Yerevan", "Kabul", "Ekaterinburg", "Islamabad", "Karachi", "Tashkent",
	"Chennai", "Kolkata", "Mumbai", "New Delhi", "Kathmandu", "Astana",
	"Dhaka", "Sri Jayawardenepura", "Almaty", "Novosibirsk", "Rangoon",
	"Bangkok", "Hanoi", "Jakarta", "Krasnoyarsk", "Beijing", "Chongqing",
	"Hong Kong", "Urumqi", "Kuala Lumpur", "Singapore", "Taipei", "Perth",
	"Irkutsk", "Ulaanbaatar", "Seoul", "Osaka", "Sapporo", "Tokyo",
	"Yakutsk", "Darwin", "Adelaide", "Canberra", "Melbourne", "Sydney",
	"Brisbane", "Hobart", "Vladivostok", "Guam", "Port Moresby", "Magadan",
	"Srednekolymsk", "Solomon Is.", "New Caledonia", "Fiji", "Kamchatka",
	"Marshall Is.", "Auckland", "Wellington", "Nuku'alofa", "Tokelau Is.",
	"Chatham Is.", "Samoa",
}

// timeZoneAlias pairs a lowercase lookup key with its canonical label.
// Kept as an ordered slice so the substring scan is deterministic: the
// first matching key wins.
type timeZoneAlias struct {
	key       string
	canonical string
}

// timeZoneAliases maps abbreviations, IANA-style names, and common city or
// regional spellings to canonical labels. Keys must be lowercase.
var timeZoneAliases = []timeZoneAlias{
	// US abbreviations and regional names
	{"pst", "Pacific Time (US & Canada)"},
	{"pdt", "Pacific Time (US & Canada)"},
	{"pacific time", "Pacific Time (US & Canada)"},
	{"pacific standard time", "Pacific Time (US & Canada)"},
	{"pacific daylight time", "Pacific Time (US & Canada)"},
	{"us pacific", "Pacific Time (US & Canada)"},
	{"america/los_angeles", "Pacific Time (US & Canada)"},
	{"los angeles", "Pacific Time (US & Canada)"},
	{"seattle", "Pacific Time (US & Canada)"},
	{"san francisco", "Pacific Time (US & Canada)"},
	{"mst", "Mountain Time (US & Canada)"},
	{"mdt", "Mountain Time (US & Canada)"},
	{"mountain time", "Mountain Time (US & Canada)"},
	{"mountain standard time", "Mountain Time (US & Canada)"},
	{"us mountain", "Mountain Time (US & Canada)"},
	{"america/denver", "Mountain Time (US & Canada)"},
	{"denver", "Mountain Time (US & Canada)"},
	{"america/phoenix", "Arizona"},
	{"phoenix", "Arizona"},
	{"cst", "Central Time (US & Canada)"},
	{"cdt", "Central Time (US & Canada)"},
	{"central time", "Central Time (US & Canada)"},
	{"central standard time", "Central Time (US & Canada)"},
	{"us central", "Central Time (US & Canada)"},
	{"america/chicago", "Central Time (US & Canada)"},
	{"chicago", "Central Time (US & Canada)"},
	{"dallas", "Central Time (US & Canada)"},
	{"houston", "Central Time (US & Canada)"},
	{"est", "Eastern Time (US & Canada)"},
	{"edt", "Eastern Time (US & Canada)"},
	{"eastern time", "Eastern Time (US & Canada)"},
	{"eastern standard time", "Eastern Time (US & Canada)"},
	{"us eastern", "Eastern Time (US & Canada)"},
	{"america/new_york", "Eastern Time (US & Canada)"},
	{"new york", "Eastern Time (US & Canada)"},
	{"boston", "Eastern Time (US & Canada)"},
	{"miami", "Eastern Time (US & Canada)"},
	{"akst", "Alaska"},
	{"akdt", "Alaska"},
	{"america/anchorage", "Alaska"},
	{"anchorage", "Alaska"},
	{"hst", "Hawaii"},
	{"pacific/honolulu", "Hawaii"},
	{"honolulu", "Hawaii"},
	{"ast", "Atlantic Time (Canada)"},
	{"atlantic time", "Atlantic Time (Canada)"},
	{"america/halifax", "Atlantic Time (Canada)"},
	{"halifax", "Atlantic Time (Canada)"},
	{"nst", "Newfoundland"},
	{"america/st_johns", "Newfoundland"},
	{"america/toronto", "Eastern Time (US & Canada)"},
	{"toronto", "Eastern Time (US & Canada)"},
	{"america/vancouver", "Pacific Time (US & Canada)"},
	{"vancouver", "Pacific Time (US & Canada)"},
	{"america/mexico_city", "Mexico City"},
	{"america/bogota", "Bogota"},
	{"america/lima", "Lima"},
	{"america/caracas", "Caracas"},
	{"america/santiago", "Santiago"},
	{"america/sao_paulo", "Brasilia"},
	{"sao paulo", "Brasilia"},
	{"america/argentina/buenos_aires", "Buenos Aires"},
	{"america/montevideo", "Montevideo"},
	{"america/puerto_rico", "Puerto Rico"},

	// Europe and Africa
	{"gmt", "London"},
	{"greenwich mean time", "London"},
	{"bst", "London"},
	{"british summer time", "London"},
	{"europe/london", "London"},
	{"europe/dublin", "Dublin"},
	{"europe/lisbon", "Lisbon"},
	{"wet", "Lisbon"},
	{"cet", "Paris"},
	{"cest", "Paris"},
	{"central european time", "Paris"},
	{"europe/paris", "Paris"},
	{"europe/berlin", "Berlin"},
	{"europe/amsterdam", "Amsterdam"},
	{"europe/brussels", "Brussels"},
	{"europe/madrid", "Madrid"},
	{"europe/rome", "Rome"},
	{"europe/vienna", "Vienna"},
	{"europe/zurich", "Bern"},
	{"zurich", "Bern"},
	{"europe/stockholm", "Stockholm"},
	{"europe/copenhagen", "Copenhagen"},
	{"europe/oslo", "Copenhagen"},
	{"oslo", "Copenhagen"},
	{"europe/warsaw", "Warsaw"},
	{"europe/prague", "Prague"},
	{"europe/budapest", "Budapest"},
	{"eet", "Athens"},
	{"eastern european time", "Athens"},
	{"europe/athens", "Athens"},
	{"europe/bucharest", "Bucharest"},
	{"europe/helsinki", "Helsinki"},
	{"europe/kiev", "Kyiv"},
	{"kiev", "Kyiv"},
	{"europe/istanbul", "Istanbul"},
	{"europe/moscow", "Moscow"},
	{"msk", "Moscow"},
	{"africa/cairo", "Cairo"},
	{"africa/nairobi", "Nairobi"},
	{"africa/johannesburg", "Pretoria"},
	{"johannesburg", "Pretoria"},
	{"africa/lagos", "West Central Africa"},
	{"lagos", "West Central Africa"},
	{"africa/casablanca", "Casablanca"},
	{"asia/jerusalem", "Jerusalem"},
	{"tel aviv", "Jerusalem"},

	// Middle East and Asia
	{"asia/dubai", "Abu Dhabi"},
	{"dubai", "Abu Dhabi"},
	{"gst", "Abu Dhabi"},
	{"asia/riyadh", "Riyadh"},
	{"asia/baghdad", "Baghdad"},
	{"asia/tehran", "Tehran"},
	{"irst", "Tehran"},
	{"asia/karachi", "Karachi"},
	{"pkt", "Karachi"},
	{"ist", "New Delhi"},
	{"india standard time", "New Delhi"},
	{"asia/kolkata", "Kolkata"},
	{"asia/calcutta", "Kolkata"},
	{"calcutta", "Kolkata"},
	{"bangalore", "New Delhi"},
	{"delhi", "New Delhi"},
	{"asia/kathmandu", "Kathmandu"},
	{"asia/dhaka", "Dhaka"},
	{"asia/colombo", "Sri Jayawardenepura"},
	{"colombo", "Sri Jayawardenepura"},
	{"asia/bangkok", "Bangkok"},
	{"ict", "Bangkok"},
	{"asia/jakarta", "Jakarta"},
	{"asia/shanghai", "Beijing"},
	{"shanghai", "Beijing"},
	{"china standard time", "Beijing"},
	{"asia/hong_kong", "Hong Kong"},
	{"hkt", "Hong Kong"},
	{"asia/singapore", "Singapore"},
	{"sgt", "Singapore"},
	{"asia/kuala_lumpur", "Kuala Lumpur"},
	{"asia/taipei", "Taipei"},
	{"asia/seoul", "Seoul"},
	{"kst", "Seoul"},
	{"asia/tokyo", "Tokyo"},
	{"jst", "Tokyo"},
	{"japan standard time", "Tokyo"},
	{"asia/manila", "Taipei"},
	{"manila", "Taipei"},

	// Oceania and Pacific
	{"awst", "Perth"},
	{"australia/perth", "Perth"},
	{"acst", "Adelaide"},
	{"australia/adelaide", "Adelaide"},
	{"aest", "Sydney"},
	{"aedt", "Sydney"},
	{"australia/sydney", "Sydney"},
	{"australia/melbourne", "Melbourne"},
	{"australia/brisbane", "Brisbane"},
	{"australia/darwin", "Darwin"},
	{"australia/hobart", "Hobart"},
	{"nzst", "Auckland"},
	{"nzdt", "Auckland"},
	{"pacific/auckland", "Auckland"},
	{"pacific/fiji", "Fiji"},
	{"pacific/guam", "Guam"},
	{"pacific/apia", "Samoa"},

	// Generic
	{"utc", "UTC"},
	{"coordinated universal time", "UTC"},
	{"etc/utc", "UTC"},
	{"zulu", "UTC"},
}

// canonicalTimeZoneSet is the lowercase lookup index over CanonicalTimeZones.
var canonicalTimeZoneSet = func() map[string]string {
	m := make(map[string]string, len(CanonicalTimeZones))
	for _, tz := range CanonicalTimeZones {
		m[strings.ToLower(tz)] = tz
	}
	return m
}()

// timeZoneAliasIndex is the exact-match index over timeZoneAliases.
var timeZoneAliasIndex = func() map[string]string {
	m := make(map[string]string, len(timeZoneAliases))
	for _, a := range timeZoneAliases {
		if _, ok := m[a.key]; !ok {
			m[a.key] = a.canonical
		}
	}
	return m
}()

// CleanTimeZone resolves free-form zone text to a canonical label. Exact
// canonical match wins, then exact alias match, then substring containment
// in either direction over the alias keys in declaration order. Unresolved
// input is returned trimmed and unchanged for the validators to flag.
func CleanTimeZone(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)

	if canonical, ok := canonicalTimeZoneSet[lower]; ok {
		return canonical
	}
	if canonical, ok := timeZoneAliasIndex[lower]; ok {
		return canonical
	}
	for _, a := range timeZoneAliases {
		if strings.Contains(lower, a.key) || strings.Contains(a.key, lower) {
			return a.canonical
		}
	}
	return trimmed
}

// ValidateTimeZone reports whether the value is a canonical zone label,
// matched case-insensitively. No alias resolution happens here: validation
// runs after cleaning, so anything not canonical by now is invalid.
func ValidateTimeZone(s string) bool {
	_, ok := canonicalTimeZoneSet[strings.ToLower(strings.TrimSpace(s))]
	return ok
}
