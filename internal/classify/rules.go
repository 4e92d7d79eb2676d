package classify

import (
	"strings"
	"unicode"
)

// The rule tables below are ordered: the first matching rule wins. The order
// is the tie-break policy, so new rules must be inserted with care.

type featureRule struct {
	substr string
	key    string
}

var featureRules = []featureRule{
	{"air conditioner", FeatureAirConditioner},
	{"central air", FeatureAirConditioner},
	{"heat pump", FeatureHeatingEquipment},
	{"furnace", FeatureHeatingEquipment},
	{"boiler", FeatureHeatingEquipment},
	{"heating", FeatureHeatingEquipment},
	{"water heater", FeatureWaterHeater},
	{"solar", FeatureSolarPV},
	{"attic insulation", "attic_insulation"},
	{"crawl space insulation", "crawlspace_insulation"},
	{"crawlspace insulation", "crawlspace_insulation"},
	{"wall insulation", "wall_insulation"},
	{"floor insulation", "floor_insulation"},
	{"duct", "duct_sealing"},
	{"air seal", "air_sealing"},
	{"air leakage", "air_sealing"},
	{"thermostat", "smart_thermostat"},
	{"window", "windows"},
	{"door", "doors"},
	{"ventilation", "ventilation"},
	{"lighting", "lighting"},
}

type intentRule struct {
	match func(string) bool
	key   string
}

var intentRules = []intentRule{
	{contains("professionally air seal"), "air_seal_professional"},
	{contains("insulate to r-"), "increase_r_value"},
	{allOf("replace", "energy star"), "upgrade_energy_star"},
	{contains("seal"), "seal"},
	{contains("insulat"), "insulate"},
	{contains("replace"), "replace"},
	{contains("upgrade"), "upgrade"},
	{contains("reduce"), "reduce"},
}

func contains(substr string) func(string) bool {
	return func(text string) bool {
		return strings.Contains(text, substr)
	}
}

func allOf(substrs ...string) func(string) bool {
	return func(text string) bool {
		for _, s := range substrs {
			if !strings.Contains(text, s) {
				return false
			}
		}
		return true
	}
}

// featureKeyFor matches normalized feature text against the ordered rules,
// falling back to a slug of the text itself.
func featureKeyFor(normalized string) string {
	for _, rule := range featureRules {
		if strings.Contains(normalized, rule.substr) {
			return rule.key
		}
	}
	return slugify(normalized)
}

// intentKeyFor matches normalized recommendation text against the ordered
// rules. Unmatched text yields IntentOther.
func intentKeyFor(normalized string) string {
	for _, rule := range intentRules {
		if rule.match(normalized) {
			return rule.key
		}
	}
	return IntentOther
}

// normalize collapses runs of whitespace to single spaces and lowercases.
func normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// slugify maps non-alphanumeric runs to single underscores.
func slugify(input string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "other"
	}
	return out
}
