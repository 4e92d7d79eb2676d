package geo

import "strings"

// Scope modes. A rule has exactly one mode; unknown modes never match.
const (
	ModeAll      = "all"
	ModeStates   = "states"
	ModeZips     = "zips"
	ModePrefixes = "prefixes"
)

// Location identifies where a property sits for incentive scoping.
type Location struct {
	Zip   string `json:"zip"`
	State string `json:"state"`
}

// Scope describes the geographic reach of a rule.
type Scope struct {
	Mode        string   `json:"mode"`
	States      []string `json:"states,omitempty"`
	Zips        []string `json:"zips,omitempty"`
	ZipPrefixes []string `json:"zipPrefixes,omitempty"`
}

// Matches reports whether the scope covers the given location. It is a pure
// predicate: invalid or empty scope values yield false, never an error.
func Matches(scope Scope, loc Location) bool {
	switch strings.ToLower(strings.TrimSpace(scope.Mode)) {
	case ModeAll:
		return true
	case ModeStates:
		state := strings.ToUpper(strings.TrimSpace(loc.State))
		if state == "" {
			return false
		}
		for _, s := range scope.States {
			if strings.ToUpper(strings.TrimSpace(s)) == state {
				return true
			}
		}
		return false
	case ModeZips:
		zip := strings.TrimSpace(loc.Zip)
		if zip == "" {
			return false
		}
		for _, z := range scope.Zips {
			if strings.TrimSpace(z) == zip {
				return true
			}
		}
		return false
	case ModePrefixes:
		zip := strings.TrimSpace(loc.Zip)
		if zip == "" {
			return false
		}
		for _, p := range scope.ZipPrefixes {
			prefix := strings.TrimSpace(p)
			if prefix != "" && strings.HasPrefix(zip, prefix) {
				return true
			}
		}
		return false
	default:
		// Fail closed on unknown modes.
		return false
	}
}
