package geo

import "testing"

func TestMatches(t *testing.T) {
	cases := []struct {
		name  string
		scope Scope
		loc   Location
		want  bool
	}{
		{
			name:  "all_matches_empty_location",
			scope: Scope{Mode: ModeAll},
			loc:   Location{},
			want:  true,
		},
		{
			name:  "states_case_insensitive",
			scope: Scope{Mode: ModeStates, States: []string{"OR", "WA"}},
			loc:   Location{State: "or"},
			want:  true,
		},
		{
			name:  "states_trims_whitespace",
			scope: Scope{Mode: ModeStates, States: []string{" or "}},
			loc:   Location{State: "OR "},
			want:  true,
		},
		{
			name:  "states_no_state_never_matches",
			scope: Scope{Mode: ModeStates, States: []string{"OR", "WA"}},
			loc:   Location{Zip: "97123", State: ""},
			want:  false,
		},
		{
			name:  "zips_exact_member",
			scope: Scope{Mode: ModeZips, Zips: []string{"97123", "97124"}},
			loc:   Location{Zip: "97123"},
			want:  true,
		},
		{
			name:  "zips_no_partial_match",
			scope: Scope{Mode: ModeZips, Zips: []string{"971"}},
			loc:   Location{Zip: "97123"},
			want:  false,
		},
		{
			name:  "zips_empty_zip",
			scope: Scope{Mode: ModeZips, Zips: []string{"97123"}},
			loc:   Location{State: "OR"},
			want:  false,
		},
		{
			name:  "prefixes_match",
			scope: Scope{Mode: ModePrefixes, ZipPrefixes: []string{"980", "971"}},
			loc:   Location{Zip: "97123"},
			want:  true,
		},
		{
			name:  "prefixes_empty_prefix_ignored",
			scope: Scope{Mode: ModePrefixes, ZipPrefixes: []string{""}},
			loc:   Location{Zip: "97123"},
			want:  false,
		},
		{
			name:  "unknown_mode_fails_closed",
			scope: Scope{Mode: "county", States: []string{"OR"}},
			loc:   Location{Zip: "97123", State: "OR"},
			want:  false,
		},
		{
			name:  "empty_mode_fails_closed",
			scope: Scope{},
			loc:   Location{Zip: "97123", State: "OR"},
			want:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(tc.scope, tc.loc); got != tc.want {
				t.Fatalf("Matches(%+v, %+v) = %v, want %v", tc.scope, tc.loc, got, tc.want)
			}
		})
	}
}
