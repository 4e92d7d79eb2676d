package assumptions

import (
	"math/rand"
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }

func ts(v string) *time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestPickBestEmptyInput(t *testing.T) {
	if got := PickBest(nil); got != nil {
		t.Fatalf("PickBest(nil) = %+v, want nil", got)
	}
	if got := PickBest([]Record{}); got != nil {
		t.Fatalf("PickBest([]) = %+v, want nil", got)
	}
}

func TestPickBestLexicographicPriority(t *testing.T) {
	cases := []struct {
		name       string
		candidates []Record
		wantID     string
	}{
		{
			name: "more_filled_bounds_wins",
			candidates: []Record{
				{ID: "partial", InstallCostMin: f(100), InstallCostMax: f(200), UpdatedAt: ts("2025-06-01T00:00:00Z")},
				{ID: "full", InstallCostMin: f(90), InstallCostMax: f(210), AnnualSavingsMin: f(10), AnnualSavingsMax: f(20), UpdatedAt: ts("2020-01-01T00:00:00Z")},
			},
			wantID: "full",
		},
		{
			name: "install_pair_beats_scattered_bounds",
			candidates: []Record{
				{ID: "scattered", InstallCostMin: f(100), AnnualSavingsMin: f(10)},
				{ID: "install_pair", InstallCostMin: f(100), InstallCostMax: f(200)},
			},
			wantID: "install_pair",
		},
		{
			name: "savings_pair_beats_lone_bounds",
			candidates: []Record{
				{ID: "lone", InstallCostMin: f(100), AnnualSavingsMax: f(20)},
				{ID: "savings_pair", AnnualSavingsMin: f(10), AnnualSavingsMax: f(20)},
			},
			wantID: "savings_pair",
		},
		{
			name: "recency_breaks_equal_completeness",
			candidates: []Record{
				{ID: "old", InstallCostMin: f(100), InstallCostMax: f(200), UpdatedAt: ts("2024-01-01T00:00:00Z")},
				{ID: "new", InstallCostMin: f(110), InstallCostMax: f(190), UpdatedAt: ts("2025-01-01T00:00:00Z")},
			},
			wantID: "new",
		},
		{
			name: "missing_updated_at_scores_zero",
			candidates: []Record{
				{ID: "undated", InstallCostMin: f(100), InstallCostMax: f(200)},
				{ID: "dated", InstallCostMin: f(100), InstallCostMax: f(200), UpdatedAt: ts("2024-01-01T00:00:00Z")},
			},
			wantID: "dated",
		},
		{
			name: "exact_tie_keeps_first",
			candidates: []Record{
				{ID: "first", InstallCostMin: f(100), InstallCostMax: f(200), UpdatedAt: ts("2024-01-01T00:00:00Z")},
				{ID: "second", InstallCostMin: f(90), InstallCostMax: f(210), UpdatedAt: ts("2024-01-01T00:00:00Z")},
			},
			wantID: "first",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PickBest(tc.candidates)
			if got == nil {
				t.Fatalf("PickBest returned nil")
			}
			if got.ID != tc.wantID {
				t.Fatalf("PickBest picked %q, want %q", got.ID, tc.wantID)
			}
		})
	}
}

func TestPickBestShuffleIndependent(t *testing.T) {
	// Strictly dominating candidates: the winner must survive any ordering.
	records := []Record{
		{ID: "winner", InstallCostMin: f(100), InstallCostMax: f(200), AnnualSavingsMin: f(10), AnnualSavingsMax: f(20), UpdatedAt: ts("2025-01-01T00:00:00Z")},
		{ID: "three_bounds", InstallCostMin: f(100), InstallCostMax: f(200), AnnualSavingsMin: f(10)},
		{ID: "two_bounds", InstallCostMin: f(100), InstallCostMax: f(200)},
		{ID: "empty"},
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]Record(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := PickBest(shuffled)
		if got == nil || got.ID != "winner" {
			t.Fatalf("iteration %d: PickBest picked %+v, want winner", i, got)
		}
	}
}
