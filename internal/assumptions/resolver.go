package assumptions

// candidateScore is the lexicographic ranking key for PickBest.
type candidateScore struct {
	filled         int
	hasInstallBoth int
	hasSavingsBoth int
	ts             int64
}

// PickBest deterministically selects the most complete, most recent record
// from the candidates. Priority: count of filled cost/savings bounds, then a
// complete install range, then a complete savings range, then recency of
// updated_at. Exact ties keep the earliest candidate (stable first-wins).
// Empty input returns nil.
func PickBest(candidates []Record) *Record {
	var best *Record
	var bestScore candidateScore
	for i := range candidates {
		score := scoreOf(candidates[i])
		if best == nil || beats(score, bestScore) {
			best = &candidates[i]
			bestScore = score
		}
	}
	return best
}

func scoreOf(record Record) candidateScore {
	var score candidateScore
	for _, bound := range []*float64{record.InstallCostMin, record.InstallCostMax, record.AnnualSavingsMin, record.AnnualSavingsMax} {
		if bound != nil {
			score.filled++
		}
	}
	if record.InstallCostMin != nil && record.InstallCostMax != nil {
		score.hasInstallBoth = 1
	}
	if record.AnnualSavingsMin != nil && record.AnnualSavingsMax != nil {
		score.hasSavingsBoth = 1
	}
	if record.UpdatedAt != nil {
		score.ts = record.UpdatedAt.Unix()
	}
	return score
}

// beats reports whether a strictly outranks b.
func beats(a, b candidateScore) bool {
	if a.filled != b.filled {
		return a.filled > b.filled
	}
	if a.hasInstallBoth != b.hasInstallBoth {
		return a.hasInstallBoth > b.hasInstallBoth
	}
	if a.hasSavingsBoth != b.hasSavingsBoth {
		return a.hasSavingsBoth > b.hasSavingsBoth
	}
	return a.ts > b.ts
}
