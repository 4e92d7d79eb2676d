package cards

import "math"

// Range is a nullable (min, max) money interval.
type Range struct {
	Min *float64
	Max *float64
}

// IsNull reports whether the range carries no data.
func (r Range) IsNull() bool {
	return r.Min == nil && r.Max == nil
}

// Economics holds the computed cost outputs for one card.
type Economics struct {
	NetMin     *float64
	NetMax     *float64
	PaybackMin *float64
	PaybackMax *float64
	ROIReady   bool
}

// NormalizeRange makes min <= max hold: a lone bound is duplicated to both
// sides, a reversed pair is swapped, a fully null pair stays null. It is
// idempotent.
func NormalizeRange(min, max *float64) Range {
	if min == nil && max == nil {
		return Range{}
	}
	if min == nil {
		min = max
	}
	if max == nil {
		max = min
	}
	lo, hi := *min, *max
	if lo > hi {
		lo, hi = hi, lo
	}
	return Range{Min: &lo, Max: &hi}
}

// ComputeEconomics converts install-cost and annual-savings ranges into net
// cost and payback years. The incentive totals are accepted for contract
// completeness but intentionally left out of net cost and payback: V1 policy
// resolves incentives for display only.
func ComputeEconomics(installMin, installMax, savingsMin, savingsMax *float64, incentiveTotalMin, incentiveTotalMax float64) Economics {
	install := NormalizeRange(installMin, installMax)
	savings := NormalizeRange(savingsMin, savingsMax)

	var out Economics
	if !install.IsNull() {
		out.NetMin = clampZero(*install.Min)
		out.NetMax = clampZero(*install.Max)
	}

	out.PaybackMin, out.PaybackMax = payback(Range{Min: out.NetMin, Max: out.NetMax}, savings)
	out.ROIReady = out.NetMin != nil && out.NetMax != nil &&
		savings.Min != nil && savings.Max != nil &&
		*savings.Min > 0 && *savings.Max > 0 &&
		out.PaybackMin != nil && out.PaybackMax != nil
	return out
}

// payback pairs least cost with most savings for the best case and most cost
// with least savings for the worst case. Degenerate inputs (null ranges,
// zero or negative savings, non-finite quotients) yield a null pair.
func payback(net, savings Range) (*float64, *float64) {
	if net.IsNull() || savings.IsNull() {
		return nil, nil
	}
	if *savings.Min <= 0 || *savings.Max <= 0 {
		return nil, nil
	}

	best := *net.Min / *savings.Max
	worst := *net.Max / *savings.Min
	if math.IsNaN(best) || math.IsInf(best, 0) || math.IsNaN(worst) || math.IsInf(worst, 0) {
		return nil, nil
	}

	normalized := NormalizeRange(&best, &worst)
	return normalized.Min, normalized.Max
}

func clampZero(value float64) *float64 {
	if value < 0 {
		value = 0
	}
	return &value
}
