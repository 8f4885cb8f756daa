package scoring

import (
	"math"
	"strings"

	"github.com/calder-v/metascope/api/schemas"
	"github.com/calder-v/metascope/internal/config"
)

// Pure numeric helpers shared by the scoring profiles. None of them can
// fail: degenerate inputs (NaN, Inf, zero weights, empty text) always map
// to a defined value, never a panic.

// Clamp01 clamps x to [0,1]. NaN and infinities collapse to 0.
func Clamp01(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// DaysSince returns the age in days of an epoch-millisecond timestamp.
// ok is false when the timestamp is unset (zero). Timestamps in the future
// clamp to an age of 0.
func DaysSince(nowMs, thenMs int64) (days float64, ok bool) {
	if thenMs == 0 {
		return 0, false
	}
	deltaMs := nowMs - thenMs
	if deltaMs < 0 {
		return 0, true
	}
	return float64(deltaMs) / float64(24*60*60*1000), true
}

// BandScore maps an age in days onto the five-tier recency step function.
// The thresholds are configuration, injected by the caller.
func BandScore(days float64, bands config.TimelinessBands) float64 {
	switch {
	case days <= float64(bands.FreshDays):
		return 1.0
	case days <= float64(bands.RecentDays):
		return 0.8
	case days <= float64(bands.AgingDays):
		return 0.6
	case days <= float64(bands.StaleDays):
		return 0.3
	default:
		return 0.0
	}
}

// SaturatingLengthScore scores text length against a target, saturating at
// 1. Empty or whitespace-only text scores 0.
func SaturatingLengthScore(text string, target int) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || target <= 0 {
		return 0
	}
	return math.Min(1, float64(len(trimmed))/float64(target))
}

// ContainsBlacklist reports whether text contains any of the phrases,
// case-insensitively.
func ContainsBlacklist(text string, phrases []string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

// ScoreBand maps a 0-100 score to a band by descending threshold
// comparison. Total: anything below the poor threshold is critical.
func ScoreBand(score100 float64, thresholds config.BandThresholds) schemas.Band {
	switch {
	case score100 >= thresholds.Excellent:
		return schemas.BandExcellent
	case score100 >= thresholds.Good:
		return schemas.BandGood
	case score100 >= thresholds.Fair:
		return schemas.BandFair
	case score100 >= thresholds.Poor:
		return schemas.BandPoor
	default:
		return schemas.BandCritical
	}
}

// WeightedAverage01 computes the weighted average of the check scores,
// clamped to [0,1]. A non-positive total weight yields 0 rather than a
// division by zero.
func WeightedAverage01(checks []schemas.CheckResult) float64 {
	var totalScore, totalWeight float64
	for _, check := range checks {
		totalScore += check.Score * check.Weight
		totalWeight += check.Weight
	}
	if totalWeight <= 0 {
		return 0
	}
	return Clamp01(totalScore / totalWeight)
}

// LogNormalize maps value into [0,1] on a log1p scale against max, so early
// engagement counts move the score more than late ones. Non-positive max or
// value yields 0.
func LogNormalize(value, max float64) float64 {
	if max <= 0 || value <= 0 {
		return 0
	}
	return Clamp01(math.Log1p(value) / math.Log1p(max))
}

// Round1 rounds to one decimal place. Final profile scores on the 0-100
// scale are reported at this precision.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
