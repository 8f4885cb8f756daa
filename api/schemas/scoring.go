package schemas

// Band is the categorical quality label derived from a numeric score.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
	BandCritical  Band = "critical"
)

// Rank orders bands from worst (0) to best (4), so a higher score always
// maps to a band with an equal or higher rank.
func (b Band) Rank() int {
	switch b {
	case BandExcellent:
		return 4
	case BandGood:
		return 3
	case BandFair:
		return 2
	case BandPoor:
		return 1
	default:
		return 0
	}
}

// Dimension names one quality dimension of the Industry5D rubric.
type Dimension string

const (
	DimensionCompleteness Dimension = "completeness"
	DimensionAccuracy     Dimension = "accuracy"
	DimensionTimeliness   Dimension = "timeliness"
	DimensionConsistency  Dimension = "consistency"
	DimensionUsability    Dimension = "usability"
)

// AllDimensions lists the five dimensions in their canonical order.
var AllDimensions = []Dimension{
	DimensionCompleteness,
	DimensionAccuracy,
	DimensionTimeliness,
	DimensionConsistency,
	DimensionUsability,
}

// CheckResult is one atomic evaluation within a scoring pass.
// Score is normalized to [0,1]; Weight and Points are rubric-dependent and
// optional. Immutable once created.
type CheckResult struct {
	ID      string  `json:"id"`
	Score   float64 `json:"score"`
	Weight  float64 `json:"weight,omitempty"`
	Points  float64 `json:"points,omitempty"`
	Details string  `json:"details,omitempty"`
}

// DimensionResult aggregates the checks of one quality dimension for one
// asset. Score is the weighted average of the constituent checks that apply
// to the asset's type, in [0,1].
type DimensionResult struct {
	Dimension Dimension     `json:"dimension"`
	Score     float64       `json:"score"`
	Checks    []CheckResult `json:"checks,omitempty"`
}

// ProfileScoreResult is the output of one scoring profile for one asset.
// Score is on the 0-100 scale; Band is a deterministic, monotonic function
// of Score against the configured thresholds.
type ProfileScoreResult struct {
	ProfileID     string            `json:"profileId"`
	AssetGUID     string            `json:"assetGuid"`
	Score         float64           `json:"score"`
	Band          Band              `json:"band"`
	Dimensions    []DimensionResult `json:"dimensions,omitempty"`
	ConfigVersion string            `json:"configVersion,omitempty"`
	OverrideScope string            `json:"overrideScope,omitempty"`
	// Note flags recoverable scoring conditions, e.g. an asset type with no
	// configured rubric. A zero score must never be silent about why.
	Note string `json:"note,omitempty"`
}
