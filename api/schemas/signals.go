package schemas

import "time"

// SignalType is one governance-relevant fact category about an asset.
type SignalType string

const (
	SignalOwnership     SignalType = "OWNERSHIP"
	SignalSemantics     SignalType = "SEMANTICS"
	SignalLineage       SignalType = "LINEAGE"
	SignalSensitivity   SignalType = "SENSITIVITY"
	SignalFreshness     SignalType = "FRESHNESS"
	SignalQuality       SignalType = "QUALITY"
	SignalCertification SignalType = "CERTIFICATION"
	SignalUsage         SignalType = "USAGE"
)

// AllSignalTypes lists the full signal taxonomy in extraction order.
var AllSignalTypes = []SignalType{
	SignalOwnership,
	SignalSemantics,
	SignalLineage,
	SignalSensitivity,
	SignalFreshness,
	SignalQuality,
	SignalCertification,
	SignalUsage,
}

// SignalSource distinguishes "checked and present" from "checked and
// missing". A signal entirely absent from an evidence slice is the third
// state: never checked. Downstream gap logic depends on keeping these apart,
// so the source must never be collapsed into the Present boolean.
type SignalSource string

const (
	SourceObserved    SignalSource = "<SYSTEM>"
	SourceNotObserved SignalSource = "NOT_OBSERVED"
)

// SignalEvidence is one extracted fact about one asset. Immutable.
type SignalEvidence struct {
	Type       SignalType   `json:"type"`
	Present    bool         `json:"present"`
	Source     SignalSource `json:"source"`
	Value      string       `json:"value,omitempty"`
	ObservedAt time.Time    `json:"observedAt,omitempty"`
}

// Quadrant classifies an asset by impact score x quality score.
type Quadrant string

const (
	// QuadrantFixFirst: high impact, low quality. Remediate these first.
	QuadrantFixFirst Quadrant = "fix_first"
	// QuadrantStrength: high impact, high quality.
	QuadrantStrength Quadrant = "strength"
	// QuadrantMaintain: low impact, high quality.
	QuadrantMaintain Quadrant = "maintain"
	// QuadrantDeprioritize: low impact, low quality.
	QuadrantDeprioritize Quadrant = "deprioritize"
	// QuadrantUnknown is used when either score is unavailable.
	QuadrantUnknown Quadrant = "unknown"
)

// quadrantThreshold splits both axes. Scores are on the 0-100 scale.
const quadrantThreshold = 50.0

// ClassifyQuadrant maps an impact/quality score pair to its quadrant.
// Negative inputs mean "score unavailable".
func ClassifyQuadrant(impact, quality float64) Quadrant {
	if impact < 0 || quality < 0 {
		return QuadrantUnknown
	}
	highImpact := impact >= quadrantThreshold
	highQuality := quality >= quadrantThreshold
	switch {
	case highImpact && !highQuality:
		return QuadrantFixFirst
	case highImpact && highQuality:
		return QuadrantStrength
	case !highImpact && highQuality:
		return QuadrantMaintain
	default:
		return QuadrantDeprioritize
	}
}

// AssetEvidence couples an asset with its extracted signals and the scores
// derived from them. QualityScore is the percentage of signals present;
// ImpactScore is a type-keyed heuristic.
type AssetEvidence struct {
	Asset        Asset            `json:"asset"`
	Signals      []SignalEvidence `json:"signals"`
	ImpactScore  float64          `json:"impactScore"`
	QualityScore float64          `json:"qualityScore"`
	Quadrant     Quadrant         `json:"quadrant"`
}

// RecomputeQuadrant refreshes the quadrant after either score changes.
func (e *AssetEvidence) RecomputeQuadrant() {
	e.Quadrant = ClassifyQuadrant(e.ImpactScore, e.QualityScore)
}

// Signal returns the evidence entry for the given type, or nil if that
// signal was never checked for this asset.
func (e *AssetEvidence) Signal(t SignalType) *SignalEvidence {
	for i := range e.Signals {
		if e.Signals[i].Type == t {
			return &e.Signals[i]
		}
	}
	return nil
}
