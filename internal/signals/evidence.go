package signals

import "github.com/calder-v/metascope/api/schemas"

// Per-type impact scores on the 0-100 scale. Tables sit at the top because
// they are what downstream consumers actually query; containers matter less
// individually but still anchor hierarchy-level gaps.
const (
	impactTable            = 85
	impactMaterializedView = 80
	impactView             = 70
	impactSchema           = 60
	impactDatabase         = 55
	impactConnection       = 50
	impactUnknown          = 40
)

// ImpactScore returns the heuristic impact score for an asset type.
func ImpactScore(t schemas.AssetType) float64 {
	switch t {
	case schemas.AssetTable:
		return impactTable
	case schemas.AssetMaterializedView:
		return impactMaterializedView
	case schemas.AssetView:
		return impactView
	case schemas.AssetSchema:
		return impactSchema
	case schemas.AssetDatabase:
		return impactDatabase
	case schemas.AssetConnection:
		return impactConnection
	default:
		return impactUnknown
	}
}

// BuildEvidence extracts signals for every asset and derives the impact and
// quality scores plus the resulting quadrant. The quality score is the
// percentage of checked signals that are present; assets whose type checks
// no signals at all get a quality of zero.
func BuildEvidence(assets []schemas.Asset, nowMs int64) []schemas.AssetEvidence {
	out := make([]schemas.AssetEvidence, 0, len(assets))
	for i := range assets {
		asset := assets[i]
		extracted := Extract(&asset, nowMs)

		present := 0
		for _, s := range extracted {
			if s.Present {
				present++
			}
		}
		quality := 0.0
		if len(extracted) > 0 {
			quality = float64(present) / float64(len(extracted)) * 100
		}

		evidence := schemas.AssetEvidence{
			Asset:        asset,
			Signals:      extracted,
			ImpactScore:  ImpactScore(asset.TypeName),
			QualityScore: quality,
		}
		evidence.RecomputeQuadrant()
		out = append(out, evidence)
	}
	return out
}
