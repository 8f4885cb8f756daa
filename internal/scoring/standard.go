package scoring

import (
	"fmt"

	"github.com/calder-v/metascope/api/schemas"
)

// StandardCompleteness scores an asset against the per-type rubric of
// weighted boolean checks. The final score is the sum of the point values
// of passing checks, on the 0-100 scale.
type StandardCompleteness struct{}

// ProfileStandardCompleteness is the registry id of this profile.
const ProfileStandardCompleteness = "standard_completeness"

func (*StandardCompleteness) ID() string { return ProfileStandardCompleteness }

// Score evaluates the rubric configured for the asset's type. A type
// without a rubric is a recoverable data condition: the result carries a
// zero score and critical band, with a note saying why.
func (*StandardCompleteness) Score(asset *schemas.Asset, ctx *Context) schemas.ProfileScoreResult {
	result := schemas.ProfileScoreResult{
		ProfileID:     ProfileStandardCompleteness,
		AssetGUID:     asset.GUID,
		ConfigVersion: ctx.ConfigVersion,
		OverrideScope: "default",
	}

	rubric, ok := ctx.Config.Completeness.Rubrics[asset.TypeName]
	if !ok {
		result.Score = 0
		result.Band = schemas.BandCritical
		result.Note = fmt.Sprintf("no completeness rubric configured for asset type %q", asset.TypeName)
		return result
	}

	checks := make([]schemas.CheckResult, 0, len(rubric))
	var total float64
	for _, def := range rubric {
		passed := completenessCheckPasses(def.ID, asset)
		check := schemas.CheckResult{
			ID:     def.ID,
			Points: def.Points,
			Weight: 1,
		}
		if passed {
			check.Score = 1
			total += def.Points
		}
		checks = append(checks, check)
	}

	result.Score = total
	result.Band = ScoreBand(total, ctx.Config.Bands)
	result.Dimensions = []schemas.DimensionResult{{
		Dimension: schemas.DimensionCompleteness,
		Score:     WeightedAverage01(checks),
		Checks:    checks,
	}}
	return result
}

// completenessCheckPasses evaluates one rubric check id against the asset.
// Unrecognized ids fail closed.
func completenessCheckPasses(id string, asset *schemas.Asset) bool {
	switch id {
	case "hasDescription":
		return asset.BestDescription() != ""
	case "hasOwner":
		return asset.Owned()
	case "hasCertification":
		return asset.Certified()
	case "hasClassification":
		return asset.Classified()
	case "hasGlossaryTerms":
		return asset.HasGlossaryTerms()
	case "hasReadme":
		return asset.HasReadme
	case "hasLineage":
		return asset.HasLineage || asset.UpstreamCount > 0 || asset.DownstreamCount > 0
	default:
		return false
	}
}
