package scoring

import (
	"strings"

	"github.com/calder-v/metascope/api/schemas"
)

// Industry5D scores an asset across five weighted quality dimensions:
// completeness, accuracy, timeliness, consistency and usability. Each
// dimension averages a fixed check set filtered to the checks that apply to
// the asset's type; the dimension scores are then weighted into a single
// 0-100 overall score using the configured (and possibly overridden)
// dimension weights.
type Industry5D struct{}

// ProfileIndustry5D is the registry id of this profile.
const ProfileIndustry5D = "industry5d"

func (*Industry5D) ID() string { return ProfileIndustry5D }

// Score runs the five dimensions and combines them. The result is rounded
// to one decimal place on the 0-100 scale.
func (*Industry5D) Score(asset *schemas.Asset, ctx *Context) schemas.ProfileScoreResult {
	weights, scope := ctx.Config.WeightsFor(asset)

	dims := []schemas.DimensionResult{
		scoreCompleteness5D(asset),
		scoreAccuracy5D(asset, ctx),
		scoreTimeliness5D(asset, ctx),
		scoreConsistency5D(asset),
		scoreUsability5D(asset, ctx),
	}

	var weightedSum, weightTotal float64
	for _, dim := range dims {
		w := weights.For(dim.Dimension)
		weightedSum += dim.Score * w
		weightTotal += w
	}
	overall := 0.0
	if weightTotal > 0 {
		overall = Clamp01(weightedSum/weightTotal) * 100
	}

	// Band the rounded value so the reported score and band always agree
	// at the threshold boundaries.
	score := Round1(overall)

	result := schemas.ProfileScoreResult{
		ProfileID:     ProfileIndustry5D,
		AssetGUID:     asset.GUID,
		Score:         score,
		Band:          ScoreBand(score, ctx.Config.Bands),
		Dimensions:    dims,
		ConfigVersion: ctx.ConfigVersion,
		OverrideScope: scope,
	}
	if !asset.TypeName.Known() {
		result.Note = "unrecognized asset type " + string(asset.TypeName) + "; only type-agnostic checks applied"
	}
	return result
}

func boolScore(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

// scoreCompleteness5D: presence of the core governance metadata. Readme and
// lineage only apply to tabular assets.
func scoreCompleteness5D(asset *schemas.Asset) schemas.DimensionResult {
	checks := []schemas.CheckResult{
		{ID: "hasDescription", Score: boolScore(asset.BestDescription() != ""), Weight: 1},
		{ID: "hasOwner", Score: boolScore(asset.Owned()), Weight: 1},
		{ID: "hasCertification", Score: boolScore(asset.Certified()), Weight: 1},
		{ID: "hasClassification", Score: boolScore(asset.Classified()), Weight: 1},
		{ID: "hasGlossaryTerms", Score: boolScore(asset.HasGlossaryTerms()), Weight: 1},
	}
	if asset.TypeName.Tabular() {
		checks = append(checks,
			schemas.CheckResult{ID: "hasReadme", Score: boolScore(asset.HasReadme), Weight: 1},
			schemas.CheckResult{ID: "hasLineage", Score: boolScore(asset.HasLineage || asset.FullLineage()), Weight: 1},
		)
	}
	return schemas.DimensionResult{
		Dimension: schemas.DimensionCompleteness,
		Score:     WeightedAverage01(checks),
		Checks:    checks,
	}
}

// certificationStrength maps the certificate status to a trust score.
// Anything unrecognized scores like an absent certificate.
func certificationStrength(status string) float64 {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "VERIFIED":
		return 1.0
	case "DRAFT":
		return 0.6
	case "DEPRECATED":
		return 0.0
	default:
		return 0.0
	}
}

// namingCompliance scores the asset name against the configured patterns:
// 0 for empty or too-short names, 1 when no patterns are required,
// otherwise the fraction of patterns the name matches. The patterns were
// compiled at config validation, so evaluation here cannot fail.
func namingCompliance(asset *schemas.Asset, ctx *Context) float64 {
	name := strings.TrimSpace(asset.Name)
	if name == "" || len(name) < ctx.Config.Naming.MinLength {
		return 0
	}
	patterns := ctx.Config.Naming.Compiled()
	if len(patterns) == 0 {
		return 1
	}
	matched := 0
	for _, re := range patterns {
		if re.MatchString(name) {
			matched++
		}
	}
	return float64(matched) / float64(len(patterns))
}

func scoreAccuracy5D(asset *schemas.Asset, ctx *Context) schemas.DimensionResult {
	checks := []schemas.CheckResult{
		{ID: "certificationStrength", Score: certificationStrength(asset.CertificateStatus), Weight: 1, Details: asset.CertificateStatus},
		{ID: "namingCompliance", Score: namingCompliance(asset, ctx), Weight: 1},
		{ID: "ownershipAccountability", Score: boolScore(asset.Owned()), Weight: 1},
	}
	return schemas.DimensionResult{
		Dimension: schemas.DimensionAccuracy,
		Score:     WeightedAverage01(checks),
		Checks:    checks,
	}
}

// scoreTimeliness5D runs three independent recency clocks through the
// banded step function. Usage recency is forced to 1.0 for anything that is
// not a Table: usage is not meaningful for containers.
func scoreTimeliness5D(asset *schemas.Asset, ctx *Context) schemas.DimensionResult {
	bands := ctx.Config.Timeliness

	recency := func(thenMs int64) float64 {
		days, ok := DaysSince(ctx.NowMs, thenMs)
		if !ok {
			return 0
		}
		return BandScore(days, bands)
	}

	usageRecency := 1.0
	if asset.TypeName == schemas.AssetTable {
		usageRecency = recency(asset.SourceReadAt)
	}

	checks := []schemas.CheckResult{
		{ID: "metadataFreshness", Score: recency(asset.UpdateTime), Weight: 1},
		{ID: "certificationAge", Score: recency(asset.CertificateUpdatedAt), Weight: 1},
		{ID: "usageRecency", Score: usageRecency, Weight: 1},
	}
	return schemas.DimensionResult{
		Dimension: schemas.DimensionTimeliness,
		Score:     WeightedAverage01(checks),
		Checks:    checks,
	}
}

// domainGlossaryAlignment penalizes domain membership without semantic
// enrichment. Not belonging to a domain is fine; belonging to one while
// carrying no glossary terms is not.
func domainGlossaryAlignment(asset *schemas.Asset) float64 {
	if !asset.HasDomain() {
		return 1
	}
	return boolScore(asset.HasGlossaryTerms())
}

func scoreConsistency5D(asset *schemas.Asset) schemas.DimensionResult {
	checks := []schemas.CheckResult{
		{ID: "domainGlossaryAlignment", Score: domainGlossaryAlignment(asset), Weight: 1},
		{ID: "classificationConsistency", Score: boolScore(asset.Classified()), Weight: 1},
		{ID: "hierarchyConsistency", Score: boolScore(asset.QualifiedName != "" && asset.ConnectionName != ""), Weight: 1},
	}
	return schemas.DimensionResult{
		Dimension: schemas.DimensionConsistency,
		Score:     WeightedAverage01(checks),
		Checks:    checks,
	}
}

// scoreUsability5D combines description quality, a searchability proxy and
// a log-normalized engagement score. An explicit isDiscoverable=false puts
// a hard ceiling on the dimension score, not on the individual checks.
func scoreUsability5D(asset *schemas.Asset, ctx *Context) schemas.DimensionResult {
	cfg := ctx.Config.Usability

	descQuality := SaturatingLengthScore(asset.BestDescription(), cfg.DescriptionTargetLen)
	if ContainsBlacklist(asset.BestDescription(), cfg.PlaceholderPhrases) {
		descQuality = 0
	}

	searchability := (boolScore(asset.BestDescription() != "") +
		boolScore(asset.HasGlossaryTerms()) +
		boolScore(asset.Classified())) / 3

	engagement := (LogNormalize(asset.PopularityScore, cfg.MaxPopularity) +
		LogNormalize(asset.ViewScore, cfg.MaxViewScore) +
		LogNormalize(float64(asset.StarCount), cfg.MaxStarCount)) / 3

	checks := []schemas.CheckResult{
		{ID: "descriptionQuality", Score: descQuality, Weight: 1},
		{ID: "searchabilityProxy", Score: searchability, Weight: 1},
		{ID: "engagement", Score: engagement, Weight: 1},
	}

	score := WeightedAverage01(checks)
	if asset.IsDiscoverable != nil && !*asset.IsDiscoverable && score > cfg.DiscoverabilityCap {
		score = cfg.DiscoverabilityCap
	}
	return schemas.DimensionResult{
		Dimension: schemas.DimensionUsability,
		Score:     score,
		Checks:    checks,
	}
}
