package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-v/metascope/api/schemas"
	"github.com/calder-v/metascope/internal/config"
)

func dimensionByName(t *testing.T, result schemas.ProfileScoreResult, d schemas.Dimension) schemas.DimensionResult {
	t.Helper()
	for _, dim := range result.Dimensions {
		if dim.Dimension == d {
			return dim
		}
	}
	t.Fatalf("dimension %s not found in result", d)
	return schemas.DimensionResult{}
}

func TestIndustry5D_FullyGovernedAsset(t *testing.T) {
	profile := &Industry5D{}
	ctx := testContext(t)

	asset := fullyGovernedTable()
	asset.UpdateTime = ctx.NowMs
	asset.CertificateUpdatedAt = ctx.NowMs
	asset.SourceReadAt = ctx.NowMs

	result := profile.Score(asset, ctx)

	assert.Equal(t, ProfileIndustry5D, result.ProfileID)
	assert.Equal(t, "default", result.OverrideScope)
	assert.GreaterOrEqual(t, result.Score, 80.0)
	assert.LessOrEqual(t, result.Score, 100.0)
	assert.Equal(t, schemas.BandExcellent, result.Band)
	require.Len(t, result.Dimensions, 5)

	for _, dim := range result.Dimensions {
		assert.GreaterOrEqual(t, dim.Score, 0.0, "dimension %s", dim.Dimension)
		assert.LessOrEqual(t, dim.Score, 1.0, "dimension %s", dim.Dimension)
	}
}

func TestIndustry5D_DiscoverabilityCap(t *testing.T) {
	profile := &Industry5D{}
	ctx := testContext(t)

	hidden := false
	asset := fullyGovernedTable()
	asset.IsDiscoverable = &hidden
	asset.PopularityScore = 90
	asset.ViewScore = 90
	asset.StarCount = 40

	result := profile.Score(asset, ctx)
	usability := dimensionByName(t, result, schemas.DimensionUsability)

	assert.LessOrEqual(t, usability.Score, ctx.Config.Usability.DiscoverabilityCap,
		"explicitly hidden assets must not exceed the usability ceiling")

	// The cap applies to the dimension, not the individual checks.
	for _, check := range usability.Checks {
		if check.ID == "descriptionQuality" {
			assert.Greater(t, check.Score, ctx.Config.Usability.DiscoverabilityCap)
		}
	}
}

func TestIndustry5D_DiscoverabilityNilIsNotACap(t *testing.T) {
	profile := &Industry5D{}
	ctx := testContext(t)

	asset := fullyGovernedTable()
	asset.IsDiscoverable = nil
	asset.PopularityScore = 90
	asset.ViewScore = 90
	asset.StarCount = 40

	result := profile.Score(asset, ctx)
	usability := dimensionByName(t, result, schemas.DimensionUsability)
	assert.Greater(t, usability.Score, ctx.Config.Usability.DiscoverabilityCap,
		"an absent discoverability flag must not trigger the cap")
}

func TestIndustry5D_CertificationStrength(t *testing.T) {
	cases := []struct {
		status string
		want   float64
	}{
		{"VERIFIED", 1.0},
		{"verified", 1.0},
		{" Draft ", 0.6},
		{"DEPRECATED", 0.0},
		{"", 0.0},
		{"SOMETHING_ELSE", 0.0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, certificationStrength(tc.status), "status=%q", tc.status)
	}
}

func TestIndustry5D_NamingCompliance(t *testing.T) {
	ctx := testContext(t)

	t.Run("short names score zero", func(t *testing.T) {
		asset := &schemas.Asset{Name: "ab"}
		assert.Equal(t, 0.0, namingCompliance(asset, ctx))
	})

	t.Run("no required patterns means compliant", func(t *testing.T) {
		asset := &schemas.Asset{Name: "orders"}
		assert.Equal(t, 1.0, namingCompliance(asset, ctx))
	})

	t.Run("fraction of matched patterns", func(t *testing.T) {
		cfg := *ctx.Config
		cfg.Naming.RequiredPatterns = []string{`^[a-z_]+$`, `^dim_|^fct_`}
		require.NoError(t, cfg.Validate())
		patternCtx := &Context{NowMs: ctx.NowMs, ConfigVersion: ctx.ConfigVersion, Config: &cfg}

		asset := &schemas.Asset{Name: "orders"}
		assert.InDelta(t, 0.5, namingCompliance(asset, patternCtx), 1e-9)

		asset.Name = "fct_orders"
		assert.Equal(t, 1.0, namingCompliance(asset, patternCtx))
	})
}

func TestIndustry5D_TimelinessUsageRecencyOnlyForTables(t *testing.T) {
	ctx := testContext(t)

	schema := &schemas.Asset{GUID: "s", Name: "sales", TypeName: schemas.AssetSchema}
	dim := scoreTimeliness5D(schema, ctx)
	for _, check := range dim.Checks {
		if check.ID == "usageRecency" {
			assert.Equal(t, 1.0, check.Score, "usage recency is not meaningful for containers")
		}
	}

	table := &schemas.Asset{GUID: "t", Name: "orders", TypeName: schemas.AssetTable}
	dim = scoreTimeliness5D(table, ctx)
	for _, check := range dim.Checks {
		if check.ID == "usageRecency" {
			assert.Equal(t, 0.0, check.Score, "a table never read scores zero usage recency")
		}
	}
}

func TestIndustry5D_WeightOverrides(t *testing.T) {
	ctx := testContext(t)
	cfg := *ctx.Config
	cfg.WeightOverrides = map[string]config.DimensionWeights{
		"domain:dom-1":              {Completeness: 1},
		"connection:snowflake-prod": {Accuracy: 1},
		"type:Table":                {Usability: 1},
	}
	require.NoError(t, cfg.Validate())
	overrideCtx := &Context{NowMs: ctx.NowMs, ConfigVersion: ctx.ConfigVersion, Config: &cfg}

	profile := &Industry5D{}

	asset := fullyGovernedTable()
	asset.DomainGUIDs = []string{"dom-1"}
	assert.Equal(t, "domain:dom-1", profile.Score(asset, overrideCtx).OverrideScope)

	asset.DomainGUIDs = nil
	assert.Equal(t, "connection:snowflake-prod", profile.Score(asset, overrideCtx).OverrideScope)

	asset.ConnectionName = ""
	assert.Equal(t, "type:Table", profile.Score(asset, overrideCtx).OverrideScope)
}

func TestIndustry5D_BandMatchesRoundedScore(t *testing.T) {
	ctx := testContext(t)
	cfg := *ctx.Config
	// Skew the weights so the unrounded overall lands just below the
	// excellent threshold while the reported one-decimal score sits
	// exactly on it.
	cfg.WeightOverrides = map[string]config.DimensionWeights{
		"type:Schema": {Completeness: 1, Accuracy: 0.001},
	}
	require.NoError(t, cfg.Validate())
	boundaryCtx := &Context{NowMs: ctx.NowMs, ConfigVersion: ctx.ConfigVersion, Config: &cfg}

	// Completeness 4/5 (no owner), accuracy (0.6 + 1 + 0)/3: the weighted
	// overall is ~79.973, which reports as 80.0.
	asset := &schemas.Asset{
		GUID:              "boundary-1",
		Name:              "sales",
		TypeName:          schemas.AssetSchema,
		Description:       "Sales reporting schema.",
		CertificateStatus: "DRAFT",
		Classifications:   []string{"PII"},
		MeaningNames:      []string{"Revenue"},
	}

	result := (&Industry5D{}).Score(asset, boundaryCtx)

	require.Equal(t, 80.0, result.Score)
	assert.Equal(t, schemas.BandExcellent, result.Band,
		"the band must agree with the reported score at a threshold")
	assert.Equal(t, result.Band, ScoreBand(result.Score, boundaryCtx.Config.Bands))
}

func TestIndustry5D_UnknownTypeGetsNote(t *testing.T) {
	profile := &Industry5D{}
	ctx := testContext(t)

	asset := &schemas.Asset{GUID: "x", Name: "mystery", TypeName: schemas.AssetType("Widget")}
	result := profile.Score(asset, ctx)
	assert.Contains(t, result.Note, "unrecognized asset type")
}
