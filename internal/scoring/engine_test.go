package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/calder-v/metascope/api/schemas"
	"github.com/calder-v/metascope/internal/config"
)

// testContext returns a scoring context over the default configuration.
func testContext(t *testing.T) *Context {
	t.Helper()
	cfg := config.NewDefaultConfig()
	require.NoError(t, cfg.Scoring.Validate())
	return &Context{
		NowMs:         1_700_000_000_000,
		ConfigVersion: cfg.Scoring.Version,
		Config:        &cfg.Scoring,
	}
}

func fullyGovernedTable() *schemas.Asset {
	discoverable := true
	return &schemas.Asset{
		GUID:              "asset-1",
		QualifiedName:     "default/snowflake/prod/sales/orders",
		Name:              "orders",
		ConnectionName:    "snowflake-prod",
		TypeName:          schemas.AssetTable,
		UserDescription:   "Order fact table. One row per order line, refreshed hourly from the order service; includes fulfillment status, amounts and customer references for revenue reporting and operational dashboards across all storefronts worldwide.",
		OwnerUsers:        []string{"jordan.f"},
		CertificateStatus: "VERIFIED",
		Classifications:   []string{"PII"},
		MeaningNames:      []string{"Order"},
		IsDiscoverable:    &discoverable,
		HasLineage:        true,
		UpstreamCount:     3,
		DownstreamCount:   2,
		HasReadme:         true,
	}
}

func TestNewEngine(t *testing.T) {
	t.Run("rejects nil logger", func(t *testing.T) {
		_, err := NewEngine(nil, &StandardCompleteness{})
		assert.Error(t, err)
	})

	t.Run("rejects empty profile set", func(t *testing.T) {
		_, err := NewEngine(zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("rejects duplicate profile ids", func(t *testing.T) {
		_, err := NewEngine(zap.NewNop(), &Industry5D{}, &Industry5D{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate scoring profile id")
	})
}

func TestScoreAll_UnknownProfileID(t *testing.T) {
	engine, err := NewDefaultEngine(zap.NewNop())
	require.NoError(t, err)

	ctx := testContext(t)
	ctx.Config.ActiveProfiles = []string{"industry5d", "does_not_exist"}

	_, err = engine.ScoreAll(fullyGovernedTable(), ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no scoring profile registered for id "does_not_exist"`)
}

func TestScoreAll_Idempotent(t *testing.T) {
	engine, err := NewDefaultEngine(zap.NewNop())
	require.NoError(t, err)

	ctx := testContext(t)
	ctx.Config.ActiveProfiles = []string{ProfileStandardCompleteness, ProfileIndustry5D}
	asset := fullyGovernedTable()

	first, err := engine.ScoreAll(asset, ctx)
	require.NoError(t, err)
	second, err := engine.ScoreAll(asset, ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated scoring diverged (-first +second):\n%s", diff)
	}
}

func TestScoreAll_ResultsFollowActiveOrder(t *testing.T) {
	engine, err := NewDefaultEngine(zap.NewNop())
	require.NoError(t, err)

	ctx := testContext(t)
	ctx.Config.ActiveProfiles = []string{ProfileIndustry5D, ProfileStandardCompleteness}

	results, err := engine.ScoreAll(fullyGovernedTable(), ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, ProfileIndustry5D, results[0].ProfileID)
	assert.Equal(t, ProfileStandardCompleteness, results[1].ProfileID)
}

func TestScoreBatch(t *testing.T) {
	engine, err := NewDefaultEngine(zap.NewNop())
	require.NoError(t, err)

	ctx := testContext(t)
	assets := []schemas.Asset{
		*fullyGovernedTable(),
		{GUID: "asset-2", Name: "bare_table", TypeName: schemas.AssetTable},
	}

	results, err := engine.ScoreBatch(assets, ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Contains(t, results, "asset-1")
	require.Contains(t, results, "asset-2")

	for guid, profileResults := range results {
		for _, r := range profileResults {
			assert.GreaterOrEqual(t, r.Score, 0.0, "asset %s", guid)
			assert.LessOrEqual(t, r.Score, 100.0, "asset %s", guid)
			assert.Equal(t, guid, r.AssetGUID)
		}
	}
}

func TestScoreBatch_DuplicateGUIDKeepsLastAndWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	engine, err := NewDefaultEngine(zap.New(core))
	require.NoError(t, err)

	ctx := testContext(t)
	ctx.Config.ActiveProfiles = []string{ProfileStandardCompleteness}

	governed := *fullyGovernedTable()
	governed.GUID = "dup-1"
	bare := schemas.Asset{GUID: "dup-1", Name: "bare_table", TypeName: schemas.AssetTable}

	results, err := engine.ScoreBatch([]schemas.Asset{bare, governed}, ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// The later occurrence wins.
	require.Len(t, results["dup-1"], 1)
	assert.Equal(t, 100.0, results["dup-1"][0].Score)

	entries := logs.FilterMessageSnippet("Duplicate asset GUID").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "dup-1", entries[0].ContextMap()["guid"])
}
