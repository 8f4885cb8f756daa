package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calder-v/metascope/api/schemas"
	"github.com/calder-v/metascope/internal/config"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"ai_rag", "impact_analysis"}, splitList("ai_rag, impact_analysis"))
	assert.Equal(t, []string{"one"}, splitList("one,,"))
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , "))
}

func TestLoadAssets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.json")
	payload := `[
		{"guid": "t-1", "name": "orders", "typeName": "Table", "ownerUsers": ["jordan.f"]},
		{"guid": "s-1", "name": "sales", "typeName": "Schema"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	assets, err := loadAssets(path)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, schemas.AssetTable, assets[0].TypeName)
	assert.Equal(t, []string{"jordan.f"}, assets[0].OwnerUsers)
}

func TestLoadAssets_Errors(t *testing.T) {
	_, err := loadAssets(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = loadAssets(path)
	assert.Error(t, err)
}

func TestLoadEvidence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evidence.json")
	payload := `[
		{
			"asset": {"guid": "t-1", "name": "orders", "typeName": "Table"},
			"signals": [{"type": "OWNERSHIP", "present": false, "source": "NOT_OBSERVED"}],
			"impactScore": 85,
			"qualityScore": 0,
			"quadrant": "fix_first"
		}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	evidence, err := loadEvidence(path)
	require.NoError(t, err)
	require.Len(t, evidence, 1)
	assert.Equal(t, schemas.QuadrantFixFirst, evidence[0].Quadrant)
	require.Len(t, evidence[0].Signals, 1)
	assert.Equal(t, schemas.SourceNotObserved, evidence[0].Signals[0].Source)
}

func TestBuildOrchestrator_NoCatalogConfigured(t *testing.T) {
	cfg := config.NewDefaultConfig()
	require.Empty(t, cfg.Catalog.BaseURL)

	orch, err := buildOrchestrator(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, orch)
}
