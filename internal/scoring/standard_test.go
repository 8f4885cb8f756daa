package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-v/metascope/api/schemas"
)

func TestStandardCompleteness_AllChecksPass(t *testing.T) {
	profile := &StandardCompleteness{}
	ctx := testContext(t)

	result := profile.Score(fullyGovernedTable(), ctx)

	assert.Equal(t, ProfileStandardCompleteness, result.ProfileID)
	assert.Equal(t, 100.0, result.Score, "all rubric checks passing must sum to 100")
	assert.Equal(t, schemas.BandExcellent, result.Band)
	assert.Empty(t, result.Note)

	require.Len(t, result.Dimensions, 1)
	dim := result.Dimensions[0]
	assert.Equal(t, schemas.DimensionCompleteness, dim.Dimension)
	assert.Equal(t, 1.0, dim.Score)
	for _, check := range dim.Checks {
		assert.Equal(t, 1.0, check.Score, "check %s should pass", check.ID)
	}
}

func TestStandardCompleteness_EmptyAsset(t *testing.T) {
	profile := &StandardCompleteness{}
	ctx := testContext(t)
	asset := &schemas.Asset{GUID: "bare", Name: "bare", TypeName: schemas.AssetTable}

	result := profile.Score(asset, ctx)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, schemas.BandCritical, result.Band)
}

func TestStandardCompleteness_PartialRubric(t *testing.T) {
	profile := &StandardCompleteness{}
	ctx := testContext(t)
	asset := &schemas.Asset{
		GUID:        "partial",
		Name:        "partial",
		TypeName:    schemas.AssetTable,
		Description: "harvested description",
		OwnerGroups: []string{"data-platform"},
	}

	// hasDescription (20) + hasOwner (20) out of the default tabular rubric.
	result := profile.Score(asset, ctx)
	assert.Equal(t, 40.0, result.Score)
	assert.Equal(t, schemas.BandFair, result.Band)
}

func TestStandardCompleteness_ContainerRubric(t *testing.T) {
	profile := &StandardCompleteness{}
	ctx := testContext(t)
	asset := &schemas.Asset{
		GUID:        "db-1",
		Name:        "warehouse",
		TypeName:    schemas.AssetDatabase,
		Description: "main warehouse",
		OwnerUsers:  []string{"casey.r"},
	}

	// Containers use the redistributed rubric: description 30 + owner 30.
	result := profile.Score(asset, ctx)
	assert.Equal(t, 60.0, result.Score)
	assert.Equal(t, schemas.BandGood, result.Band)
}

func TestStandardCompleteness_MissingRubric(t *testing.T) {
	profile := &StandardCompleteness{}
	ctx := testContext(t)
	asset := &schemas.Asset{GUID: "odd", Name: "odd", TypeName: schemas.AssetType("Dashboard")}

	result := profile.Score(asset, ctx)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, schemas.BandCritical, result.Band)
	assert.Contains(t, result.Note, "no completeness rubric")
	assert.Empty(t, result.Dimensions)
}
