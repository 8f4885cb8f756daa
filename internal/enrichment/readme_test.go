package enrichment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calder-v/metascope/api/schemas"
	"github.com/calder-v/metascope/internal/catalog"
)

func TestReadmeCache_Enrich(t *testing.T) {
	client := &mockCatalogClient{
		entityFunc: func(ctx context.Context, guid string) (*catalog.EntityResponse, error) {
			entity := catalog.Entity{GUID: guid}
			if guid == "with-readme" {
				entity.RelationshipAttributes = map[string]interface{}{
					"readme": map[string]interface{}{"guid": "readme-1"},
				}
			}
			return &catalog.EntityResponse{Entity: entity}, nil
		},
	}
	cache, err := NewReadmeCache(client, zap.NewNop(), testEnrichmentConfig())
	require.NoError(t, err)

	assets := []schemas.Asset{
		tableAsset("with-readme"),
		tableAsset("without-readme"),
		{GUID: "odd", Name: "odd", TypeName: schemas.AssetType("Dashboard")},
	}

	results := cache.Enrich(context.Background(), assets)

	assert.Equal(t, ReadmeResult{HasReadme: true}, results["with-readme"])
	assert.Equal(t, ReadmeResult{HasReadme: false}, results["without-readme"])
	assert.NotContains(t, results, "odd", "unknown types are skipped")
	assert.Equal(t, int64(2), client.entityCalls.Load())
}

func TestReadmeCache_NilReadmeRelationship(t *testing.T) {
	client := &mockCatalogClient{
		entityFunc: func(ctx context.Context, guid string) (*catalog.EntityResponse, error) {
			return &catalog.EntityResponse{Entity: catalog.Entity{
				GUID:                   guid,
				RelationshipAttributes: map[string]interface{}{"readme": nil},
			}}, nil
		},
	}
	cache, err := NewReadmeCache(client, zap.NewNop(), testEnrichmentConfig())
	require.NoError(t, err)

	results := cache.Enrich(context.Background(), []schemas.Asset{tableAsset("t-1")})
	assert.Equal(t, ReadmeResult{HasReadme: false}, results["t-1"],
		"an explicit null relationship is not a readme")
}

func TestReadmeCache_FailureFallbackNotCached(t *testing.T) {
	client := &mockCatalogClient{
		entityFunc: func(ctx context.Context, guid string) (*catalog.EntityResponse, error) {
			return nil, errors.New("catalog unavailable")
		},
	}
	cache, err := NewReadmeCache(client, zap.NewNop(), testEnrichmentConfig())
	require.NoError(t, err)

	results := cache.Enrich(context.Background(), []schemas.Asset{tableAsset("t-1")})
	assert.Equal(t, ReadmeResult{HasReadme: false}, results["t-1"])
	assert.Equal(t, 0, cache.CacheSize())
}

func TestReadmeCache_Apply(t *testing.T) {
	client := &mockCatalogClient{}
	cache, err := NewReadmeCache(client, zap.NewNop(), testEnrichmentConfig())
	require.NoError(t, err)

	assets := []schemas.Asset{tableAsset("t-1"), tableAsset("t-2")}
	cache.Apply(assets, map[string]ReadmeResult{"t-1": {HasReadme: true}})

	assert.True(t, assets[0].HasReadme)
	assert.False(t, assets[1].HasReadme)
}

func TestReadmeCache_CachedAcrossRuns(t *testing.T) {
	client := &mockCatalogClient{}
	cache, err := NewReadmeCache(client, zap.NewNop(), testEnrichmentConfig())
	require.NoError(t, err)

	assets := []schemas.Asset{tableAsset("t-1")}
	cache.Enrich(context.Background(), assets)
	cache.Enrich(context.Background(), assets)

	assert.Equal(t, int64(1), client.entityCalls.Load())
}
