package enrichment

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/calder-v/metascope/api/schemas"
	"github.com/calder-v/metascope/internal/catalog"
	"github.com/calder-v/metascope/internal/config"
)

// ReadmeResult records whether an asset has a readme attached.
type ReadmeResult struct {
	HasReadme bool `json:"hasReadme"`
}

// ReadmeCache resolves readme presence via entity detail lookups. Same
// contract as the lineage cache (bounded pool, TTL store, in-flight
// de-duplication, per-asset fallback), minus the batching: entity lookups
// are cheap enough to queue all at once.
type ReadmeCache struct {
	client catalog.Client
	logger *zap.Logger
	store  *ttlStore[ReadmeResult]
	runner *runner

	flightMu sync.RWMutex
	flight   *singleflight.Group
}

// NewReadmeCache builds a cache over the given catalog client.
func NewReadmeCache(client catalog.Client, logger *zap.Logger, cfg config.EnrichmentConfig) (*ReadmeCache, error) {
	if client == nil {
		return nil, errors.New("catalog client cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &ReadmeCache{
		client: client,
		logger: logger.With(zap.String("component", "readme_cache")),
		store:  newTTLStore[ReadmeResult](cfg.CacheTTL, cfg.CacheMaxEntries),
		runner: newRunner(cfg.Concurrency),
		flight: new(singleflight.Group),
	}, nil
}

// Enrich resolves readme presence for every known-typed asset, keyed by
// guid. Fetch failures default to "no readme" and never abort the batch.
func (c *ReadmeCache) Enrich(ctx context.Context, assets []schemas.Asset) map[string]ReadmeResult {
	now := time.Now()
	results := make(map[string]ReadmeResult)
	var resultsMu sync.Mutex

	var misses []*schemas.Asset
	for i := range assets {
		asset := &assets[i]
		if !asset.TypeName.Known() {
			continue
		}
		if cached, ok := c.store.get(asset.GUID, now); ok {
			results[asset.GUID] = cached
			continue
		}
		misses = append(misses, asset)
	}

	c.runner.run(ctx, len(misses), func(ctx context.Context, i int) {
		asset := misses[i]
		result := c.fetchOne(ctx, asset.GUID)
		resultsMu.Lock()
		results[asset.GUID] = result
		resultsMu.Unlock()
	})

	return results
}

func (c *ReadmeCache) fetchOne(ctx context.Context, guid string) ReadmeResult {
	c.flightMu.RLock()
	flight := c.flight
	c.flightMu.RUnlock()

	value, err, _ := flight.Do(guid, func() (interface{}, error) {
		resp, err := c.client.GetEntityByGUID(ctx, guid)
		if err != nil {
			return nil, err
		}
		result := ReadmeResult{}
		if rel := resp.Entity.RelationshipAttributes; rel != nil {
			if readme, present := rel["readme"]; present && readme != nil {
				result.HasReadme = true
			}
		}
		c.store.set(guid, result, time.Now())
		return result, nil
	})
	if err != nil {
		c.logger.Warn("Readme fetch failed, using fallback",
			zap.String("guid", guid),
			zap.Error(err),
		)
		return ReadmeResult{HasReadme: false}
	}
	return value.(ReadmeResult)
}

// Apply copies resolved readme facts onto the assets in place.
func (c *ReadmeCache) Apply(assets []schemas.Asset, results map[string]ReadmeResult) {
	for i := range assets {
		if result, ok := results[assets[i].GUID]; ok {
			assets[i].HasReadme = result.HasReadme
		}
	}
}

// CacheSize reports the number of cached entries.
func (c *ReadmeCache) CacheSize() int {
	return c.store.size()
}

// ClearCache drops both the cached entries and the in-flight trackers.
func (c *ReadmeCache) ClearCache() {
	c.store.clear()
	c.flightMu.Lock()
	c.flight = new(singleflight.Group)
	c.flightMu.Unlock()
}
