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

// LineageResult is the cached lineage shape of one asset.
type LineageResult struct {
	Upstream   int  `json:"upstream"`
	Downstream int  `json:"downstream"`
	HasLineage bool `json:"hasLineage"`
}

// LineageCache resolves upstream/downstream edge counts for tabular assets.
// Cached entries are served without a network call; misses go through a
// bounded worker pool in batches, with concurrent requests for the same
// guid collapsed onto one in-flight fetch.
type LineageCache struct {
	client catalog.Client
	logger *zap.Logger
	store  *ttlStore[LineageResult]
	runner *runner

	flightMu sync.RWMutex
	flight   *singleflight.Group

	batchSize int
	depth     int
}

// NewLineageCache builds a cache over the given catalog client.
func NewLineageCache(client catalog.Client, logger *zap.Logger, cfg config.EnrichmentConfig) (*LineageCache, error) {
	if client == nil {
		return nil, errors.New("catalog client cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	batchSize := cfg.LineageBatchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	depth := cfg.LineageDepth
	if depth <= 0 {
		depth = 1
	}
	return &LineageCache{
		client:    client,
		logger:    logger.With(zap.String("component", "lineage_cache")),
		store:     newTTLStore[LineageResult](cfg.CacheTTL, cfg.CacheMaxEntries),
		runner:    newRunner(cfg.Concurrency),
		flight:    new(singleflight.Group),
		batchSize: batchSize,
		depth:     depth,
	}, nil
}

// Enrich resolves lineage for every eligible asset and returns the results
// keyed by guid. The returned map is complete only once Enrich returns;
// there is no ordering guarantee between individual fetches. Per-asset
// fetch failures substitute a conservative default and never abort the
// batch.
func (c *LineageCache) Enrich(ctx context.Context, assets []schemas.Asset) map[string]LineageResult {
	now := time.Now()
	results := make(map[string]LineageResult)
	var resultsMu sync.Mutex

	// Lineage only applies to row-level assets; containers are skipped
	// outright.
	var misses []*schemas.Asset
	for i := range assets {
		asset := &assets[i]
		if !asset.TypeName.Tabular() {
			continue
		}
		if cached, ok := c.store.get(asset.GUID, now); ok {
			results[asset.GUID] = cached
			continue
		}
		misses = append(misses, asset)
	}

	// Process misses in batches to bound memory, each batch through the
	// shared bounded pool.
	for start := 0; start < len(misses); start += c.batchSize {
		end := start + c.batchSize
		if end > len(misses) {
			end = len(misses)
		}
		batch := misses[start:end]

		c.runner.run(ctx, len(batch), func(ctx context.Context, i int) {
			asset := batch[i]
			result := c.fetchOne(ctx, asset)
			resultsMu.Lock()
			results[asset.GUID] = result
			resultsMu.Unlock()
		})
	}

	return results
}

// fetchOne resolves one asset's lineage through the in-flight group, so a
// concurrent request for the same guid awaits the first fetch instead of
// issuing a duplicate.
func (c *LineageCache) fetchOne(ctx context.Context, asset *schemas.Asset) LineageResult {
	c.flightMu.RLock()
	flight := c.flight
	c.flightMu.RUnlock()

	value, err, _ := flight.Do(asset.GUID, func() (interface{}, error) {
		resp, err := c.client.GetLineage(ctx, catalog.LineageRequest{
			GUID:      asset.GUID,
			Depth:     c.depth,
			Direction: catalog.DirectionBoth,
		})
		if err != nil {
			return nil, err
		}
		result := LineageResult{
			Upstream:   len(resp.Upstream.Edges),
			Downstream: len(resp.Downstream.Edges),
		}
		result.HasLineage = result.Upstream > 0 || result.Downstream > 0
		c.store.set(asset.GUID, result, time.Now())
		return result, nil
	})
	if err != nil {
		// Conservative default: trust the catalog's hasLineage flag for the
		// downstream side, claim nothing upstream. Failures are not cached,
		// so the next run retries.
		c.logger.Warn("Lineage fetch failed, using fallback",
			zap.String("guid", asset.GUID),
			zap.Error(err),
		)
		fallback := LineageResult{Upstream: 0, Downstream: 0, HasLineage: asset.HasLineage}
		if asset.HasLineage {
			fallback.Downstream = 1
		}
		return fallback
	}
	return value.(LineageResult)
}

// Apply copies resolved lineage facts onto the assets in place.
func (c *LineageCache) Apply(assets []schemas.Asset, results map[string]LineageResult) {
	for i := range assets {
		if result, ok := results[assets[i].GUID]; ok {
			assets[i].UpstreamCount = result.Upstream
			assets[i].DownstreamCount = result.Downstream
			assets[i].HasLineage = result.HasLineage
		}
	}
}

// CacheSize reports the number of cached entries. Test and metrics hook.
func (c *LineageCache) CacheSize() int {
	return c.store.size()
}

// ClearCache drops both the cached entries and the in-flight trackers.
func (c *LineageCache) ClearCache() {
	c.store.clear()
	c.flightMu.Lock()
	c.flight = new(singleflight.Group)
	c.flightMu.Unlock()
}
