package cmd

import (
	"context"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/calder-v/metascope/api/schemas"
	"github.com/calder-v/metascope/internal/catalog"
	"github.com/calder-v/metascope/internal/config"
	"github.com/calder-v/metascope/internal/enrichment"
	"github.com/calder-v/metascope/internal/gaps"
	"github.com/calder-v/metascope/internal/orchestrator"
	"github.com/calder-v/metascope/internal/plan"
	"github.com/calder-v/metascope/internal/scoring"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// loadAssets reads an asset array from a JSON file.
func loadAssets(path string) ([]schemas.Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset file %s: %w", path, err)
	}
	var assets []schemas.Asset
	if err := json.Unmarshal(data, &assets); err != nil {
		return nil, fmt.Errorf("failed to parse asset file %s: %w", path, err)
	}
	return assets, nil
}

// loadEvidence reads a pre-built evidence array from a JSON file.
func loadEvidence(path string) ([]schemas.AssetEvidence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read evidence file %s: %w", path, err)
	}
	var evidence []schemas.AssetEvidence
	if err := json.Unmarshal(data, &evidence); err != nil {
		return nil, fmt.Errorf("failed to parse evidence file %s: %w", path, err)
	}
	return evidence, nil
}

// noopLineage and noopReadme stand in for the enrichment caches when no
// catalog is configured. Assets keep whatever enrichment fields they were
// loaded with.
type noopLineage struct{}

func (noopLineage) Enrich(context.Context, []schemas.Asset) map[string]enrichment.LineageResult {
	return nil
}
func (noopLineage) Apply([]schemas.Asset, map[string]enrichment.LineageResult) {}

type noopReadme struct{}

func (noopReadme) Enrich(context.Context, []schemas.Asset) map[string]enrichment.ReadmeResult {
	return nil
}
func (noopReadme) Apply([]schemas.Asset, map[string]enrichment.ReadmeResult) {}

// buildOrchestrator wires the full component graph. When the catalog base
// URL is unset, enrichment degrades to a no-op and scoring runs on the
// asset file contents alone.
func buildOrchestrator(cfg *config.Config, logger *zap.Logger) (*orchestrator.Orchestrator, error) {
	var (
		lineage orchestrator.LineageEnricher = noopLineage{}
		readme  orchestrator.ReadmeEnricher  = noopReadme{}
	)
	if cfg.Catalog.BaseURL != "" {
		client, err := catalog.NewRESTClient(cfg.Catalog, logger)
		if err != nil {
			return nil, err
		}
		lc, err := enrichment.NewLineageCache(client, logger, cfg.Enrichment)
		if err != nil {
			return nil, err
		}
		rc, err := enrichment.NewReadmeCache(client, logger, cfg.Enrichment)
		if err != nil {
			return nil, err
		}
		lineage, readme = lc, rc
	} else {
		logger.Warn("catalog.base_url not set; enrichment disabled")
	}

	scorer, err := scoring.NewDefaultEngine(logger)
	if err != nil {
		return nil, err
	}
	gapEngine, err := gaps.NewEngine(logger)
	if err != nil {
		return nil, err
	}
	planEngine, err := plan.NewEngine(logger)
	if err != nil {
		return nil, err
	}

	return orchestrator.New(cfg, logger, lineage, readme, scorer, gapEngine, planEngine)
}
