// Package orchestrator manages the high-level lifecycle of a scoring run
// and a planning run. It is injected with fully configured components via
// interfaces, keeping it decoupled and testable.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/calder-v/metascope/api/schemas"
	"github.com/calder-v/metascope/internal/config"
	"github.com/calder-v/metascope/internal/enrichment"
	"github.com/calder-v/metascope/internal/scoring"
	"github.com/calder-v/metascope/internal/signals"
)

// LineageEnricher supplies lineage facts for a batch of assets.
type LineageEnricher interface {
	Enrich(ctx context.Context, assets []schemas.Asset) map[string]enrichment.LineageResult
	Apply(assets []schemas.Asset, results map[string]enrichment.LineageResult)
}

// ReadmeEnricher supplies readme facts for a batch of assets.
type ReadmeEnricher interface {
	Enrich(ctx context.Context, assets []schemas.Asset) map[string]enrichment.ReadmeResult
	Apply(assets []schemas.Asset, results map[string]enrichment.ReadmeResult)
}

// Scorer evaluates a batch of assets against all registered profiles.
type Scorer interface {
	ScoreBatch(assets []schemas.Asset, ctx *scoring.Context) (map[string][]schemas.ProfileScoreResult, error)
}

// GapDetector finds missing required signals for selected capabilities.
type GapDetector interface {
	Detect(evidence []schemas.AssetEvidence, capabilityIDs []string) ([]schemas.Gap, error)
}

// PlanBuilder assembles a remediation plan from gaps.
type PlanBuilder interface {
	Build(detected []schemas.Gap) *schemas.RemediationPlan
}

// Orchestrator wires enrichment into scoring, and signal extraction into
// gap detection and planning.
type Orchestrator struct {
	cfg     *config.Config
	logger  *zap.Logger
	lineage LineageEnricher
	readme  ReadmeEnricher
	scorer  Scorer
	gaps    GapDetector
	planner PlanBuilder
}

// New creates an Orchestrator with its dependencies provided as interfaces.
func New(
	cfg *config.Config,
	logger *zap.Logger,
	lineage LineageEnricher,
	readme ReadmeEnricher,
	scorer Scorer,
	gaps GapDetector,
	planner PlanBuilder,
) (*Orchestrator, error) {
	if cfg == nil || logger == nil || lineage == nil || readme == nil ||
		scorer == nil || gaps == nil || planner == nil {
		return nil, fmt.Errorf("cannot initialize orchestrator with nil dependencies")
	}
	return &Orchestrator{
		cfg:     cfg,
		logger:  logger.With(zap.String("component", "orchestrator")),
		lineage: lineage,
		readme:  readme,
		scorer:  scorer,
		gaps:    gaps,
		planner: planner,
	}, nil
}

// ScoreRun enriches the assets in place, then scores the batch against all
// registered profiles. Enrichment failures degrade to fallback values and
// never abort the run; only genuine misconfiguration surfaces as an error.
func (o *Orchestrator) ScoreRun(ctx context.Context, assets []schemas.Asset) (map[string][]schemas.ProfileScoreResult, error) {
	start := time.Now()
	o.logger.Info("scoring run starting", zap.Int("assets", len(assets)))

	o.lineage.Apply(assets, o.lineage.Enrich(ctx, assets))
	o.readme.Apply(assets, o.readme.Enrich(ctx, assets))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scoring run cancelled: %w", err)
	}

	scoreCtx := &scoring.Context{
		NowMs:         time.Now().UnixMilli(),
		ConfigVersion: o.cfg.Scoring.Version,
		Config:        &o.cfg.Scoring,
	}
	results, err := o.scorer.ScoreBatch(assets, scoreCtx)
	if err != nil {
		return nil, fmt.Errorf("scoring batch failed: %w", err)
	}

	o.logger.Info("scoring run complete",
		zap.Int("assets", len(assets)),
		zap.Duration("elapsed", time.Since(start)))
	return results, nil
}

// PlanRun extracts signals from the assets, detects gaps for the selected
// capabilities, and assembles a remediation plan. Assets are expected to be
// already enriched (ScoreRun mutates them in place, so chaining works).
func (o *Orchestrator) PlanRun(ctx context.Context, assets []schemas.Asset, capabilityIDs []string) ([]schemas.AssetEvidence, *schemas.RemediationPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("planning run cancelled: %w", err)
	}
	start := time.Now()
	o.logger.Info("planning run starting",
		zap.Int("assets", len(assets)),
		zap.Strings("capabilities", capabilityIDs))

	evidence := signals.BuildEvidence(assets, time.Now().UnixMilli())
	detected, err := o.gaps.Detect(evidence, capabilityIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("gap detection failed: %w", err)
	}
	plan := o.planner.Build(detected)

	o.logger.Info("planning run complete",
		zap.Int("gaps", len(detected)),
		zap.Int("phases", len(plan.Phases)),
		zap.Duration("elapsed", time.Since(start)))
	return evidence, plan, nil
}
