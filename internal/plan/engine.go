// Package plan turns detected gaps into a phased remediation plan. Plans
// are regenerated wholesale on every request; nothing here persists state.
package plan

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calder-v/metascope/api/schemas"
	"github.com/calder-v/metascope/internal/gaps"
)

// Phase names, one per severity tier. Phases with no actions are omitted
// from the plan entirely.
const (
	PhaseCritical = "Critical Remediation"
	PhaseStandard = "Standard Enrichment"
	PhaseOptional = "Optional Improvements"
)

// Effort breakpoints by gap count. Critical work sizes up faster because
// high-impact assets tend to need coordination, not just edits; optional
// work is always small since it can be batched opportunistically.
const (
	criticalLargeAbove  = 10
	criticalMediumAbove = 5
	standardLargeAbove  = 20
	standardMediumAbove = 10
)

// Engine assembles remediation plans from gap lists.
type Engine struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine constructs a plan engine.
func NewEngine(logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		return nil, fmt.Errorf("plan: logger is required")
	}
	return &Engine{
		logger: logger.With(zap.String("component", "plan_engine")),
		now:    time.Now,
	}, nil
}

// Build groups gaps into up to three severity phases, one action per
// workstream (signal type) with at least one qualifying gap. Workstreams
// appear in the order they are first encountered within each phase.
func (e *Engine) Build(detected []schemas.Gap) *schemas.RemediationPlan {
	plan := &schemas.RemediationPlan{
		ID:          uuid.NewString(),
		GeneratedAt: e.now().UTC(),
		TotalGaps:   len(detected),
	}

	phases := []struct {
		name     string
		severity schemas.Severity
	}{
		{PhaseCritical, schemas.SeverityHigh},
		{PhaseStandard, schemas.SeverityMedium},
		{PhaseOptional, schemas.SeverityLow},
	}

	for _, p := range phases {
		phase := e.buildPhase(p.name, p.severity, detected)
		if len(phase.Actions) > 0 {
			plan.Phases = append(plan.Phases, phase)
		}
	}

	e.logger.Debug("plan assembled",
		zap.String("plan_id", plan.ID),
		zap.Int("phases", len(plan.Phases)),
		zap.Int("total_gaps", plan.TotalGaps))
	return plan
}

func (e *Engine) buildPhase(name string, severity schemas.Severity, detected []schemas.Gap) schemas.PlanPhase {
	phase := schemas.PlanPhase{Name: name, Severity: severity}

	type workstream struct {
		gapCount int
		assets   map[string]bool
	}
	byStream := make(map[schemas.SignalType]*workstream)
	var order []schemas.SignalType

	for _, g := range detected {
		if g.Severity != severity {
			continue
		}
		ws, ok := byStream[g.Signal]
		if !ok {
			ws = &workstream{assets: make(map[string]bool)}
			byStream[g.Signal] = ws
			order = append(order, g.Signal)
		}
		ws.gapCount++
		ws.assets[g.SubjectGUID] = true
	}

	for _, t := range order {
		ws := byStream[t]
		phase.Actions = append(phase.Actions, schemas.PlanAction{
			ID:         uuid.NewString(),
			Workstream: t,
			Scope:      gaps.ActionScope(t, len(ws.assets)),
			Effort:     effortFor(severity, ws.gapCount),
			GapCount:   ws.gapCount,
			AssetCount: len(ws.assets),
		})
	}
	return phase
}

// effortFor sizes one action from its phase and gap count.
func effortFor(severity schemas.Severity, gapCount int) schemas.EffortBucket {
	switch severity {
	case schemas.SeverityHigh:
		switch {
		case gapCount > criticalLargeAbove:
			return schemas.EffortLarge
		case gapCount > criticalMediumAbove:
			return schemas.EffortMedium
		default:
			return schemas.EffortSmall
		}
	case schemas.SeverityMedium:
		switch {
		case gapCount > standardLargeAbove:
			return schemas.EffortLarge
		case gapCount > standardMediumAbove:
			return schemas.EffortMedium
		default:
			return schemas.EffortSmall
		}
	default:
		return schemas.EffortSmall
	}
}
