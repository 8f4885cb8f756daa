// Package gaps detects governance deficiencies: required signals that are
// missing for the assets a selected capability depends on.
package gaps

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calder-v/metascope/api/schemas"
)

// Capability identifiers. Each names a downstream use case whose viability
// depends on a specific set of signals being present on the assets it reads.
const (
	CapabilityAIRAG                = "ai_rag"
	CapabilityGovernanceReporting  = "governance_reporting"
	CapabilityImpactAnalysis       = "impact_analysis"
	CapabilitySelfServiceAnalytics = "self_service_analytics"
)

// capabilityRequirements maps each capability to the signals it cannot work
// without. The table is static; changing it is a code change, not
// configuration.
var capabilityRequirements = map[string][]schemas.SignalType{
	CapabilityAIRAG: {
		schemas.SignalSemantics,
		schemas.SignalOwnership,
		schemas.SignalSensitivity,
		schemas.SignalFreshness,
	},
	CapabilityGovernanceReporting: {
		schemas.SignalOwnership,
		schemas.SignalCertification,
		schemas.SignalSensitivity,
	},
	CapabilityImpactAnalysis: {
		schemas.SignalLineage,
		schemas.SignalOwnership,
	},
	CapabilitySelfServiceAnalytics: {
		schemas.SignalSemantics,
		schemas.SignalQuality,
		schemas.SignalUsage,
		schemas.SignalCertification,
	},
}

// Severity thresholds against the subject asset's impact score.
const (
	highImpactThreshold = 80.0
	lowImpactThreshold  = 50.0
)

// Capabilities returns the known capability identifiers, sorted.
func Capabilities() []string {
	ids := make([]string, 0, len(capabilityRequirements))
	for id := range capabilityRequirements {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RequiredSignals returns the union of required signals for the selected
// capabilities, ordered by the taxonomy order. An unknown capability id is
// an error, mirroring how the scoring engine treats unknown profile ids.
func RequiredSignals(capabilityIDs []string) ([]schemas.SignalType, error) {
	required := make(map[schemas.SignalType]bool)
	for _, id := range capabilityIDs {
		signals, ok := capabilityRequirements[id]
		if !ok {
			return nil, fmt.Errorf("no capability registered for id %q", id)
		}
		for _, s := range signals {
			required[s] = true
		}
	}
	out := make([]schemas.SignalType, 0, len(required))
	for _, t := range schemas.AllSignalTypes {
		if required[t] {
			out = append(out, t)
		}
	}
	return out, nil
}

// Engine turns asset evidence plus a capability selection into Gap records.
type Engine struct {
	logger *zap.Logger
}

// NewEngine constructs a gap engine.
func NewEngine(logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		return nil, fmt.Errorf("gaps: logger is required")
	}
	return &Engine{logger: logger.With(zap.String("component", "gap_engine"))}, nil
}

// Detect emits one Gap per (asset, required signal) pair where the signal is
// either not present or was never checked. Results are stably sorted
// HIGH -> MED -> LOW; within a severity the encounter order is preserved.
func (e *Engine) Detect(evidence []schemas.AssetEvidence, capabilityIDs []string) ([]schemas.Gap, error) {
	required, err := RequiredSignals(capabilityIDs)
	if err != nil {
		return nil, err
	}

	var out []schemas.Gap
	for i := range evidence {
		ev := &evidence[i]
		for _, t := range required {
			sig := ev.Signal(t)
			if sig != nil && sig.Present {
				continue
			}
			out = append(out, schemas.Gap{
				ID:          uuid.NewString(),
				Type:        "MISSING_" + string(t),
				SubjectGUID: ev.Asset.GUID,
				SubjectName: ev.Asset.Name,
				Severity:    severityFor(ev.ImpactScore),
				Explanation: ExplainGap(&ev.Asset, t, sig),
				Signal:      t,
			})
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Severity.Rank() < out[b].Severity.Rank()
	})

	e.logger.Debug("gap detection complete",
		zap.Int("assets", len(evidence)),
		zap.Int("capabilities", len(capabilityIDs)),
		zap.Int("gaps", len(out)))
	return out, nil
}

// severityFor buckets a gap by its subject's impact score.
func severityFor(impact float64) schemas.Severity {
	switch {
	case impact >= highImpactThreshold:
		return schemas.SeverityHigh
	case impact < lowImpactThreshold:
		return schemas.SeverityLow
	default:
		return schemas.SeverityMedium
	}
}
