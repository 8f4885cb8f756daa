package schemas

import "time"

// Severity ranks a detected gap. It is a property of the affected asset's
// impact, not of the missing signal.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MED"
	SeverityLow    Severity = "LOW"
)

// Rank orders severities for sorting: HIGH first.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	default:
		return 2
	}
}

// Gap is one detected governance deficiency: a required signal that is
// missing (or never checked) for a subject asset. Immutable once emitted.
type Gap struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"` // "MISSING_<SIGNAL>"
	SubjectGUID string     `json:"subjectGuid"`
	SubjectName string     `json:"subjectName"`
	Severity    Severity   `json:"severity"`
	Explanation string     `json:"explanation,omitempty"`
	Signal      SignalType `json:"signal"`
}

// EffortBucket is a coarse sizing of a remediation action.
type EffortBucket string

const (
	EffortSmall  EffortBucket = "S"
	EffortMedium EffortBucket = "M"
	EffortLarge  EffortBucket = "L"
)

// PlanAction is one unit of remediation work: all gaps of one workstream
// (signal type) within one phase.
type PlanAction struct {
	ID         string       `json:"id"`
	Workstream SignalType   `json:"workstream"`
	Scope      string       `json:"scope"`
	Effort     EffortBucket `json:"effort"`
	GapCount   int          `json:"gapCount"`
	AssetCount int          `json:"assetCount"`
}

// PlanPhase holds the actions for one severity tier, in workstream order.
type PlanPhase struct {
	Name     string       `json:"name"`
	Severity Severity     `json:"severity"`
	Actions  []PlanAction `json:"actions"`
}

// RemediationPlan is an ordered list of phases (Critical -> Standard ->
// Optional). Plans are regenerated wholesale on every request, never
// mutated incrementally.
type RemediationPlan struct {
	ID          string      `json:"id"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Phases      []PlanPhase `json:"phases"`
	TotalGaps   int         `json:"totalGaps"`
}
