package reporting

import (
	"fmt"
	"io"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/calder-v/metascope/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ScoreReport is the envelope written by the score command.
type ScoreReport struct {
	GeneratedAt   time.Time                               `json:"generatedAt"`
	ConfigVersion string                                  `json:"configVersion"`
	AssetCount    int                                     `json:"assetCount"`
	Results       map[string][]schemas.ProfileScoreResult `json:"results"`
}

// PlanReport is the envelope written by the plan command.
type PlanReport struct {
	GeneratedAt  time.Time                `json:"generatedAt"`
	Capabilities []string                 `json:"capabilities"`
	Evidence     []schemas.AssetEvidence  `json:"evidence"`
	Plan         *schemas.RemediationPlan `json:"plan"`
}

// JSONReporter writes indented JSON documents. It is safe for concurrent
// use, though reports are typically written once per run.
type JSONReporter struct {
	mu     sync.Mutex
	writer io.WriteCloser
}

// NewJSONReporter creates a reporter that takes ownership of the writer.
func NewJSONReporter(writer io.WriteCloser) *JSONReporter {
	return &JSONReporter{writer: writer}
}

// Write serializes one report document as indented JSON.
func (r *JSONReporter) Write(report any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')
	if _, err := r.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Close closes the underlying writer.
func (r *JSONReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writer.Close()
}
