package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/calder-v/metascope/api/schemas"
	"github.com/calder-v/metascope/internal/config"
	"github.com/calder-v/metascope/internal/gaps"
	"github.com/calder-v/metascope/internal/observability"
	planpkg "github.com/calder-v/metascope/internal/plan"
	"github.com/calder-v/metascope/internal/reporting"
)

// newPlanCmd creates and configures the `plan` command.
func newPlanCmd() *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan <input.json>",
		Short: "Detects governance gaps and builds a remediation plan",
		Long: `Detects missing governance signals for the selected capabilities and
assembles a phased remediation plan. The input is either an asset array
(signals are extracted first) or, with --evidence, a pre-built evidence
array.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := config.NewFromViper(viper.GetViper())
			if err != nil {
				return err
			}

			capList, _ := cmd.Flags().GetString("capabilities")
			capabilityIDs := splitList(capList)
			if len(capabilityIDs) == 0 {
				return fmt.Errorf("at least one capability is required (known: %s)",
					strings.Join(gaps.Capabilities(), ", "))
			}

			fromEvidence, _ := cmd.Flags().GetBool("evidence")
			var (
				evidence []schemas.AssetEvidence
				remPlan  *schemas.RemediationPlan
			)
			if fromEvidence {
				// Pre-built evidence needs no catalog access, so skip the
				// orchestrator (and its enrichment clients) entirely.
				evidence, err = loadEvidence(args[0])
				if err != nil {
					return err
				}
				logger.Info("loaded evidence", zap.String("file", args[0]), zap.Int("count", len(evidence)))

				gapEngine, err := gaps.NewEngine(logger)
				if err != nil {
					return err
				}
				detected, err := gapEngine.Detect(evidence, capabilityIDs)
				if err != nil {
					return err
				}
				planEngine, err := planpkg.NewEngine(logger)
				if err != nil {
					return err
				}
				remPlan = planEngine.Build(detected)
			} else {
				assets, err := loadAssets(args[0])
				if err != nil {
					return err
				}
				logger.Info("loaded assets", zap.String("file", args[0]), zap.Int("count", len(assets)))

				orch, err := buildOrchestrator(cfg, logger)
				if err != nil {
					return fmt.Errorf("failed to initialize components: %w", err)
				}
				evidence, remPlan, err = orch.PlanRun(ctx, assets, capabilityIDs)
				if err != nil {
					return err
				}
			}

			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			reporter, err := reporting.New(format, output)
			if err != nil {
				return err
			}
			defer reporter.Close()

			return reporter.Write(&reporting.PlanReport{
				GeneratedAt:  time.Now().UTC(),
				Capabilities: capabilityIDs,
				Evidence:     evidence,
				Plan:         remPlan,
			})
		},
	}

	planCmd.Flags().String("capabilities", "", "comma-separated capability ids")
	planCmd.Flags().Bool("evidence", false, "treat input as a pre-built evidence array")
	planCmd.Flags().String("format", "json", "output format (json)")
	planCmd.Flags().StringP("output", "o", "", "output path (default stdout)")
	return planCmd
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
