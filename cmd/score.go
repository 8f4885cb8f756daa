package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/calder-v/metascope/internal/config"
	"github.com/calder-v/metascope/internal/observability"
	"github.com/calder-v/metascope/internal/reporting"
)

// newScoreCmd creates and configures the `score` command.
func newScoreCmd() *cobra.Command {
	scoreCmd := &cobra.Command{
		Use:   "score <assets.json>",
		Short: "Enriches and scores a batch of catalog assets",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags so they override config file and environment values
			// with the right precedence.
			if err := viper.BindPFlag("enrichment.concurrency", cmd.Flags().Lookup("concurrency")); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := config.NewFromViper(viper.GetViper())
			if err != nil {
				return err
			}

			assets, err := loadAssets(args[0])
			if err != nil {
				return err
			}
			logger.Info("loaded assets", zap.String("file", args[0]), zap.Int("count", len(assets)))

			orch, err := buildOrchestrator(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize components: %w", err)
			}

			results, err := orch.ScoreRun(ctx, assets)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			reporter, err := reporting.New(format, output)
			if err != nil {
				return err
			}
			defer reporter.Close()

			return reporter.Write(&reporting.ScoreReport{
				GeneratedAt:   time.Now().UTC(),
				ConfigVersion: cfg.Scoring.Version,
				AssetCount:    len(assets),
				Results:       results,
			})
		},
	}

	scoreCmd.Flags().String("format", "json", "output format (json)")
	scoreCmd.Flags().StringP("output", "o", "", "output path (default stdout)")
	scoreCmd.Flags().Int("concurrency", 4, "enrichment worker concurrency")
	return scoreCmd
}
