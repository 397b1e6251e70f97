package zerowidth

import (
	"fmt"
	"path/filepath"

	"github.com/redactyl/zerowidth/internal/engine"
	"github.com/redactyl/zerowidth/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Accept every current finding into the baseline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			abs, err := filepath.Abs(flagPath)
			if err != nil {
				return err
			}
			cfg := scanConfig(cmd, abs)
			cfg.EnableDetectors, cfg.DisableDetectors = "", ""
			results, err := engine.ScanContext(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			p := filepath.Join(abs, report.BaselineFile)
			if err := report.SaveBaseline(p, results.Findings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %d findings in %s\n", len(results.Findings), p)
			return nil
		},
	}
	update.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}
