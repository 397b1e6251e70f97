package zerowidth

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/redactyl/zerowidth/internal/audit"
	"github.com/redactyl/zerowidth/internal/cache"
	"github.com/redactyl/zerowidth/internal/codec"
	"github.com/redactyl/zerowidth/internal/engine"
	"github.com/redactyl/zerowidth/internal/report"
	"github.com/redactyl/zerowidth/internal/stego"
	"github.com/redactyl/zerowidth/internal/tui"
	"github.com/redactyl/zerowidth/internal/types"
	"github.com/spf13/cobra"
)

var (
	flagPath         string
	flagStaged       bool
	flagInclude      string
	flagExclude      string
	flagMaxBytes     int64
	flagEnable       string
	flagDisable      string
	flagSARIF        bool
	flagTable        bool
	flagText         bool
	flagHidePayloads bool
	flagBaseline     string
	flagNoAudit      bool
	flagLast         bool
	flagTUI          bool
)

// runTUI is swapped in tests; the viewer needs a terminal.
var runTUI = tui.Run

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan files for hidden payloads",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().BoolVar(&flagStaged, "staged", false, "scan staged changes")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (default 1 MiB)")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only report these detectors (comma-separated IDs)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "do not report these detectors (comma-separated IDs)")
	cmd.Flags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output in table format with borders (default)")
	cmd.Flags().BoolVar(&flagText, "text", false, "output in plain text columnar format")
	cmd.Flags().BoolVar(&flagHidePayloads, "hide-payloads", false, "do not print decoded payloads")
	cmd.Flags().StringVar(&flagBaseline, "baseline", report.BaselineFile, "baseline file, relative to the scan path")
	cmd.Flags().BoolVar(&flagNoAudit, "no-audit", false, "do not append this scan to the audit log")
	cmd.Flags().BoolVar(&flagLast, "last", false, "re-render the last scan of the path instead of scanning")
	cmd.Flags().BoolVar(&flagTUI, "tui", false, "browse findings in an interactive viewer")
}

func scanConfig(cmd *cobra.Command, root string) engine.Config {
	l, g := current.local, current.global
	return engine.Config{
		Root:             root,
		Alphabet:         current.alphabet,
		IncludeGlobs:     pickString(flagInclude, l.Include, g.Include),
		ExcludeGlobs:     pickString(flagExclude, l.Exclude, g.Exclude),
		MaxBytes:         pickInt64(flagMaxBytes, l.MaxBytes, g.MaxBytes),
		ScanStaged:       flagStaged,
		Threads:          pickInt(flagThreads, l.Threads, g.Threads),
		EnableDetectors:  pickString(flagEnable, l.Enable, g.Enable),
		DisableDetectors: pickString(flagDisable, l.Disable, g.Disable),
		DefaultExcludes:  pickBoolFlag(cmd, "default-excludes", flagDefaultExcludes, l.DefaultExcludes, g.DefaultExcludes),
		NoCache:          flagNoCache,
		DryRun:           flagDryRun,
		Logger:           current.log,
	}
}

func runScan(cmd *cobra.Command, _ []string) error {
	abs, err := filepath.Abs(flagPath)
	if err != nil {
		return err
	}
	if flagLast {
		return renderLast(cmd, abs)
	}
	cfg := scanConfig(cmd, abs)
	quiet := flagJSON || flagSARIF || flagTUI
	errOut := cmd.ErrOrStderr()
	if !quiet {
		fmt.Fprintf(errOut, "Scanning %s for %s payloads...\n", abs, cfg.Alphabet.Name())
	}

	total, _ := engine.CountTargets(cfg)
	progressed := 0
	if total > 0 && !quiet {
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				fmt.Fprintf(errOut, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}
	res, err := engine.ScanContext(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if total > 0 && !quiet {
		fmt.Fprintln(errOut)
	}
	if cfg.DryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Would scan %d files\n", res.FilesScanned)
		return nil
	}

	baselinePath := resolveBaseline(abs)
	baseline, err := report.LoadBaseline(baselinePath)
	if err != nil {
		current.log.Debug("no baseline", "path", baselinePath, "error", err)
	}
	newFindings := report.FilterNewFindings(res.Findings, baseline)
	if newFindings == nil {
		newFindings = []types.Finding{}
	}

	if err := cache.SaveResults(abs, cfg.Alphabet.Name(), res.Findings); err != nil {
		current.log.Debug("last scan not saved", "error", err)
	}
	if !flagNoAudit {
		rec := audit.CreateScanRecord(abs, cfg.Alphabet.Name(), res.Findings, newFindings, res.FilesScanned, res.Duration, baselinePath)
		if err := audit.NewAuditLog(abs).LogScan(rec); err != nil {
			current.log.Warn("audit log not written", "error", err)
		}
	}

	if flagTUI {
		return runTUI(res.Findings, viewerOptions(cfg, baseline, baselinePath))
	}

	opts := report.PrintOptions{
		NoColor:       pickBool(flagNoColor, current.local.NoColor, current.global.NoColor),
		HidePayloads:  flagHidePayloads,
		Duration:      res.Duration,
		FilesScanned:  res.FilesScanned,
		FilesCached:   res.FilesCached,
		TotalFindings: len(res.Findings),
	}
	if err := render(cmd, newFindings, opts, map[string]int{
		"filesScanned": res.FilesScanned,
		"filesCached":  res.FilesCached,
		"runsSkipped":  res.RunsSkipped,
	}); err != nil {
		return err
	}

	if cmd.Flags().Changed("enable") || cmd.Flags().Changed("disable") {
		fmt.Fprintf(errOut, "detectors active: %s\n", activeSetSummary(cfg))
	}
	if report.ShouldFail(newFindings, pickString(flagFailOn, current.local.FailOn, current.global.FailOn)) {
		return exitError{code: 1}
	}
	return nil
}

func render(cmd *cobra.Command, findings []types.Finding, opts report.PrintOptions, stats map[string]int) error {
	out := cmd.OutOrStdout()
	switch {
	case flagSARIF:
		if err := report.WriteSARIFWithStats(out, findings, stats); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		return report.WriteJSON(out, findings)
	case flagText:
		report.PrintText(out, findings, opts)
	default:
		report.PrintTable(out, findings, opts)
	}
	return nil
}

func renderLast(cmd *cobra.Command, root string) error {
	last, err := cache.LoadResults(root)
	if err != nil {
		return fmt.Errorf("no previous scan of %s: %w", root, err)
	}
	if flagTUI {
		cfg := scanConfig(cmd, root)
		baselinePath := resolveBaseline(root)
		baseline, _ := report.LoadBaseline(baselinePath)
		opts := viewerOptions(cfg, baseline, baselinePath)
		opts.CachedAt = last.Timestamp
		return runTUI(last.Findings, opts)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Last scan: %s (%s alphabet)\n", last.Timestamp.Format("2006-01-02 15:04:05"), last.Alphabet)
	opts := report.PrintOptions{
		NoColor:      pickBool(flagNoColor, current.local.NoColor, current.global.NoColor),
		HidePayloads: flagHidePayloads,
	}
	return render(cmd, last.Findings, opts, nil)
}

func resolveBaseline(root string) string {
	if filepath.IsAbs(flagBaseline) {
		return flagBaseline
	}
	return filepath.Join(root, flagBaseline)
}

// viewerOptions lets the viewer strip files, extend the baseline and rescan
// with the same settings as the scan that produced its findings.
func viewerOptions(cfg engine.Config, baseline report.Baseline, baselinePath string) tui.Options {
	cfg.Progress = nil
	return tui.Options{
		Root:         cfg.Root,
		Detector:     stego.NewDetector(codec.New(cfg.Alphabet)),
		Baseline:     baseline,
		BaselinePath: baselinePath,
		Rescan: func() ([]types.Finding, error) {
			res, err := engine.ScanContext(context.Background(), cfg)
			if err != nil {
				return nil, err
			}
			if err := cache.SaveResults(cfg.Root, cfg.Alphabet.Name(), res.Findings); err != nil {
				cfg.Logger.Debug("last scan not saved", "error", err)
			}
			return res.Findings, nil
		},
	}
}

func activeSetSummary(cfg engine.Config) string {
	ids := engine.DetectorIDs()
	if cfg.EnableDetectors != "" {
		ids = strings.Split(cfg.EnableDetectors, ",")
	}
	if cfg.DisableDetectors != "" && cfg.EnableDetectors == "" {
		disabled := map[string]bool{}
		for _, d := range strings.Split(cfg.DisableDetectors, ",") {
			disabled[strings.TrimSpace(d)] = true
		}
		var kept []string
		for _, id := range ids {
			if !disabled[strings.TrimSpace(id)] {
				kept = append(kept, id)
			}
		}
		ids = kept
	}
	return strings.Join(ids, ",")
}
