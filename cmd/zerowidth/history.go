package zerowidth

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/redactyl/zerowidth/internal/audit"
	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit  int
	flagHistoryDelete int
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previous scans from the audit log",
		RunE:  runHistory,
	}
	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "scanned path whose audit log to read")
	cmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "show at most this many scans (0 = all)")
	cmd.Flags().IntVar(&flagHistoryDelete, "delete", -1, "delete the scan at this index (0 = newest)")
	rootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	abs, err := filepath.Abs(flagPath)
	if err != nil {
		return err
	}
	log := audit.NewAuditLog(abs)
	out := cmd.OutOrStdout()
	if flagHistoryDelete >= 0 {
		if err := log.DeleteRecord(flagHistoryDelete); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted scan %d from %s\n", flagHistoryDelete, log.Path())
		return nil
	}
	records, err := log.LoadHistory()
	if err != nil {
		return err
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}
	if flagJSON {
		if records == nil {
			records = []audit.ScanRecord{}
		}
		return writeJSON(out, records)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No scans recorded")
		return nil
	}
	table := tablewriter.NewWriter(out)
	table.Header("#", "WHEN", "ALPHABET", "FILES", "FINDINGS", "NEW", "HIGH", "DURATION")
	for i, r := range records {
		_ = table.Append([]string{
			strconv.Itoa(i),
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			r.Alphabet,
			strconv.Itoa(r.FilesScanned),
			strconv.Itoa(r.TotalFindings),
			strconv.Itoa(r.NewFindings),
			strconv.Itoa(r.SeverityCounts["high"]),
			r.Duration,
		})
	}
	return table.Render()
}
