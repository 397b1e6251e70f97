package zerowidth

import (
	"fmt"

	"github.com/redactyl/zerowidth/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput string
	cfgGlobal bool
	cfgForce  bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a commented .zerowidth.yml",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&cfgOutput, "output", config.LocalNames[0], "output file path")
	initCmd.Flags().BoolVar(&cfgGlobal, "global", false, "write the global config instead")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE:  runConfigShow,
	})
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := cfgOutput
	if cfgGlobal {
		p, err := config.GlobalPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := config.WriteSample(path, cfgForce); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	l, g := current.local, current.global
	href := l.Href()
	if href == "" {
		href = g.Href()
	}
	eff := config.FileConfig{
		Alphabet:        strPtr(current.alphabet.Name()),
		Include:         optStrPtr(pickString("", l.Include, g.Include)),
		Exclude:         optStrPtr(pickString("", l.Exclude, g.Exclude)),
		MaxBytes:        int64Ptr(pickInt64(0, l.MaxBytes, g.MaxBytes)),
		Enable:          optStrPtr(pickString("", l.Enable, g.Enable)),
		Disable:         optStrPtr(pickString("", l.Disable, g.Disable)),
		Threads:         intPtr(pickInt(flagThreads, l.Threads, g.Threads)),
		NoColor:         boolPtr(pickBool(flagNoColor, l.NoColor, g.NoColor)),
		DefaultExcludes: boolPtr(pickBoolFlag(cmd, "default-excludes", flagDefaultExcludes, l.DefaultExcludes, g.DefaultExcludes)),
		FailOn:          optStrPtr(pickString(flagFailOn, l.FailOn, g.FailOn)),
		LogLevel:        optStrPtr(pickString(flagLogLevel, l.LogLevel, g.LogLevel)),
	}
	if href != "" {
		eff.Provenance = &config.ProvenanceConfig{Href: &href}
	}
	b, err := yaml.Marshal(&eff)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}

func strPtr(s string) *string { return &s }
func optStrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func int64Ptr(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}
func boolPtr(v bool) *bool { return &v }
