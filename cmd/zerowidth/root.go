package zerowidth

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/redactyl/zerowidth/internal/alphabet"
	"github.com/redactyl/zerowidth/internal/config"
	"github.com/redactyl/zerowidth/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagAlphabet        string
	flagJSON            bool
	flagThreads         int
	flagFailOn          string
	flagNoColor         bool
	flagLogLevel        string
	flagDryRun          bool
	flagNoCache         bool
	flagDefaultExcludes bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the zerowidth CLI.
var rootCmd = &cobra.Command{
	Use:   "zerowidth",
	Short: "Hide text in invisible characters and find it again",
	Long: "zerowidth encodes text into zero-width Unicode characters, hides it inside\n" +
		"ordinary text, detects and decodes hidden payloads, and scans trees for them.",
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// exitError carries a process exit code without an error message.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// Execute runs the zerowidth CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagAlphabet, "alphabet", "a", "", "symbol alphabet: quad | binary (default quad)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().StringVar(&flagFailOn, "fail-on", "", "fail on low|medium|high|none (default medium)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error (default warn)")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "show what would be scanned without decoding files")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable incremental scan cache")
	rootCmd.PersistentFlags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, images, etc.)")
}

// settings is the resolved CLI > local > global configuration for one run.
type settings struct {
	local, global config.FileConfig
	alphabet      *alphabet.Alphabet
	log           *slog.Logger
}

var current settings

func setup(cmd *cobra.Command, _ []string) error {
	root := "."
	if f := cmd.Flags().Lookup("path"); f != nil {
		root = f.Value.String()
	}
	current = settings{}
	if c, err := config.LoadGlobal(); err == nil {
		current.global = c
	} else if !errors.Is(err, config.ErrNotFound) {
		return fmt.Errorf("global config: %w", err)
	}
	if c, err := config.LoadLocal(root); err == nil {
		current.local = c
	} else if !errors.Is(err, config.ErrNotFound) {
		return fmt.Errorf("local config: %w", err)
	}

	levelName := pickString(flagLogLevel, current.local.LogLevel, current.global.LogLevel)
	level := slog.LevelWarn
	if levelName != "" {
		l, err := logging.ParseLevel(levelName)
		if err != nil {
			return err
		}
		level = l
	}
	format := logging.FormatText
	if flagJSON {
		format = logging.FormatJSON
	}
	current.log = logging.New(logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()})

	a, err := alphabet.Lookup(pickString(flagAlphabet, current.local.Alphabet, current.global.Alphabet))
	if err != nil {
		return err
	}
	current.alphabet = a
	current.log.Debug("configured", "alphabet", a.Name(), "root", root)
	return nil
}
