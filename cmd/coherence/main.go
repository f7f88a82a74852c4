// coherence verifies that independently configured views over the derived
// analytics artifacts agree with each other.
//
// Usage:
//
//	coherence [--data-dir=<dir>] [--views=<file>] [--debug]
//	coherence schema
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/OFFIS-RIT/coherence/internal/config"
	"github.com/OFFIS-RIT/coherence/internal/engine"
	"github.com/OFFIS-RIT/coherence/internal/util"
	"github.com/OFFIS-RIT/coherence/pkg/logger"
	"github.com/OFFIS-RIT/coherence/pkg/logger/console"
	"github.com/OFFIS-RIT/coherence/pkg/report"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// errChecksFailed signals a completed run with failed checks. The report
// already explains the failure, so main prints nothing more.
var errChecksFailed = errors.New("coherence checks failed")

var rootFlags struct {
	dataDir   string
	viewsFile string
	debug     bool
}

var rootCmd = &cobra.Command{
	Use:   "coherence",
	Short: "Check that views over the derived artifacts stay consistent",
	Long: "coherence loads the derived analytics artifacts, builds every configured view,\n" +
		"compares the views pairwise and prints a PASS/FAIL report.\n" +
		"The exit status is 0 only when every check passed.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		util.LoadEnv()
		initLogger(cmd, rootFlags.debug, util.GetEnv(config.EnvLogFormat))
	},
	RunE: runCheck,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.dataDir, "data-dir", "", "Directory holding the artifacts (default $"+config.EnvDataDir+" or "+config.DefaultDataDir+")")
	f.StringVar(&rootFlags.viewsFile, "views", "", "YAML file overriding artifact names and views (default $"+config.EnvViewsFile+")")
	f.BoolVar(&rootFlags.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(schemaCmd)
	rootCmd.Version = version
}

// initLogger installs the console backend on the command's stderr. runCheck
// calls it again once the resolved config knows whether DEBUG is set.
func initLogger(cmd *cobra.Command, debug bool, format string) {
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  debug,
		Output: cmd.ErrOrStderr(),
		Format: format,
	}))
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWith(config.Overrides{
		DataDir:   rootFlags.dataDir,
		ViewsFile: rootFlags.viewsFile,
		Debug:     rootFlags.debug,
	})
	if err != nil {
		return err
	}
	initLogger(cmd, cfg.Debug, cfg.LogFormat)

	status, err := engine.Run(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if status != report.StatusOK {
		return errChecksFailed
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
