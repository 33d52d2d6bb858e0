package cmd

import (
	"fmt"
	"os"

	"dropsync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the base command; subcommands attach themselves in their init.
var RootCmd = &cobra.Command{
	Use:   "dropsync",
	Short: "DropSync Service",
	Long: `DropSync keeps eBay listing inventory in line with supplier stock feeds.
It serves the dashboard API and runs feed-to-listing sync jobs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure. Errors are
// reported through a console-format logger so CLI output stays readable.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	l.Error("command failed", zap.Error(err))
	_ = l.Sync()
	os.Exit(1)
}
