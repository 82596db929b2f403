package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/hashdraft/internal/infrastructure/config"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	configPath string
	logLevel   string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "hashdraft",
	Version: Version,
	Short:   "Draft tweets from hashtags with a text-completion model",
	Long: `hashdraft turns a handful of hashtags into a drafted tweet.
Run it as a one-shot command, an interactive terminal screen,
an HTTP service for other front-ends, or an MCP tool.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	err := RootCmd.Execute()
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.Hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", cliErr.Hint)
	}
	return err
}

// ExitCode maps an Execute error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.ExitCode != 0 {
		return cliErr.ExitCode
	}
	return 1
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFile, "Path to hashdraft.yaml")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
}
