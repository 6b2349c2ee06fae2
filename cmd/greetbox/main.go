// Package main is the entry point for the greetbox CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"greetbox/pkg/config"
	"greetbox/pkg/form"
	"greetbox/pkg/greeting"
	"greetbox/pkg/logger"
	"greetbox/pkg/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "greetbox",
	Short: "greetbox - a greeting form served over the web and the terminal",
	Long: `greetbox serves a single greeting form: enter a name, the greeting backend
answers, and the form displays the greeting. The same form is available in
the browser (greetbox serve), in a terminal UI (greetbox tui) and from the
command line (greetbox greet).`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(greetCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(configCmd)
}

// coreModules wires config, logging, the greeting backend and the form factory.
func coreModules() fx.Option {
	return fx.Options(
		config.ModuleWithPath(configPath),
		logger.Module,
		greeting.Module,
		form.Module,
	)
}

// quietLogging keeps log lines off stdout for commands that own the terminal.
func quietLogging() fx.Option {
	return fx.Decorate(func(cfg *logger.Config) *logger.Config {
		quiet := *cfg
		quiet.DisableConsole = true
		return &quiet
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
