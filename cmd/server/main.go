package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// rootCmd runs the HTTP service when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Counts the unique grid points visited by a cleaning robot",
	Long: `server exposes the robot path engine over HTTP. Each enter-path request is
evaluated, timed and stored as an execution record; new records are pushed to
websocket subscribers on /stream.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), configPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd, newEvaluateCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
