package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/adaptor/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a job",
	Long: `Loads the job and initial state files, runs every operation in order and
prints the final state as JSON. Successful runs are stored under a new ID
unless --no-store is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jobPath, _ := cmd.Flags().GetString("job")
		statePath, _ := cmd.Flags().GetString("state")
		outPath, _ := cmd.Flags().GetString("out")
		metricsPath, _ := cmd.Flags().GetString("metrics-file")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		debug, _ := cmd.Flags().GetBool("debug")
		logLevel, _ := cmd.Flags().GetString("log-level")

		opts := cli.RunOptions{
			JobPath:     jobPath,
			StatePath:   statePath,
			OutPath:     outPath,
			MetricsPath: metricsPath,
			Timeout:     timeout,
			LogLevel:    logLevel,
			Debug:       debug,
			Stdout:      cmd.OutOrStdout(),
		}

		if noStore, _ := cmd.Flags().GetBool("no-store"); !noStore {
			store, closeStore, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore()
			opts.Store = store
		}

		_, err := cli.Run(cmd.Context(), opts)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("job", "j", "", "Job file (YAML or JSON)")
	runCmd.Flags().StringP("state", "s", "", "Initial state file (YAML or JSON)")
	runCmd.Flags().StringP("out", "o", "", "Also write the final state to this file")
	runCmd.Flags().String("metrics-file", "", "Write request metrics in Prometheus text format")
	runCmd.Flags().Duration("timeout", 0, "Per-request timeout (0 disables)")
	runCmd.Flags().Bool("debug", false, "Enable debug logs")
	runCmd.Flags().Bool("no-store", false, "Do not store the completed run")
	_ = runCmd.MarkFlagRequired("job")
}
