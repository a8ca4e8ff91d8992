package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/adaptor/pkg/adapters/file"
)

var rootCmd = &cobra.Command{
	Use:   "adaptor",
	Short: "Run HTTP operation sequences against an external system",
	Long: `adaptor executes jobs: ordered lists of post, create and createPatient
operations that thread a JSON state from one step to the next.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("store-dir", file.DefaultDir, "Directory of the file run store")
	rootCmd.PersistentFlags().String("redis", "", "Redis address used to store runs (e.g. localhost:6379)")
	rootCmd.PersistentFlags().String("redis-password", "", "Redis password")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database number")
}
