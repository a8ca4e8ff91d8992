package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/adaptor"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of adaptor",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "adaptor version %s\n", strings.TrimSpace(adaptor.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
