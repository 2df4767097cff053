// Package main provides the entry point for the srplsh CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/srplsh/cmd/srplsh/commands"
)

// Set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "srplsh",
		Short: "Approximate top-k inner-product retrieval over sparse vectors",
		Long: `srplsh indexes a sparse corpus with sign-random-projection LSH and
answers top-k maximum inner product queries.

Commands:
  query     Answer every query of a CSR dataset
  stats     Build the index and print band statistics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "srplsh %s (commit: %s)\n", version, commit)
		},
	}
}
