// Package main provides the entry point for the carmtab CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/cmd/carmtab/commands"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "carmtab",
		Short: "Carmichael factor-table analysis",
		Long: `carmtab analyzes Carmichael-number candidate tables: one candidate per
line, followed by its recorded prime divisors.

Commands:
  run       Run record analyzers over a factor table`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewRunCommand())
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
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "carmtab %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
