// Command sparsegraph builds graphs from YAML scenarios.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootFlags struct {
	cfgFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "sparsegraph",
		Short: "In-memory sparse graph engine",
		Long: `sparsegraph stores vertices and typed, weighted edges as sparse
vectors and adjacency matrices over one shared vertex index space.

The run command applies a YAML scenario to a fresh graph and prints the
result.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.cfgFile, "config", "", "engine config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging and detailed output")

	rootCmd.AddCommand(newRunCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sparsegraph %s\n", version)
			if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
			}
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
