// Command dla grows diffusion-limited aggregation clusters and writes them as
// CSV tables to a local directory, S3 or MinIO.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dla",
		Short: "Diffusion-limited aggregation",
		Long: `dla grows fractal clusters by diffusion-limited aggregation.

Settings come from an optional YAML file (--config), DLA_* environment
variables and command line flags, in increasing order of precedence.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")

	rootCmd.AddCommand(
		newVersionCmd(),
		newGrowCmd(),
		newInspectCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dla version %s (commit: %s)\n", version, commit)
		},
	}
}
