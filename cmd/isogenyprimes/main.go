package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  *zap.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "isogenyprimes",
		Short: "Superset computation for isogeny primes of quadratic fields",
		Long: "Computes, for a quadratic number field Q(sqrt(D)), a finite superset\n" +
			"of the pre type 1-2 isogeny primes via Momose's epsilon characters.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if verbose {
				cfg := zap.NewDevelopmentConfig()
				logger, err = cfg.Build()
			} else {
				logger = zap.NewNop()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.AddCommand(newComputeCmd())
	root.AddCommand(newSweepCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
