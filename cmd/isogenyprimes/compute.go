package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/koffie/isogeny-primes2/isogeny"
	"github.com/koffie/isogeny-primes2/numfield"
)

type computeResult struct {
	D          int64   `json:"d"`
	NormBound  int64   `json:"norm_bound"`
	LoopCurves bool    `json:"loop_curves"`
	UsePIL     bool    `json:"use_pil"`
	Primes     []int64 `json:"primes"`
}

func newComputeCmd() *cobra.Command {
	var (
		normBound  int64
		loopCurves bool
		usePIL     bool
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "compute D",
		Short: "Compute the superset for Q(sqrt(D))",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parsing D: %w", err)
			}
			f, err := numfield.New(d)
			if err != nil {
				return err
			}
			primes, err := isogeny.PreTypeOneTwoPrimes(f, isogeny.Options{
				NormBound:  normBound,
				LoopCurves: loopCurves,
				UsePIL:     usePIL,
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				return enc.Encode(computeResult{
					D:          d,
					NormBound:  normBound,
					LoopCurves: loopCurves,
					UsePIL:     usePIL,
					Primes:     primes,
				})
			}
			overQ := map[int64]bool{}
			for _, p := range isogeny.EcQIsogenyPrimes {
				overQ[p] = true
			}
			fmt.Printf("%s: %d candidate primes\n", f, len(primes))
			for _, p := range primes {
				if overQ[p] {
					fmt.Printf("%d (isogeny prime over Q)\n", p)
				} else {
					fmt.Println(p)
				}
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&normBound, "norm-bound", isogeny.DefaultNormBound, "auxiliary prime norm bound")
	cmd.Flags().BoolVar(&loopCurves, "loop-curves", false, "restrict Weil polynomials to actual elliptic curves")
	cmd.Flags().BoolVar(&usePIL, "use-pil", false, "refine with the principal ideal lattice")
	cmd.Flags().BoolVar(&asJSON, "json", false, "machine-readable output")
	return cmd
}
