package main

import (
	"fmt"
	"math"

	"github.com/notargets/FiniteDef/caseio"
	"github.com/notargets/FiniteDef/kinematics"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type checkOptions struct {
	step float64
	tol  float64
}

func (a *app) newCheckCmd() *cobra.Command {
	var opts checkOptions
	cmd := &cobra.Command{
		Use:   "check <case.toml>",
		Short: "Compare B0 with central differences of the Green-Lagrange strain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCase(args[0])
			if err != nil {
				return err
			}
			return a.runCheck(c, opts)
		},
	}
	cmd.Flags().Float64Var(&opts.step, "step", 1.e-6, "finite difference step")
	cmd.Flags().Float64Var(&opts.tol, "tol", 1.e-6, "maximum accepted deviation")
	return cmd
}

func (a *app) runCheck(c *caseio.Case, opts checkOptions) error {
	if opts.step <= 0 {
		return fmt.Errorf("step must be positive, got %g", opts.step)
	}
	var (
		pk    = kinematics.NewPointKinematics(c.Dim(), c.NodeCount())
		r, cc = pk.B0.Dims()
		Bnum  = mat.NewDense(r, cc, nil)
		worst = 0.
	)
	for k, p := range c.Points {
		u, g := p.Matrices()
		pk.Update(u, g)
		kinematics.FiniteDifferenceB0(Bnum, u, g, opts.step)

		dev := floats.Distance(pk.B0.RawMatrix().Data, Bnum.RawMatrix().Data, math.Inf(1))
		worst = math.Max(worst, dev)
		fmt.Fprintf(a.stdout, "point %d %s: max |B0 - B0_fd| = %.3e\n", k, p.Name, dev)
		a.logger.Debug("checked point", "point", k, "deviation", dev)
	}
	if worst > opts.tol {
		a.logger.Error("B0 does not match finite differences", "deviation", worst, "tol", opts.tol)
		return fmt.Errorf("max deviation %.3e exceeds tolerance %.3e", worst, opts.tol)
	}
	fmt.Fprintf(a.stdout, "ok: max deviation %.3e\n", worst)
	return nil
}
