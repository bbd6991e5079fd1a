package main

import (
	"fmt"

	"github.com/notargets/FiniteDef/caseio"
	"github.com/notargets/FiniteDef/kinematics"
	"github.com/notargets/FiniteDef/partitions"
	"github.com/notargets/FiniteDef/runner"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

type evalOptions struct {
	workers   int
	operators bool
}

func (a *app) newEvalCmd() *cobra.Command {
	var opts evalOptions
	cmd := &cobra.Command{
		Use:   "eval <case.toml>",
		Short: "Print F, det(F), the Green-Lagrange strain and optionally B0 for every point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCase(args[0])
			if err != nil {
				return err
			}
			return a.runEval(cmd, c, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "number of partitions evaluated concurrently")
	cmd.Flags().BoolVarP(&opts.operators, "operators", "b", false, "also print the B0 matrices")
	return cmd
}

func (a *app) runEval(cmd *cobra.Command, c *caseio.Case, opts evalOptions) error {
	if opts.workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", opts.workers)
	}
	layout, err := (&partitions.PartitionBuilder{
		NumElements:   c.NumPoints(),
		NumPartitions: opts.workers,
	}).BuildPartitions()
	if err != nil {
		return err
	}
	kr, err := runner.NewRunner(runner.Config{
		Dim:           c.Dim(),
		NodeCount:     c.NodeCount(),
		Layout:        layout,
		KeepOperators: opts.operators,
		Logger:        a.logger,
	})
	if err != nil {
		return err
	}
	if err := kr.Run(cmd.Context(), c); err != nil {
		a.logger.Error("evaluation failed", "error", err)
		return err
	}

	var (
		conv = c.ShearConvention()
		rank = c.Rank
		E    = mat.NewDense(rank, rank, nil)
		eps  = mat.NewVecDense(kinematics.StrainCount(rank), nil)
	)
	for k, p := range c.Points {
		fmt.Fprintf(a.stdout, "point %d %s\n", k, p.Name)
		a.printMatrix("F", kr.DeformationGradient(k))
		fmt.Fprintf(a.stdout, "  J = %.12g\n", kr.Jacobian(k))

		kinematics.VoigtToTensorStrain(E, kr.Strain(k), kinematics.Engineering)
		kinematics.TensorToVoigtStrain(eps, E, conv)
		a.printMatrix(fmt.Sprintf("eps (%s)", conv), eps.T())
		if opts.operators {
			a.printMatrix("B0", kr.Operator(k))
		}
	}
	return nil
}
