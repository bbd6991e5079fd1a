package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/notargets/FiniteDef/caseio"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

type app struct {
	stdout  io.Writer
	logger  *log.Logger
	verbose bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout: stdout,
		logger: log.NewWithOptions(stderr, log.Options{Prefix: "tlkin"}),
	}

	root := &cobra.Command{
		Use:           "tlkin",
		Short:         "Total Lagrangian kinematics for finite-element integration points",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				a.logger.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(a.newEvalCmd(), a.newCheckCmd())

	// errors are silenced above, so flag errors are logged here
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		a.logger.Error("invalid flags", "error", err)
		return err
	})
	return root
}

func (a *app) loadCase(path string) (*caseio.Case, error) {
	c, err := caseio.Load(path)
	if err != nil {
		a.logger.Error("cannot load case", "path", path, "error", err)
		return nil, err
	}
	a.logger.Debug("case loaded", "path", path, "rank", c.Rank,
		"nodes", c.NodeCount(), "points", c.NumPoints())
	return c, nil
}

func (a *app) printMatrix(name string, m mat.Matrix) {
	fmt.Fprintf(a.stdout, "  %s =\n", name)
	fmt.Fprintf(a.stdout, "    %v\n", mat.Formatted(m, mat.Prefix("    "), mat.Squeeze()))
}
