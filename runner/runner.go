package runner

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/notargets/FiniteDef/element"
	"github.com/notargets/FiniteDef/kinematics"
	"github.com/notargets/FiniteDef/partitions"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// PointSource supplies the nodal displacements u and the reference shape
// function gradients g of every evaluation point
type PointSource interface {
	NumPoints() int
	Point(k int) (u *mat.VecDense, g *mat.Dense, err error)
}

// Config holds configuration for creating a Runner
type Config struct {
	Dim       element.Dimensionality
	NodeCount int // Nodes per element, shared by all points
	Layout    *partitions.PartitionLayout

	KeepOperators bool        // Store B0 for every point
	Logger        *log.Logger // Optional
}

// Runner evaluates Total Lagrangian kinematics for all points of a
// partition layout, one goroutine per partition. Results are stored per
// point in partitioned arrays.
type Runner struct {
	Dim       element.Dimensionality
	NodeCount int
	Layout    *partitions.PartitionLayout

	Gradients *partitions.PartitionedArray // F, row-major [rank*rank]
	Strains   *partitions.PartitionedArray // Voigt strains, engineering shear [StrainCount]
	Jacobians *partitions.PartitionedArray // det(F) [1]
	Operators *partitions.PartitionedArray // B0, row-major; nil unless KeepOperators

	logger *log.Logger
}

// NewRunner creates a new Runner instance
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Layout == nil {
		return nil, fmt.Errorf("runner needs a partition layout")
	}
	if err := cfg.Layout.ValidateLayout(); err != nil {
		return nil, fmt.Errorf("invalid partition layout: %w", err)
	}
	switch cfg.Dim {
	case element.D1, element.D2, element.D3:
	default:
		return nil, fmt.Errorf("invalid dimensionality %d", uint8(cfg.Dim))
	}
	if cfg.NodeCount < 1 {
		return nil, fmt.Errorf("invalid node count %d", cfg.NodeCount)
	}

	rank, nsig := cfg.Dim.Rank(), cfg.Dim.StrainCount()
	kr := &Runner{
		Dim:       cfg.Dim,
		NodeCount: cfg.NodeCount,
		Layout:    cfg.Layout,
		Gradients: partitions.AllocatePartitionedArray(cfg.Layout, rank*rank),
		Strains:   partitions.AllocatePartitionedArray(cfg.Layout, nsig),
		Jacobians: partitions.AllocatePartitionedArray(cfg.Layout, 1),
		logger:    cfg.Logger,
	}
	if cfg.KeepOperators {
		kr.Operators = partitions.AllocatePartitionedArray(cfg.Layout, nsig*rank*cfg.NodeCount)
	}
	return kr, nil
}

// Run evaluates every point of src. Partitions run concurrently; the first
// error cancels the remaining work and is returned.
func (kr *Runner) Run(ctx context.Context, src PointSource) error {
	if n := src.NumPoints(); n != kr.Layout.TotalElements {
		return fmt.Errorf("source has %d points, layout has %d", n, kr.Layout.TotalElements)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, part := range kr.Layout.Partitions {
		g.Go(func() error {
			return kr.runPartition(ctx, part, src)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	kr.debug("run complete", "points", kr.Layout.TotalElements, "partitions", kr.Layout.NumPartitions)
	return nil
}

func (kr *Runner) runPartition(ctx context.Context, part partitions.Partition, src PointSource) error {
	var (
		pk        = kinematics.NewPointKinematics(kr.Dim, kr.NodeCount)
		gradients = kr.Gradients.GetPartitionData(part.ID)
		strains   = kr.Strains.GetPartitionData(part.ID)
		jacobians = kr.Jacobians.GetPartitionData(part.ID)
	)
	var operators []float64
	if kr.Operators != nil {
		operators = kr.Operators.GetPartitionData(part.ID)
	}

	for local, k := range part.Elements {
		if err := ctx.Err(); err != nil {
			return err
		}
		u, g, err := src.Point(k)
		if err != nil {
			return fmt.Errorf("point %d: %w", k, err)
		}
		if err := kr.checkPoint(u, g); err != nil {
			return fmt.Errorf("point %d: %w", k, err)
		}

		pk.Update(u, g)

		copyStride(gradients, local, pk.F.RawMatrix().Data, kr.Gradients.Stride)
		copyStride(strains, local, pk.Eps.RawVector().Data, kr.Strains.Stride)
		jacobians[local] = pk.Jacobian()
		if operators != nil {
			copyStride(operators, local, pk.B0.RawMatrix().Data, kr.Operators.Stride)
		}
	}
	kr.debug("partition done", "partition", part.ID, "points", part.NumElements)
	return nil
}

// checkPoint turns size mismatches of source data into errors before they
// reach the kinematics preconditions
func (kr *Runner) checkPoint(u *mat.VecDense, g *mat.Dense) error {
	if u == nil || g == nil {
		return fmt.Errorf("missing displacements or gradients")
	}
	rank := kr.Dim.Rank()
	if r, c := g.Dims(); r != rank || c != kr.NodeCount {
		return fmt.Errorf("gradients are %dx%d, want %dx%d", r, c, rank, kr.NodeCount)
	}
	if u.Len() != rank*kr.NodeCount {
		return fmt.Errorf("displacements have length %d, want %d", u.Len(), rank*kr.NodeCount)
	}
	return nil
}

func copyStride(dst []float64, local int, src []float64, stride int) {
	copy(dst[local*stride:(local+1)*stride], src)
}

func (kr *Runner) debug(msg string, keyvals ...interface{}) {
	if kr.logger != nil {
		kr.logger.Debug(msg, keyvals...)
	}
}

// DeformationGradient returns F of point k. The matrix shares storage with
// the runner.
func (kr *Runner) DeformationGradient(k int) *mat.Dense {
	rank := kr.Dim.Rank()
	return mat.NewDense(rank, rank, kr.Gradients.GetElementData(kr.Layout, k))
}

// Strain returns the Voigt strain vector of point k, sharing storage
func (kr *Runner) Strain(k int) *mat.VecDense {
	return mat.NewVecDense(kr.Strains.Stride, kr.Strains.GetElementData(kr.Layout, k))
}

// Jacobian returns det(F) of point k
func (kr *Runner) Jacobian(k int) float64 {
	return kr.Jacobians.GetElementData(kr.Layout, k)[0]
}

// Operator returns B0 of point k, or nil when operators are not kept
func (kr *Runner) Operator(k int) *mat.Dense {
	if kr.Operators == nil {
		return nil
	}
	rank := kr.Dim.Rank()
	return mat.NewDense(kr.Dim.StrainCount(), rank*kr.NodeCount, kr.Operators.GetElementData(kr.Layout, k))
}
