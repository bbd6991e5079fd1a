// Package caseio reads kinematics cases from TOML files. A case fixes the
// spatial rank and the number of nodes, and lists evaluation points, each
// with its reference shape function gradients and nodal displacements:
//
//	rank = 2
//	convention = "engineering"
//
//	[[points]]
//	name = "ip0"
//	g = [[-1.0, 1.0, 0.0], [-1.0, 0.0, 1.0]]
//	u = [0.0, 0.0, 0.1, 0.0, 0.0, 0.05]
package caseio

import (
	"fmt"
	"os"

	"github.com/notargets/FiniteDef/element"
	"github.com/notargets/FiniteDef/kinematics"
	"github.com/pelletier/go-toml/v2"
	"gonum.org/v1/gonum/mat"
)

// Case is the decoded form of a case file
type Case struct {
	Rank       int     `toml:"rank"`
	Convention string  `toml:"convention"` // shear convention of printed strains
	Points     []Point `toml:"points"`
}

// Point holds the inputs of one evaluation point. G[j][n] = ∂N_n/∂X_j and
// U is node-major.
type Point struct {
	Name string      `toml:"name"`
	G    [][]float64 `toml:"g"`
	U    []float64   `toml:"u"`
}

// Load reads and validates a case file
func Load(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading case: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates TOML case data
func Parse(data []byte) (*Case, error) {
	var c Case
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing case TOML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every point is consistent with the case rank and
// that all points share one node count
func (c *Case) Validate() error {
	if c.Rank < 1 || c.Rank > 3 {
		return fmt.Errorf("invalid rank %d, must be 1, 2 or 3", c.Rank)
	}
	if _, err := kinematics.ParseShearConvention(c.Convention); err != nil {
		return err
	}
	if len(c.Points) == 0 {
		return fmt.Errorf("case has no points")
	}
	nodeCount := -1
	for i, p := range c.Points {
		if len(p.G) != c.Rank {
			return fmt.Errorf("point %d (%s): g has %d rows, want %d", i, p.Name, len(p.G), c.Rank)
		}
		for j, row := range p.G {
			if len(row) == 0 {
				return fmt.Errorf("point %d (%s): g row %d is empty", i, p.Name, j)
			}
			if nodeCount < 0 {
				nodeCount = len(row)
			}
			if len(row) != nodeCount {
				return fmt.Errorf("point %d (%s): g row %d has %d columns, want %d",
					i, p.Name, j, len(row), nodeCount)
			}
		}
		if len(p.U) != c.Rank*nodeCount {
			return fmt.Errorf("point %d (%s): u has length %d, want %d",
				i, p.Name, len(p.U), c.Rank*nodeCount)
		}
	}
	return nil
}

// Dim returns the dimensionality of a validated case
func (c *Case) Dim() element.Dimensionality {
	return element.DimensionalityFromRank(c.Rank)
}

// NodeCount returns the node count shared by all points of a validated case
func (c *Case) NodeCount() int {
	return len(c.Points[0].G[0])
}

// ShearConvention returns the parsed strain output convention
func (c *Case) ShearConvention() kinematics.ShearConvention {
	conv, _ := kinematics.ParseShearConvention(c.Convention)
	return conv
}

// Matrices converts p into gonum types
func (p Point) Matrices() (u *mat.VecDense, g *mat.Dense) {
	rank, nodeCount := len(p.G), len(p.G[0])
	g = mat.NewDense(rank, nodeCount, nil)
	for j, row := range p.G {
		g.SetRow(j, row)
	}
	u = mat.NewVecDense(len(p.U), append([]float64(nil), p.U...))
	return u, g
}

// NumPoints and Point let a validated case feed a runner directly
func (c *Case) NumPoints() int { return len(c.Points) }

func (c *Case) Point(k int) (*mat.VecDense, *mat.Dense, error) {
	if k < 0 || k >= len(c.Points) {
		return nil, nil, fmt.Errorf("point %d out of range [0,%d)", k, len(c.Points))
	}
	u, g := c.Points[k].Matrices()
	return u, g, nil
}
