package kinematics

import (
	"fmt"

	"github.com/notargets/FiniteDef/element"
	"gonum.org/v1/gonum/mat"
)

// PointKinematics holds the kinematic state at one integration point of an
// element with NodeCount nodes. The buffers are owned by the workspace and
// overwritten on every Update, so one workspace must not be shared between
// goroutines.
type PointKinematics struct {
	Dim       element.Dimensionality
	NodeCount int

	F   *mat.Dense    // deformation gradient [rank × rank]
	E   *mat.Dense    // Green-Lagrange strain tensor [rank × rank]
	Eps *mat.VecDense // Green-Lagrange strain, Voigt/engineering [StrainCount]
	B0  *mat.Dense    // TL strain-displacement matrix [StrainCount × rank*NodeCount]

	shapeGrads ShapeGradsTLFunc
}

// NewPointKinematics allocates a workspace for the given dimensionality and
// node count
func NewPointKinematics(dim element.Dimensionality, nodeCount int) *PointKinematics {
	if nodeCount < 1 {
		panic(fmt.Sprintf("NewPointKinematics: node count %d, must be positive", nodeCount))
	}
	rank := dim.Rank()
	nsig := dim.StrainCount()
	return &PointKinematics{
		Dim:        dim,
		NodeCount:  nodeCount,
		F:          mat.NewDense(rank, rank, nil),
		E:          mat.NewDense(rank, rank, nil),
		Eps:        mat.NewVecDense(nsig, nil),
		B0:         mat.NewDense(nsig, rank*nodeCount, nil),
		shapeGrads: ShapeGradsTLFor(dim),
	}
}

// Update evaluates F, E, Eps and B0 for nodal displacements u and reference
// shape function gradients g [rank × NodeCount]
func (pk *PointKinematics) Update(u *mat.VecDense, g *mat.Dense) {
	if r, c := g.Dims(); r != pk.Dim.Rank() || c != pk.NodeCount {
		panic(fmt.Sprintf("PointKinematics.Update: g is %dx%d, want %dx%d",
			r, c, pk.Dim.Rank(), pk.NodeCount))
	}
	EvalDeformationGradient(pk.F, u, g)
	GreenLagrangeTensor(pk.E, pk.F)
	TensorToVoigtStrain(pk.Eps, pk.E, Engineering)
	pk.shapeGrads(pk.B0, g, pk.F)
}

// Jacobian returns det(F) for the last Update
func (pk *PointKinematics) Jacobian() float64 {
	return Jacobian(pk.F)
}
