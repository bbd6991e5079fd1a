package kinematics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FiniteDifferenceB0 approximates B0 = ∂eps/∂u by central differences of
// the Green-Lagrange strain with step h. The strain is quadratic in u, so
// the approximation matches the analytical B0 up to round-off.
// u is left unchanged on return.
func FiniteDifferenceB0(b *mat.Dense, u *mat.VecDense, g *mat.Dense, h float64) {
	if h <= 0 {
		panic(fmt.Sprintf("FiniteDifferenceB0: step %g, must be positive", h))
	}
	rank, nodeCount := g.Dims()
	ndof := rank * nodeCount
	nsig := StrainCount(rank)
	if br, bc := b.Dims(); br != nsig || bc != ndof {
		panic(fmt.Sprintf("FiniteDifferenceB0: b is %dx%d, want %dx%d", br, bc, nsig, ndof))
	}

	var (
		F        = mat.NewDense(rank, rank, nil)
		epsPlus  = mat.NewVecDense(nsig, nil)
		epsMinus = mat.NewVecDense(nsig, nil)
		col      = mat.NewVecDense(nsig, nil)
	)
	for k := 0; k < ndof; k++ {
		uk := u.AtVec(k)

		u.SetVec(k, uk+h)
		EvalDeformationGradient(F, u, g)
		GetGreenLagrangeStrain(epsPlus, F)

		u.SetVec(k, uk-h)
		EvalDeformationGradient(F, u, g)
		GetGreenLagrangeStrain(epsMinus, F)

		u.SetVec(k, uk)

		col.SubVec(epsPlus, epsMinus)
		col.ScaleVec(0.5/h, col)
		b.SetCol(k, col.RawVector().Data)
	}
}
