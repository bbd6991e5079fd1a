package kinematics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// GreenLagrangeTensor computes E = ½(FᵗF - I). E must be [rank × rank] and
// is returned exactly symmetric.
func GreenLagrangeTensor(E *mat.Dense, F mat.Matrix) {
	rank := squareRank("GreenLagrangeTensor", F)
	if er, ec := E.Dims(); er != rank || ec != rank {
		panic(fmt.Sprintf("GreenLagrangeTensor: E is %dx%d, want %dx%d", er, ec, rank, rank))
	}
	for i := 0; i < rank; i++ {
		for j := i; j < rank; j++ {
			var c float64
			for k := 0; k < rank; k++ {
				c += F.At(k, i) * F.At(k, j)
			}
			if i == j {
				c -= 1
			}
			E.Set(i, j, 0.5*c)
			E.Set(j, i, 0.5*c)
		}
	}
}

// GetGreenLagrangeStrain computes the Green-Lagrange strain of F and stores
// it in Voigt notation with engineering shear strains, the layout the TL
// B-matrices differentiate. eps must have length StrainCount(rank).
func GetGreenLagrangeStrain(eps *mat.VecDense, F mat.Matrix) {
	rank := squareRank("GetGreenLagrangeStrain", F)
	if eps.Len() != StrainCount(rank) {
		panic(fmt.Sprintf("GetGreenLagrangeStrain: eps has length %d, want %d",
			eps.Len(), StrainCount(rank)))
	}
	E := mat.NewDense(rank, rank, nil)
	GreenLagrangeTensor(E, F)
	TensorToVoigtStrain(eps, E, Engineering)
}
