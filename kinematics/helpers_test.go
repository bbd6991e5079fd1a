package kinematics

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Reference gradients of the linear simplex on the unit element. These are
// constant and satisfy Σ_n X_n ⊗ ∇N_n = I.
var (
	barNodes = [][]float64{{0}, {1}}
	barGrads = mat.NewDense(1, 2, []float64{
		-1, 1,
	})

	triNodes = [][]float64{{0, 0}, {1, 0}, {0, 1}}
	triGrads = mat.NewDense(2, 3, []float64{
		-1, 1, 0,
		-1, 0, 1,
	})

	tetNodes = [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	tetGrads = mat.NewDense(3, 4, []float64{
		-1, 1, 0, 0,
		-1, 0, 1, 0,
		-1, 0, 0, 1,
	})
)

func simplexForRank(rank int) (nodes [][]float64, g *mat.Dense) {
	switch rank {
	case 1:
		return barNodes, barGrads
	case 2:
		return triNodes, triGrads
	default:
		return tetNodes, tetGrads
	}
}

// displacementsFor returns u with u_n = (A - I) X_n, so that a linear element
// reproduces F = A exactly
func displacementsFor(A mat.Matrix, nodes [][]float64) *mat.VecDense {
	rank, _ := A.Dims()
	u := mat.NewVecDense(rank*len(nodes), nil)
	for n, X := range nodes {
		for i := 0; i < rank; i++ {
			var x float64
			for j := 0; j < rank; j++ {
				delta := 0.
				if i == j {
					delta = 1
				}
				x += (A.At(i, j) - delta) * X[j]
			}
			u.SetVec(n*rank+i, x)
		}
	}
	return u
}

func identity(rank int) *mat.Dense {
	I := mat.NewDense(rank, rank, nil)
	for i := 0; i < rank; i++ {
		I.Set(i, i, 1)
	}
	return I
}

func rotation2D(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(2, 2, []float64{
		c, -s,
		s, c,
	})
}

func rotation3D(alpha, beta, gamma float64) *mat.Dense {
	ca, sa := math.Cos(alpha), math.Sin(alpha)
	cb, sb := math.Cos(beta), math.Sin(beta)
	cg, sg := math.Cos(gamma), math.Sin(gamma)
	Rz := mat.NewDense(3, 3, []float64{
		ca, -sa, 0,
		sa, ca, 0,
		0, 0, 1,
	})
	Ry := mat.NewDense(3, 3, []float64{
		cb, 0, sb,
		0, 1, 0,
		-sb, 0, cb,
	})
	Rx := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, cg, -sg,
		0, sg, cg,
	})
	var RzRy, R mat.Dense
	RzRy.Mul(Rz, Ry)
	R.Mul(&RzRy, Rx)
	return &R
}

func randomMatrix(rng *rand.Rand, r, c int, scale float64) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = scale * (2*rng.Float64() - 1)
	}
	return mat.NewDense(r, c, data)
}

func randomVector(rng *rand.Rand, n int, scale float64) *mat.VecDense {
	data := make([]float64, n)
	for i := range data {
		data[i] = scale * (2*rng.Float64() - 1)
	}
	return mat.NewVecDense(n, data)
}
