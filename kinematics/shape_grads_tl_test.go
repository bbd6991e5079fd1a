package kinematics

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/notargets/FiniteDef/element"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestShapeGradsTLSizes(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 22))
	for rank := 1; rank <= 3; rank++ {
		for nodeCount := 1; nodeCount <= 10; nodeCount++ {
			t.Run(fmt.Sprintf("rank=%d/nodes=%d", rank, nodeCount), func(t *testing.T) {
				G := randomMatrix(rng, rank, nodeCount, 1)
				F := randomMatrix(rng, rank, rank, 1)
				B := mat.NewDense(StrainCount(rank), rank*nodeCount, nil)

				GetShapeGradsTLFunc(rank)(B, G, F)
				r, c := B.Dims()
				assert.Equal(t, StrainCount(rank), r)
				assert.Equal(t, rank*nodeCount, c)
			})
		}
	}
}

func TestGet1DShapeGradsTL(t *testing.T) {
	G := mat.NewDense(1, 2, []float64{-1, 1})
	F := mat.NewDense(1, 1, []float64{1.1})
	B := mat.NewDense(1, 2, nil)

	Get1DShapeGradsTL(B, G, F)
	assert.InDeltaSlicef(t, []float64{-1.1, 1.1}, B.RawMatrix().Data, 1.e-15, "")
}

func TestGet2DShapeGradsTLLinearLimit(t *testing.T) {
	// with F = I the TL operator is the small strain B-matrix
	rng := rand.New(rand.NewPCG(23, 24))
	cases := map[string]*mat.Dense{
		"one node":     mat.NewDense(2, 1, []float64{0.3, 0.7}),
		"triangle":     triGrads,
		"random quad4": randomMatrix(rng, 2, 4, 1),
	}
	for name, G := range cases {
		t.Run(name, func(t *testing.T) {
			_, nodeCount := G.Dims()
			F := mat.NewDense(2, 2, nil)
			EvalDeformationGradient(F, mat.NewVecDense(2*nodeCount, nil), G)
			require.Equal(t, identity(2).RawMatrix().Data, F.RawMatrix().Data)

			B := mat.NewDense(4, 2*nodeCount, nil)
			Get2DShapeGradsTL(B, G, F)

			linear := mat.NewDense(4, 2*nodeCount, nil)
			for n := 0; n < nodeCount; n++ {
				dx, dy := G.At(0, n), G.At(1, n)
				linear.Set(0, 2*n, dx)
				linear.Set(1, 2*n+1, dy)
				linear.Set(3, 2*n, dy)
				linear.Set(3, 2*n+1, dx)
			}
			assert.Equal(t, linear.RawMatrix().Data, B.RawMatrix().Data)
		})
	}
}

func TestGet3DShapeGradsTLLinearLimit(t *testing.T) {
	F := identity(3)
	B := mat.NewDense(6, 12, nil)
	Get3DShapeGradsTL(B, tetGrads, F)

	linear := mat.NewDense(6, 12, nil)
	for n := 0; n < 4; n++ {
		dx, dy, dz := tetGrads.At(0, n), tetGrads.At(1, n), tetGrads.At(2, n)
		i0 := 3 * n
		linear.Set(0, i0, dx)
		linear.Set(1, i0+1, dy)
		linear.Set(2, i0+2, dz)
		linear.Set(3, i0, dy)
		linear.Set(3, i0+1, dx)
		linear.Set(4, i0+1, dz)
		linear.Set(4, i0+2, dy)
		linear.Set(5, i0, dz)
		linear.Set(5, i0+2, dx)
	}
	assert.Equal(t, linear.RawMatrix().Data, B.RawMatrix().Data)
}

func TestGet2DShapeGradsTLClosedForm(t *testing.T) {
	rng := rand.New(rand.NewPCG(25, 26))
	G := randomMatrix(rng, 2, 3, 1)
	F := randomMatrix(rng, 2, 2, 1)
	B := mat.NewDense(4, 6, nil)
	B.Apply(func(i, j int, v float64) float64 { return -7 }, B)

	Get2DShapeGradsTL(B, G, F)
	f, g := F.At, G.At
	for n := 0; n < 3; n++ {
		i0, i1 := 2*n, 2*n+1
		expected := [4][2]float64{
			{f(0, 0) * g(0, n), f(1, 0) * g(0, n)},
			{f(0, 1) * g(1, n), f(1, 1) * g(1, n)},
			{0, 0},
			{f(0, 0)*g(1, n) + f(0, 1)*g(0, n), f(1, 1)*g(0, n) + f(1, 0)*g(1, n)},
		}
		for row := 0; row < 4; row++ {
			assert.InDelta(t, expected[row][0], B.At(row, i0), 1.e-15, "row %d node %d x", row, n)
			assert.InDelta(t, expected[row][1], B.At(row, i1), 1.e-15, "row %d node %d y", row, n)
		}
	}
}

func TestGet3DShapeGradsTLClosedForm(t *testing.T) {
	rng := rand.New(rand.NewPCG(27, 28))
	G := randomMatrix(rng, 3, 2, 1)
	F := randomMatrix(rng, 3, 3, 1)
	B := mat.NewDense(6, 6, nil)

	Get3DShapeGradsTL(B, G, F)
	f, g := F.At, G.At
	for n := 0; n < 2; n++ {
		for d := 0; d < 3; d++ {
			col := 3*n + d
			expected := []float64{
				f(d, 0) * g(0, n),
				f(d, 1) * g(1, n),
				f(d, 2) * g(2, n),
				f(d, 0)*g(1, n) + f(d, 1)*g(0, n),
				f(d, 1)*g(2, n) + f(d, 2)*g(1, n),
				f(d, 2)*g(0, n) + f(d, 0)*g(2, n),
			}
			got := mat.Col(nil, col, B)
			assert.InDeltaSlicef(t, expected, got, 1.e-15, "node %d direction %d", n, d)
		}
	}
}

func TestShapeGradsTLMatchFiniteDifference(t *testing.T) {
	rng := rand.New(rand.NewPCG(29, 30))
	for rank := 1; rank <= 3; rank++ {
		for _, nodeCount := range []int{2, 4, 8} {
			t.Run(fmt.Sprintf("rank=%d/nodes=%d", rank, nodeCount), func(t *testing.T) {
				G := randomMatrix(rng, rank, nodeCount, 1)
				u := randomVector(rng, rank*nodeCount, 0.2)
				F := mat.NewDense(rank, rank, nil)
				EvalDeformationGradient(F, u, G)

				B := mat.NewDense(StrainCount(rank), rank*nodeCount, nil)
				Bnum := mat.NewDense(StrainCount(rank), rank*nodeCount, nil)
				GetShapeGradsTLFunc(rank)(B, G, F)
				FiniteDifferenceB0(Bnum, u, G, 1.e-5)
				assert.InDeltaSlicef(t, Bnum.RawMatrix().Data, B.RawMatrix().Data, 1.e-8, "")
			})
		}
	}
}

func TestGetShapeGradsTLFunc(t *testing.T) {
	rng := rand.New(rand.NewPCG(31, 32))
	named := map[int]ShapeGradsTLFunc{
		1: Get1DShapeGradsTL,
		2: Get2DShapeGradsTL,
		3: Get3DShapeGradsTL,
	}
	for rank, builder := range named {
		t.Run(fmt.Sprintf("rank=%d", rank), func(t *testing.T) {
			G := randomMatrix(rng, rank, 3, 1)
			F := randomMatrix(rng, rank, rank, 1)
			want := mat.NewDense(StrainCount(rank), 3*rank, nil)
			got := mat.NewDense(StrainCount(rank), 3*rank, nil)

			builder(want, G, F)
			GetShapeGradsTLFunc(rank)(got, G, F)
			assert.Equal(t, want.RawMatrix().Data, got.RawMatrix().Data)

			tagged := mat.NewDense(StrainCount(rank), 3*rank, nil)
			ShapeGradsTLFor(element.DimensionalityFromRank(rank))(tagged, G, F)
			assert.Equal(t, want.RawMatrix().Data, tagged.RawMatrix().Data)
		})
	}
	assert.Panics(t, func() { GetShapeGradsTLFunc(0) })
	assert.Panics(t, func() { GetShapeGradsTLFunc(4) })
	assert.Panics(t, func() { ShapeGradsTLFor(element.Dimensionality(0)) })
}

func TestShapeGradsTLContract(t *testing.T) {
	G2 := mat.NewDense(2, 3, nil)
	F2 := identity(2)
	assert.Panics(t, func() { Get2DShapeGradsTL(mat.NewDense(3, 6, nil), G2, F2) }, "B0 rows")
	assert.Panics(t, func() { Get2DShapeGradsTL(mat.NewDense(4, 5, nil), G2, F2) }, "B0 cols")
	assert.Panics(t, func() { Get2DShapeGradsTL(mat.NewDense(4, 6, nil), G2, identity(3)) }, "F size")
	assert.Panics(t, func() { Get3DShapeGradsTL(mat.NewDense(6, 9, nil), G2, identity(3)) }, "G rows")
	assert.Panics(t, func() { Get1DShapeGradsTL(mat.NewDense(1, 2, nil), mat.NewDense(1, 2, nil), identity(2)) }, "1D F size")
	assert.Panics(t, func() { Get1DShapeGradsTL(mat.NewDense(1, 3, nil), mat.NewDense(1, 2, nil), identity(1)) }, "1D B0 cols")
}
