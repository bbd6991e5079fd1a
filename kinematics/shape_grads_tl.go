package kinematics

import (
	"fmt"

	"github.com/notargets/FiniteDef/element"
	"gonum.org/v1/gonum/mat"
)

// ShapeGradsTLFunc computes the Total Lagrangian strain-displacement matrix
// B0 from the reference shape function gradients g and the deformation
// gradient f. B0 maps nodal displacement variations onto variations of the
// Green-Lagrange strain vector (engineering shear).
type ShapeGradsTLFunc func(b *mat.Dense, g, f mat.Matrix)

// Get1DShapeGradsTL computes B0 = g * f(0,0) for bars and rods
//
//	b: [1 × nodeCount]   g: [1 × nodeCount]   f: [1 × 1]
func Get1DShapeGradsTL(b *mat.Dense, g, f mat.Matrix) {
	checkShapeGradsTL("Get1DShapeGradsTL", element.D1, b, g, f)
	fillShapeGradsTL(b, g, f, element.D1)
}

// Get2DShapeGradsTL computes B0 for plane problems. Rows follow the strain
// vector [xx, yy, zz, xy]; the zz row stays zero.
//
//	b: [4 × 2*nodeCount]   g: [2 × nodeCount]   f: [2 × 2]
func Get2DShapeGradsTL(b *mat.Dense, g, f mat.Matrix) {
	checkShapeGradsTL("Get2DShapeGradsTL", element.D2, b, g, f)
	fillShapeGradsTL(b, g, f, element.D2)
}

// Get3DShapeGradsTL computes B0 for solids. Rows follow the strain vector
// [xx, yy, zz, xy, yz, zx].
//
//	b: [6 × 3*nodeCount]   g: [3 × nodeCount]   f: [3 × 3]
func Get3DShapeGradsTL(b *mat.Dense, g, f mat.Matrix) {
	checkShapeGradsTL("Get3DShapeGradsTL", element.D3, b, g, f)
	fillShapeGradsTL(b, g, f, element.D3)
}

// ShapeGradsTLFor selects the B0 builder for a dimensionality
func ShapeGradsTLFor(dim element.Dimensionality) ShapeGradsTLFunc {
	switch dim {
	case element.D1:
		return Get1DShapeGradsTL
	case element.D2:
		return Get2DShapeGradsTL
	case element.D3:
		return Get3DShapeGradsTL
	}
	panic(fmt.Sprintf("no TL shape gradient builder for dimensionality %d", uint8(dim)))
}

// GetShapeGradsTLFunc returns the B0 builder for rank 1, 2 or 3
func GetShapeGradsTLFunc(rank int) ShapeGradsTLFunc {
	return ShapeGradsTLFor(element.DimensionalityFromRank(rank))
}

func checkShapeGradsTL(op string, dim element.Dimensionality, b *mat.Dense, g, f mat.Matrix) {
	var (
		rank          = dim.Rank()
		br, bc        = b.Dims()
		gr, nodeCount = g.Dims()
		fr, fc        = f.Dims()
		wantRows      = dim.StrainCount()
		wantCols      = rank * nodeCount
	)
	if gr != rank {
		panic(fmt.Sprintf("%s: g has %d rows, want %d", op, gr, rank))
	}
	if fr != rank || fc != rank {
		panic(fmt.Sprintf("%s: f is %dx%d, want %dx%d", op, fr, fc, rank, rank))
	}
	if br != wantRows || bc != wantCols {
		panic(fmt.Sprintf("%s: b is %dx%d, want %dx%d", op, br, bc, wantRows, wantCols))
	}
}

// fillShapeGradsTL writes, for every strain slot (A,B), node n and direction d,
//
//	b(row, n*rank+d) = f(d,A) g(A,n)                 A == B
//	b(row, n*rank+d) = f(d,A) g(B,n) + f(d,B) g(A,n)  A != B
func fillShapeGradsTL(b *mat.Dense, g, f mat.Matrix, dim element.Dimensionality) {
	var (
		rank         = dim.Rank()
		_, nodeCount = g.Dims()
		slots        = voigtSlots(dim)
	)
	b.Zero()
	for inode := 0; inode < nodeCount; inode++ {
		i0 := rank * inode
		for row, s := range slots {
			if s.A >= rank {
				continue
			}
			for d := 0; d < rank; d++ {
				val := f.At(d, s.A) * g.At(s.B, inode)
				if s.shear() {
					val += f.At(d, s.B) * g.At(s.A, inode)
				}
				b.Set(row, i0+d, val)
			}
		}
	}
}
