package kinematics

import (
	"fmt"

	"github.com/notargets/FiniteDef/element"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// EvalDeformationGradient computes F = I + ∇₀u from the nodal displacements u
// and the reference shape function gradients G:
//
//	F(i,j) = δ_ij + Σ_n G(j,n) u[n*rank+i]
//
// G is [rank × nodeCount] with G(j,n) = ∂N_n/∂X_j, u is node-major with
// length rank*nodeCount and F must be [rank × rank]. F is overwritten.
func EvalDeformationGradient(F *mat.Dense, u *mat.VecDense, G mat.RowViewer) {
	rank, nodeCount := G.Dims()
	element.DimensionalityFromRank(rank)
	if fr, fc := F.Dims(); fr != rank || fc != rank {
		panic(fmt.Sprintf("EvalDeformationGradient: F is %dx%d, want %dx%d", fr, fc, rank, rank))
	}
	if u.Len() != rank*nodeCount {
		panic(fmt.Sprintf("EvalDeformationGradient: u has length %d, want %d (rank %d, %d nodes)",
			u.Len(), rank*nodeCount, rank, nodeCount))
	}

	var (
		raw = u.RawVector()
		ui  mat.VecDense // strided view u[i::rank], direction i of every node
	)
	for i := 0; i < rank; i++ {
		ui.SetRawVector(blas64.Vector{
			N:    nodeCount,
			Inc:  rank * raw.Inc,
			Data: raw.Data[i*raw.Inc:],
		})
		for j := 0; j < rank; j++ {
			F.Set(i, j, mat.Dot(G.RowView(j), &ui))
		}
		F.Set(i, i, F.At(i, i)+1)
	}
}
