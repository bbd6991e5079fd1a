package kinematics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RightCauchyGreen computes C = FᵗF into C [rank × rank]
func RightCauchyGreen(C *mat.Dense, F mat.Matrix) {
	rank := squareRank("RightCauchyGreen", F)
	if cr, cc := C.Dims(); cr != rank || cc != rank {
		panic(fmt.Sprintf("RightCauchyGreen: C is %dx%d, want %dx%d", cr, cc, rank, rank))
	}
	C.Mul(F.T(), F)
}

// Jacobian returns J = det(F), the ratio of current to reference volume
func Jacobian(F mat.Matrix) float64 {
	squareRank("Jacobian", F)
	return mat.Det(F)
}
