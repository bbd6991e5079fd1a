package kinematics

import (
	"fmt"
	"math"

	"github.com/notargets/FiniteDef/element"
	"gonum.org/v1/gonum/mat"
)

// ShearConvention selects how off-diagonal strain components are stored in
// a Voigt vector
type ShearConvention uint8

const (
	Engineering ShearConvention = iota // γ_ab = 2 E_ab, consistent with the TL B-matrices
	Tensorial                          // E_ab
	Mandel                             // √2 E_ab
)

func (c ShearConvention) factor() float64 {
	switch c {
	case Engineering:
		return 2
	case Tensorial:
		return 1
	case Mandel:
		return math.Sqrt2
	}
	panic(fmt.Sprintf("invalid shear convention %d", uint8(c)))
}

func (c ShearConvention) String() string {
	switch c {
	case Engineering:
		return "engineering"
	case Tensorial:
		return "tensorial"
	case Mandel:
		return "mandel"
	}
	return fmt.Sprintf("ShearConvention(%d)", uint8(c))
}

// ParseShearConvention is the inverse of ShearConvention.String
func ParseShearConvention(s string) (ShearConvention, error) {
	switch s {
	case "", "engineering":
		return Engineering, nil
	case "tensorial":
		return Tensorial, nil
	case "mandel":
		return Mandel, nil
	}
	return 0, fmt.Errorf("unknown shear convention %q", s)
}

// voigtSlot is the tensor index pair (A,B) stored at one Voigt position
type voigtSlot struct {
	A, B int
}

func (s voigtSlot) shear() bool { return s.A != s.B }

var (
	voigtSlots1D = []voigtSlot{{0, 0}}
	// zz is a placeholder for plane problems and is never written
	voigtSlots2D = []voigtSlot{{0, 0}, {1, 1}, {2, 2}, {0, 1}}
	voigtSlots3D = []voigtSlot{{0, 0}, {1, 1}, {2, 2}, {0, 1}, {1, 2}, {2, 0}}
)

func voigtSlots(dim element.Dimensionality) []voigtSlot {
	switch dim {
	case element.D1:
		return voigtSlots1D
	case element.D2:
		return voigtSlots2D
	case element.D3:
		return voigtSlots3D
	}
	panic(fmt.Sprintf("invalid dimensionality %d", uint8(dim)))
}

// StrainCount returns the Voigt strain vector length for rank 1, 2 or 3
func StrainCount(rank int) int {
	return element.DimensionalityFromRank(rank).StrainCount()
}

// TensorToVoigtStrain packs the symmetric strain tensor E (rank x rank) into
// the Voigt vector v using the given shear convention. Only the upper
// pairing listed for each slot is read.
func TensorToVoigtStrain(v *mat.VecDense, E mat.Matrix, conv ShearConvention) {
	rank := squareRank("TensorToVoigtStrain", E)
	dim := element.DimensionalityFromRank(rank)
	if v.Len() != dim.StrainCount() {
		panic(fmt.Sprintf("TensorToVoigtStrain: strain vector length %d, want %d",
			v.Len(), dim.StrainCount()))
	}
	shear := conv.factor()
	v.Zero()
	for i, s := range voigtSlots(dim) {
		if s.A >= rank {
			continue
		}
		if s.shear() {
			v.SetVec(i, shear*E.At(s.A, s.B))
		} else {
			v.SetVec(i, E.At(s.A, s.A))
		}
	}
}

// VoigtToTensorStrain unpacks v into the symmetric tensor E (rank x rank).
// For rank 2 the zz slot is ignored.
func VoigtToTensorStrain(E *mat.Dense, v mat.Vector, conv ShearConvention) {
	rank := squareRank("VoigtToTensorStrain", E)
	dim := element.DimensionalityFromRank(rank)
	if v.Len() != dim.StrainCount() {
		panic(fmt.Sprintf("VoigtToTensorStrain: strain vector length %d, want %d",
			v.Len(), dim.StrainCount()))
	}
	shear := conv.factor()
	E.Zero()
	for i, s := range voigtSlots(dim) {
		if s.A >= rank {
			continue
		}
		if s.shear() {
			val := v.AtVec(i) / shear
			E.Set(s.A, s.B, val)
			E.Set(s.B, s.A, val)
		} else {
			E.Set(s.A, s.A, v.AtVec(i))
		}
	}
}

// squareRank returns the order of a square matrix, panicking otherwise
func squareRank(op string, m mat.Matrix) int {
	r, c := m.Dims()
	if r != c {
		panic(fmt.Sprintf("%s: matrix is %dx%d, want square", op, r, c))
	}
	return r
}
