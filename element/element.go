package element

import "fmt"

// Dimensionality represents the spatial dimension of a problem
type Dimensionality uint8

const (
	D1 Dimensionality = iota + 1 // 1D problems (bars, rods)
	D2                           // 2D problems (plane strain/stress)
	D3                           // 3D solids
)

// DimensionalityFromRank maps a spatial rank onto its Dimensionality.
// Any rank outside {1,2,3} is a programming error and panics.
func DimensionalityFromRank(rank int) Dimensionality {
	switch rank {
	case 1:
		return D1
	case 2:
		return D2
	case 3:
		return D3
	}
	panic(fmt.Sprintf("invalid rank %d, must be 1, 2 or 3", rank))
}

// Rank returns the number of spatial coordinates
func (d Dimensionality) Rank() int {
	switch d {
	case D1, D2, D3:
		return int(d)
	}
	panic(fmt.Sprintf("invalid dimensionality %d", uint8(d)))
}

// StrainCount returns the length of the Voigt strain vector:
//
//	D1: [xx]
//	D2: [xx, yy, zz, xy]  (zz kept for plane problems)
//	D3: [xx, yy, zz, xy, yz, zx]
func (d Dimensionality) StrainCount() int {
	switch d {
	case D1:
		return 1
	case D2:
		return 4
	case D3:
		return 6
	}
	panic(fmt.Sprintf("invalid dimensionality %d", uint8(d)))
}

func (d Dimensionality) String() string {
	switch d {
	case D1:
		return "1D"
	case D2:
		return "2D"
	case D3:
		return "3D"
	}
	return fmt.Sprintf("Dimensionality(%d)", uint8(d))
}
