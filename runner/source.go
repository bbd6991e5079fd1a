package runner

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SliceSource serves points from in-memory slices. G may hold a single
// matrix shared by all points.
type SliceSource struct {
	U []*mat.VecDense
	G []*mat.Dense
}

func (s SliceSource) NumPoints() int { return len(s.U) }

func (s SliceSource) Point(k int) (*mat.VecDense, *mat.Dense, error) {
	if k < 0 || k >= len(s.U) {
		return nil, nil, fmt.Errorf("point %d out of range [0,%d)", k, len(s.U))
	}
	switch len(s.G) {
	case 1:
		return s.U[k], s.G[0], nil
	case len(s.U):
		return s.U[k], s.G[k], nil
	}
	return nil, nil, fmt.Errorf("%d gradient matrices for %d points", len(s.G), len(s.U))
}
