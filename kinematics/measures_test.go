package kinematics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestRightCauchyGreen(t *testing.T) {
	F := mat.NewDense(2, 2, []float64{
		1, 0.5,
		0, 2,
	})
	C := mat.NewDense(2, 2, nil)
	RightCauchyGreen(C, F)
	assert.InDeltaSlicef(t, []float64{1, 0.5, 0.5, 4.25}, C.RawMatrix().Data, 1.e-15, "")
	assert.Panics(t, func() { RightCauchyGreen(mat.NewDense(3, 3, nil), F) })
}

func TestJacobian(t *testing.T) {
	F := mat.NewDense(3, 3, []float64{
		2, 0, 0,
		0, 3, 1,
		0, 0, 0.5,
	})
	assert.InDelta(t, 3., Jacobian(F), 1.e-14)
	assert.InDelta(t, 1., Jacobian(rotation3D(0.3, 0.2, 0.1)), 1.e-14)
	assert.Panics(t, func() { Jacobian(mat.NewDense(2, 3, nil)) })
}
