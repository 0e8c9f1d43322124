// Package layer provides unit tests for the dense layer.
package layer

import (
	"math"
	"testing"

	"github.com/FlavioCFOliveira/backprop/internal/opt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// TestDenseForward tests W·x + b followed by sigmoid.
func TestDenseForward(t *testing.T) {
	// Create a simple layer: 2 inputs -> 2 outputs with identity weights
	d := NewDense(2, 2, Zeros{})
	d.SetWeight(0, 0, 1.0)
	d.SetWeight(1, 1, 1.0)
	d.SetBias(1, -0.5)

	output := d.Forward(mat.NewVecDense(2, []float64{1.0, 2.0}))

	require.Equal(t, 2, output.Len())
	assert.InDelta(t, sigmoid(1.0), output.AtVec(0), 1e-12)
	assert.InDelta(t, sigmoid(1.5), output.AtVec(1), 1e-12)
}

// TestDenseForwardNonSquare checks row/column orientation.
func TestDenseForwardNonSquare(t *testing.T) {
	d := NewDense(3, 1, Zeros{})
	d.SetWeight(0, 0, 1)
	d.SetWeight(0, 1, 2)
	d.SetWeight(0, 2, 3)

	output := d.Forward(mat.NewVecDense(3, []float64{1, 1, -1}))
	require.Equal(t, 1, output.Len())
	assert.InDelta(t, sigmoid(0), output.AtVec(0), 1e-12)
}

// TestDenseZeroWeightsGiveHalf checks that an all-zero layer outputs 0.5
// for any input.
func TestDenseZeroWeightsGiveHalf(t *testing.T) {
	d := NewDense(1, 1, Zeros{})
	for _, x := range []float64{-100, -1, 0, 3, 1e6} {
		out := d.Forward(mat.NewVecDense(1, []float64{x}))
		assert.Equal(t, 0.5, out.AtVec(0), "x=%v", x)
	}
}

// TestDenseBackproject tests Wᵀ·delta.
func TestDenseBackproject(t *testing.T) {
	d := NewDense(3, 2, Zeros{})
	// W = [[1 2 3] [4 5 6]]
	d.SetParams([]float64{1, 2, 3, 4, 5, 6, 0, 0})

	e := d.Backproject(mat.NewVecDense(2, []float64{1, -1}))

	require.Equal(t, 3, e.Len())
	assert.Equal(t, []float64{-3, -3, -3}, e.RawVector().Data)
}

// TestDenseUpdate tests W += dw and b -= lr·delta.
func TestDenseUpdate(t *testing.T) {
	d := NewDense(2, 1, Constant{Weight: 1, Bias: 1})
	sgd := opt.SGD{LearningRate: 0.5}
	delta := mat.NewVecDense(1, []float64{0.2})
	dw := sgd.WeightDelta(delta, mat.NewVecDense(2, []float64{1, 2}))

	d.Update(sgd, dw, delta)

	assert.InDelta(t, 0.9, d.GetWeight(0, 0), 1e-12)
	assert.InDelta(t, 0.8, d.GetWeight(0, 1), 1e-12)
	assert.InDelta(t, 0.9, d.GetBias(0), 1e-12)
}

// TestDenseParamsAndSetParams tests parameter handling.
func TestDenseParamsAndSetParams(t *testing.T) {
	d := NewDense(2, 3, NewXavier(1))

	params := d.Params()
	require.Len(t, params, 2*3+3)
	assert.Equal(t, 9, d.NumParams())

	newParams := make([]float64, len(params))
	for i := range newParams {
		newParams[i] = float64(i) * 0.1
	}
	d.SetParams(newParams)

	assert.Equal(t, newParams, d.Params())
	assert.InDelta(t, 0.1, d.GetWeight(0, 1), 1e-12)
	assert.InDelta(t, 0.2, d.GetWeight(1, 0), 1e-12)
	assert.InDelta(t, 0.6, d.GetBias(0), 1e-12)
}

// TestDenseClone tests that a clone does not alias the original.
func TestDenseClone(t *testing.T) {
	d := NewDense(2, 2, Constant{Weight: 0.3, Bias: 0.1})
	c := d.Clone()

	c.SetWeight(0, 0, 9)
	c.SetBias(1, 9)

	assert.Equal(t, 0.3, d.GetWeight(0, 0))
	assert.Equal(t, 0.1, d.GetBias(1))
	assert.Equal(t, d.InSize(), c.InSize())
	assert.Equal(t, d.OutSize(), c.OutSize())
}

// TestNewDensePanics tests shape validation.
func TestNewDensePanics(t *testing.T) {
	assert.Panics(t, func() { NewDense(0, 1, Zeros{}) })
	assert.Panics(t, func() { NewDense(1, -1, Zeros{}) })
	assert.Panics(t, func() { NewDense(2, 2, shortInit{}) })
}

type shortInit struct{}

func (shortInit) Weights(fanIn, fanOut int) []float64 { return []float64{1} }
func (shortInit) Biases(fanIn, fanOut int) []float64  { return make([]float64, fanOut) }
