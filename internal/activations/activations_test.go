// Package activations provides unit tests for the sigmoid activation.
package activations

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

// TestSigmoid tests Sigmoid activation.
func TestSigmoid(t *testing.T) {
	sigmoid := Sigmoid{}

	tests := []struct {
		input    float64
		expected float64
	}{
		{math.Inf(-1), 0.0}, // -inf -> 0
		{-2.0, 1 / (1 + math.Exp(2))},
		{-1.0, 1 / (1 + math.Exp(1))},
		{0.0, 0.5}, // Zero -> 0.5
		{1.0, 1 / (1 + math.Exp(-1))},
		{2.0, 1 / (1 + math.Exp(-2))},
		{math.Inf(1), 1.0}, // +inf -> 1
	}

	for _, tt := range tests {
		output := sigmoid.Activate(tt.input)
		if math.Abs(output-tt.expected) > 1e-12 {
			t.Errorf("Sigmoid(%v) = %v, want %v", tt.input, output, tt.expected)
		}
	}
}

// TestSigmoidDerivative tests Sigmoid derivative.
func TestSigmoidDerivative(t *testing.T) {
	sigmoid := Sigmoid{}

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.0, 0.25}, // Max derivative at 0
		{2.0, (1 / (1 + math.Exp(-2))) * (1 - 1/(1+math.Exp(-2)))},
		{-2.0, (1 / (1 + math.Exp(2))) * (1 - 1/(1+math.Exp(2)))},
	}

	for _, tt := range tests {
		output := sigmoid.Derivative(tt.input)
		if math.Abs(output-tt.expected) > 1e-12 {
			t.Errorf("Sigmoid.Derivative(%v) = %v, want %v", tt.input, output, tt.expected)
		}
	}
}

func TestSigmoidOutputDerivativeMatchesDerivative(t *testing.T) {
	s := Sigmoid{}
	for _, x := range []float64{-6, -1.5, -0.1, 0, 0.3, 2, 5} {
		assert.InDelta(t, s.Derivative(x), s.OutputDerivative(s.Activate(x)), 1e-15, "x=%v", x)
	}
}

func TestSigmoidVec(t *testing.T) {
	s := Sigmoid{}
	v := mat.NewVecDense(3, []float64{-1, 0, 1})
	s.ActivateVec(v)

	assert.InDelta(t, 1/(1+math.E), v.AtVec(0), 1e-15)
	assert.Equal(t, 0.5, v.AtVec(1))
	assert.InDelta(t, 1/(1+1/math.E), v.AtVec(2), 1e-15)

	d := s.OutputDerivativeVec(v)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 0.25, d.AtVec(1))
	// Input vector is not modified.
	assert.Equal(t, 0.5, v.AtVec(1))
}

func TestSigmoidVecStrided(t *testing.T) {
	s := Sigmoid{}
	m := mat.NewDense(2, 2, []float64{0, 100, 0, 100})
	col := m.ColView(0).(*mat.VecDense)
	s.ActivateVec(col)

	assert.Equal(t, 0.5, m.At(0, 0))
	assert.Equal(t, 0.5, m.At(1, 0))
	assert.Equal(t, 100.0, m.At(0, 1), "neighbouring column must be untouched")
}

// TestLogit tests the inverse sigmoid.
func TestLogit(t *testing.T) {
	s := Sigmoid{}
	for _, x := range []float64{-5, -1, 0, 0.25, 3} {
		assert.InDelta(t, x, Logit(s.Activate(x)), 1e-9, "x=%v", x)
	}

	assert.True(t, math.IsInf(Logit(0), -1))
	assert.True(t, math.IsInf(Logit(1), 1))
	assert.True(t, math.IsInf(Logit(-0.5), -1))
	assert.True(t, math.IsNaN(Logit(math.NaN())))
}
