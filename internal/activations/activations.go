// Package activations provides the sigmoid activation used by every layer.
package activations

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sigmoid activation function.
type Sigmoid struct{}

// sigmoid computes the logistic function 1 / (1 + e^-x).
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Activate computes sigmoid(x)
func (s Sigmoid) Activate(x float64) float64 {
	return sigmoid(x)
}

// Derivative computes sigmoid(x) * (1 - sigmoid(x)) for a pre-activation x.
func (s Sigmoid) Derivative(x float64) float64 {
	sigma := sigmoid(x)
	return sigma * (1 - sigma)
}

// OutputDerivative computes the derivative from an already activated
// value y = sigmoid(x), i.e. y * (1 - y).
func (s Sigmoid) OutputDerivative(y float64) float64 {
	return y * (1 - y)
}

// ActivateVec applies sigmoid elementwise to v in place.
func (s Sigmoid) ActivateVec(v *mat.VecDense) {
	raw := v.RawVector()
	for i, p := 0, 0; i < raw.N; i, p = i+1, p+raw.Inc {
		raw.Data[p] = sigmoid(raw.Data[p])
	}
}

// OutputDerivativeVec returns y ⊙ (1 − y) as a new vector.
func (s Sigmoid) OutputDerivativeVec(y mat.Vector) *mat.VecDense {
	n := y.Len()
	d := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v := y.AtVec(i)
		d.SetVec(i, v*(1-v))
	}
	return d
}

// Logit is the inverse of the sigmoid: -log(1/y - 1).
// It returns -Inf for y <= 0, +Inf for y >= 1 and NaN for NaN.
func Logit(y float64) float64 {
	switch {
	case math.IsNaN(y):
		return math.NaN()
	case y <= 0:
		return math.Inf(-1)
	case y >= 1:
		return math.Inf(1)
	}
	return -math.Log(1/y - 1)
}
