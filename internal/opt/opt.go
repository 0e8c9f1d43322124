// Package opt provides the gradient-descent update rule.
package opt

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrLearningRate is returned for a learning rate that is not a finite
// positive number.
var ErrLearningRate = errors.New("learning rate must be finite and > 0")

// SGD (Stochastic Gradient Descent) with a constant learning rate, applied
// once per example.
type SGD struct {
	LearningRate float64
}

// Validate reports whether the learning rate is usable.
func (s SGD) Validate() error {
	if !(s.LearningRate > 0) || math.IsInf(s.LearningRate, 1) {
		return fmt.Errorf("%w: got %v", ErrLearningRate, s.LearningRate)
	}
	return nil
}

// WeightDelta returns -lr * delta ⊗ prev, the update for a weight matrix
// whose rows follow delta and whose columns follow prev.
func (s SGD) WeightDelta(delta, prev mat.Vector) *mat.Dense {
	var dw mat.Dense
	dw.Outer(-s.LearningRate, delta, prev)
	return &dw
}

// UpdateWeights adds an already signed and scaled weight delta in place:
// w += dw
func (s SGD) UpdateWeights(w *mat.Dense, dw mat.Matrix) {
	w.Add(w, dw)
}

// UpdateBias updates bias in place: b -= lr * delta
func (s SGD) UpdateBias(b *mat.VecDense, delta mat.Vector) {
	b.AddScaledVec(b, -s.LearningRate, delta)
}
