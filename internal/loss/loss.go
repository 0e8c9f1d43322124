// Package loss provides the squared-error loss used for training.
package loss

import (
	"gonum.org/v1/gonum/floats"
)

// BackwardInPlacer is an optional interface for loss functions that support
// in-place gradient computation to avoid allocations.
type BackwardInPlacer interface {
	BackwardInPlace(yPred, yTrue, grad []float64)
}

// Loss is a loss function with derivative.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64

	// Backward computes the gradient of the loss w.r.t. prediction.
	// This creates a new slice and should be avoided in hot loops.
	Backward(yPred, yTrue []float64) []float64
}

// HalfSSE is half the sum of squared errors, 0.5 * sum((y_pred - y_true)^2).
// Its gradient w.r.t. the prediction is simply y_pred - y_true, which is the
// factor the output-layer delta is built from.
type HalfSSE struct{}

var (
	_ Loss             = HalfSSE{}
	_ BackwardInPlacer = HalfSSE{}
)

// Forward computes 0.5 * sum((y_pred - y_true)^2)
func (HalfSSE) Forward(yPred, yTrue []float64) float64 {
	if len(yPred) != len(yTrue) {
		panic("HalfSSE: prediction and target must have same length")
	}

	var sum float64
	for i := range yPred {
		diff := yPred[i] - yTrue[i]
		sum += diff * diff
	}
	return 0.5 * sum
}

// Backward computes gradient: dL/dy_pred = y_pred - y_true
// Note: Returned slice is newly allocated for safety.
func (h HalfSSE) Backward(yPred, yTrue []float64) []float64 {
	grad := make([]float64, len(yPred))
	h.BackwardInPlace(yPred, yTrue, grad)
	return grad
}

// BackwardInPlace computes gradient and stores it in the grad slice.
func (HalfSSE) BackwardInPlace(yPred, yTrue, grad []float64) {
	if len(yPred) != len(yTrue) || len(yPred) != len(grad) {
		panic("HalfSSE: slices must have same length")
	}
	floats.SubTo(grad, yPred, yTrue)
}

// Distance is the Euclidean distance ||y_true - y_pred||_2 between a
// prediction and its target.
func Distance(yPred, yTrue []float64) float64 {
	if len(yPred) != len(yTrue) {
		panic("Distance: prediction and target must have same length")
	}
	return floats.Distance(yTrue, yPred, 2)
}
