// Package layer provides the fully connected sigmoid layer.
package layer

import (
	"fmt"

	"github.com/FlavioCFOliveira/backprop/internal/activations"
	"github.com/FlavioCFOliveira/backprop/internal/opt"
	"gonum.org/v1/gonum/mat"
)

// Dense is a fully connected layer with a sigmoid activation.
type Dense struct {
	// Shape: [out x in]; entry (j, k) is the weight from source unit k
	// to destination unit j.
	weights *mat.Dense
	biases  *mat.VecDense
	act     activations.Sigmoid
	outSize int
	inSize  int
}

// NewDense creates a dense layer with in inputs and out units, its
// parameters drawn from init. It panics if in or out is not positive.
func NewDense(in, out int, init Initializer) *Dense {
	if in <= 0 || out <= 0 {
		panic(fmt.Sprintf("layer: invalid dense shape %dx%d", out, in))
	}

	w := init.Weights(in, out)
	b := init.Biases(in, out)
	if len(w) != out*in || len(b) != out {
		panic(fmt.Sprintf("layer: initializer returned %d weights and %d biases for %dx%d", len(w), len(b), out, in))
	}

	return &Dense{
		weights: mat.NewDense(out, in, w),
		biases:  mat.NewVecDense(out, b),
		outSize: out,
		inSize:  in,
	}
}

// Forward computes sigmoid(W·x + b). x must have InSize elements.
func (d *Dense) Forward(x mat.Vector) *mat.VecDense {
	var a mat.VecDense
	a.MulVec(d.weights, x)
	a.AddVec(&a, d.biases)
	d.act.ActivateVec(&a)
	return &a
}

// Backproject maps a delta on this layer's units back onto its inputs: Wᵀ·delta.
func (d *Dense) Backproject(delta mat.Vector) *mat.VecDense {
	var e mat.VecDense
	e.MulVec(d.weights.T(), delta)
	return &e
}

// Update applies one SGD step in place: W += dw, b -= lr·delta.
func (d *Dense) Update(sgd opt.SGD, dw mat.Matrix, delta mat.Vector) {
	sgd.UpdateWeights(d.weights, dw)
	sgd.UpdateBias(d.biases, delta)
}

// Params returns all dense layer parameters flattened, weights row-major
// followed by biases.
func (d *Dense) Params() []float64 {
	params := make([]float64, 0, d.NumParams())
	params = append(params, d.weights.RawMatrix().Data...)
	params = append(params, d.biases.RawVector().Data...)
	return params
}

// SetParams updates weights and biases from a flattened slice (in-place).
func (d *Dense) SetParams(params []float64) {
	nw := d.outSize * d.inSize
	copy(d.weights.RawMatrix().Data, params[:nw])
	copy(d.biases.RawVector().Data, params[nw:nw+d.outSize])
}

// NumParams returns the number of weights plus biases.
func (d *Dense) NumParams() int {
	return d.outSize*d.inSize + d.outSize
}

// Weights returns the weight matrix directly.
func (d *Dense) Weights() *mat.Dense {
	return d.weights
}

// Biases returns the bias vector directly.
func (d *Dense) Biases() *mat.VecDense {
	return d.biases
}

// SetWeight sets a single weight at (row, col).
func (d *Dense) SetWeight(row, col int, val float64) {
	d.weights.Set(row, col, val)
}

// SetBias sets a single bias.
func (d *Dense) SetBias(idx int, val float64) {
	d.biases.SetVec(idx, val)
}

// GetWeight gets a single weight at (row, col).
func (d *Dense) GetWeight(row, col int) float64 {
	return d.weights.At(row, col)
}

// GetBias gets a single bias.
func (d *Dense) GetBias(idx int) float64 {
	return d.biases.AtVec(idx)
}

// InSize returns the input size of the layer.
func (d *Dense) InSize() int {
	return d.inSize
}

// OutSize returns the output size of the layer.
func (d *Dense) OutSize() int {
	return d.outSize
}

// Clone returns a deep copy of the layer.
func (d *Dense) Clone() *Dense {
	return &Dense{
		weights: mat.DenseCopyOf(d.weights),
		biases:  mat.VecDenseCopyOf(d.biases),
		outSize: d.outSize,
		inSize:  d.inSize,
	}
}
