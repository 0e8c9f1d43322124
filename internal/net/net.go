// Package net provides the feedforward sigmoid network and the passes that
// train it: forward, backward (deltas), weight deltas and parameter update.
package net

import (
	"fmt"
	"io"

	"github.com/FlavioCFOliveira/backprop/internal/activations"
	"github.com/FlavioCFOliveira/backprop/internal/layer"
	"github.com/FlavioCFOliveira/backprop/internal/loss"
	"github.com/FlavioCFOliveira/backprop/internal/opt"
	"gonum.org/v1/gonum/mat"
)

// DefaultSeed seeds the Xavier initializer when no initializer option is given.
const DefaultSeed uint64 = 1

// Activations holds the post-sigmoid output of every layer for one input.
// The last entry is the network output.
type Activations []*mat.VecDense

// Output returns a copy of the final layer's activation.
func (a Activations) Output() []float64 {
	if len(a) == 0 || a[len(a)-1] == nil {
		return nil
	}
	return mat.Col(nil, 0, a[len(a)-1])
}

// Deltas holds the error gradient w.r.t. each layer's pre-activation sum.
type Deltas []*mat.VecDense

// WeightDeltas holds one update matrix per layer, shape-matched to the
// weights and already multiplied by -learningRate.
type WeightDeltas []*mat.Dense

// Network is a stack of dense sigmoid layers.
type Network struct {
	layers     []*layer.Dense
	inputWidth int
}

// Option configures network construction.
type Option func(*options)

type options struct {
	init layer.Initializer
}

// WithInitializer sets the parameter initializer for every layer.
func WithInitializer(init layer.Initializer) Option {
	return func(o *options) { o.init = init }
}

// WithSeed initializes parameters with Xavier uniform drawn from a source
// seeded by seed.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.init = layer.NewXavier(seed) }
}

// WithZeroInit sets every weight and bias to zero.
func WithZeroInit() Option {
	return WithInitializer(layer.Zeros{})
}

// New creates a network with one layer per entry of layerSizes, the first
// layer consuming inputWidth values. Parameters default to Xavier uniform
// seeded with DefaultSeed.
func New(layerSizes []int, inputWidth int, opts ...Option) (*Network, error) {
	if len(layerSizes) == 0 {
		return nil, invalidShape("no layers")
	}
	if inputWidth <= 0 {
		return nil, invalidShape("input width %d", inputWidth)
	}
	for i, size := range layerSizes {
		if size <= 0 {
			return nil, invalidShape("layer %d has width %d", i, size)
		}
	}

	o := options{init: layer.NewXavier(DefaultSeed)}
	for _, apply := range opts {
		apply(&o)
	}

	layers := make([]*layer.Dense, len(layerSizes))
	in := inputWidth
	for i, size := range layerSizes {
		layers[i] = layer.NewDense(in, size, o.init)
		in = size
	}

	return &Network{layers: layers, inputWidth: inputWidth}, nil
}

// NumLayers returns the number of layers L.
func (n *Network) NumLayers() int {
	return len(n.layers)
}

// InputWidth returns the expected input length.
func (n *Network) InputWidth() int {
	return n.inputWidth
}

// OutputWidth returns the width of the final layer.
func (n *Network) OutputWidth() int {
	return n.layers[len(n.layers)-1].OutSize()
}

// LayerSizes returns the width of every layer.
func (n *Network) LayerSizes() []int {
	sizes := make([]int, len(n.layers))
	for i, l := range n.layers {
		sizes[i] = l.OutSize()
	}
	return sizes
}

// Layer returns layer i. The layer is live: changing it changes the network.
func (n *Network) Layer(i int) *layer.Dense {
	return n.layers[i]
}

// Layers returns the network's layers slice.
func (n *Network) Layers() []*layer.Dense {
	return n.layers
}

// SetWeights overwrites layer i's weight matrix from rows, one row per unit.
func (n *Network) SetWeights(i int, rows [][]float64) error {
	if i < 0 || i >= len(n.layers) {
		return mismatch("layer index %d out of range [0,%d)", i, len(n.layers))
	}
	l := n.layers[i]
	if len(rows) != l.OutSize() {
		return mismatch("layer %d: got %d weight rows, want %d", i, len(rows), l.OutSize())
	}
	for j, row := range rows {
		if len(row) != l.InSize() {
			return mismatch("layer %d row %d: got %d weights, want %d", i, j, len(row), l.InSize())
		}
	}
	w := l.Weights()
	for j, row := range rows {
		w.SetRow(j, row)
	}
	return nil
}

// SetBiases overwrites layer i's bias vector.
func (n *Network) SetBiases(i int, biases []float64) error {
	if i < 0 || i >= len(n.layers) {
		return mismatch("layer index %d out of range [0,%d)", i, len(n.layers))
	}
	l := n.layers[i]
	if len(biases) != l.OutSize() {
		return mismatch("layer %d: got %d biases, want %d", i, len(biases), l.OutSize())
	}
	copy(l.Biases().RawVector().Data, biases)
	return nil
}

// Forward computes every layer's activation for input:
// a[0] = sigmoid(b[0] + W[0]·x), a[i] = sigmoid(b[i] + W[i]·a[i-1]).
// The network is not modified.
func (n *Network) Forward(input []float64) (Activations, error) {
	if len(input) != n.inputWidth {
		return nil, mismatch("input has %d values, want %d", len(input), n.inputWidth)
	}

	acts := make(Activations, len(n.layers))
	var x mat.Vector = mat.NewVecDense(len(input), input)
	for i, l := range n.layers {
		acts[i] = l.Forward(x)
		x = acts[i]
	}
	return acts, nil
}

// Predict returns the network output for input.
func (n *Network) Predict(input []float64) ([]float64, error) {
	acts, err := n.Forward(input)
	if err != nil {
		return nil, err
	}
	return acts.Output(), nil
}

// Backward computes the delta of every layer from a forward snapshot and the
// target labels. For the output layer delta = (o - y) ⊙ o ⊙ (1 - o); for a
// hidden layer i, delta[i] = (W[i+1]ᵀ·delta[i+1]) ⊙ a[i] ⊙ (1 - a[i]).
func (n *Network) Backward(acts Activations, labels []float64) (Deltas, error) {
	if err := n.checkActivations(acts); err != nil {
		return nil, err
	}
	if len(labels) != n.OutputWidth() {
		return nil, mismatch("labels have %d values, want %d", len(labels), n.OutputWidth())
	}

	var sig activations.Sigmoid
	last := len(n.layers) - 1
	deltas := make(Deltas, len(n.layers))

	o := acts[last]
	grad := loss.HalfSSE{}.Backward(mat.Col(nil, 0, o), labels)
	d := mat.NewVecDense(len(grad), grad)
	d.MulElemVec(d, sig.OutputDerivativeVec(o))
	deltas[last] = d

	for i := last - 1; i >= 0; i-- {
		e := n.layers[i+1].Backproject(deltas[i+1])
		e.MulElemVec(e, sig.OutputDerivativeVec(acts[i]))
		deltas[i] = e
	}
	return deltas, nil
}

// WeightDeltas computes the per-weight update of one gradient-descent step:
// dW[0] = -lr·delta[0]⊗x and dW[i] = -lr·delta[i]⊗a[i-1].
func (n *Network) WeightDeltas(input []float64, acts Activations, deltas Deltas, learningRate float64) (WeightDeltas, error) {
	sgd := opt.SGD{LearningRate: learningRate}
	if err := sgd.Validate(); err != nil {
		return nil, err
	}
	if len(input) != n.inputWidth {
		return nil, mismatch("input has %d values, want %d", len(input), n.inputWidth)
	}
	if err := n.checkActivations(acts); err != nil {
		return nil, err
	}
	if err := n.checkDeltas(deltas); err != nil {
		return nil, err
	}

	wd := make(WeightDeltas, len(n.layers))
	var prev mat.Vector = mat.NewVecDense(len(input), input)
	for i := range n.layers {
		wd[i] = sgd.WeightDelta(deltas[i], prev)
		prev = acts[i]
	}
	return wd, nil
}

// ApplyUpdate mutates the network in place: W[i] += dW[i] and
// b[i] -= lr·delta[i]. All shapes are checked before anything is written.
func (n *Network) ApplyUpdate(wd WeightDeltas, deltas Deltas, learningRate float64) error {
	sgd := opt.SGD{LearningRate: learningRate}
	if err := sgd.Validate(); err != nil {
		return err
	}
	if len(wd) != len(n.layers) {
		return mismatch("got %d weight deltas, want %d", len(wd), len(n.layers))
	}
	for i, l := range n.layers {
		if wd[i] == nil {
			return mismatch("weight delta %d is nil", i)
		}
		if r, c := wd[i].Dims(); r != l.OutSize() || c != l.InSize() {
			return mismatch("weight delta %d is %dx%d, want %dx%d", i, r, c, l.OutSize(), l.InSize())
		}
	}
	if err := n.checkDeltas(deltas); err != nil {
		return err
	}

	for i, l := range n.layers {
		l.Update(sgd, wd[i], deltas[i])
	}
	return nil
}

// Train performs one full gradient-descent step on a single example and
// returns the error measured before the update.
func (n *Network) Train(input, labels []float64, learningRate float64) (float64, error) {
	acts, err := n.Forward(input)
	if err != nil {
		return 0, err
	}
	deltas, err := n.Backward(acts, labels)
	if err != nil {
		return 0, err
	}
	wd, err := n.WeightDeltas(input, acts, deltas, learningRate)
	if err != nil {
		return 0, err
	}
	e, err := Error(acts, labels)
	if err != nil {
		return 0, err
	}
	return e, n.ApplyUpdate(wd, deltas, learningRate)
}

// Error returns half the sum of squared differences between the final
// activation and labels. It is for observability only.
func Error(acts Activations, labels []float64) (float64, error) {
	if len(acts) == 0 || acts[len(acts)-1] == nil {
		return 0, mismatch("empty activation snapshot")
	}
	o := acts[len(acts)-1]
	if o.Len() != len(labels) {
		return 0, mismatch("labels have %d values, output has %d", len(labels), o.Len())
	}
	return loss.HalfSSE{}.Forward(mat.Col(nil, 0, o), labels), nil
}

func (n *Network) checkActivations(acts Activations) error {
	if len(acts) != len(n.layers) {
		return mismatch("got %d activation vectors, want %d", len(acts), len(n.layers))
	}
	for i, a := range acts {
		if a == nil || a.Len() != n.layers[i].OutSize() {
			return mismatch("activation %d has wrong length, want %d", i, n.layers[i].OutSize())
		}
	}
	return nil
}

func (n *Network) checkDeltas(deltas Deltas) error {
	if len(deltas) != len(n.layers) {
		return mismatch("got %d delta vectors, want %d", len(deltas), len(n.layers))
	}
	for i, d := range deltas {
		if d == nil || d.Len() != n.layers[i].OutSize() {
			return mismatch("delta %d has wrong length, want %d", i, n.layers[i].OutSize())
		}
	}
	return nil
}

// Params returns all network parameters flattened (copy), layer by layer,
// each layer's weights row-major followed by its biases.
func (n *Network) Params() []float64 {
	params := make([]float64, 0, n.NumParams())
	for _, l := range n.layers {
		params = append(params, l.Params()...)
	}
	return params
}

// SetParams overwrites all parameters from the layout returned by Params.
func (n *Network) SetParams(params []float64) error {
	if len(params) != n.NumParams() {
		return mismatch("got %d parameters, want %d", len(params), n.NumParams())
	}
	offset := 0
	for _, l := range n.layers {
		l.SetParams(params[offset : offset+l.NumParams()])
		offset += l.NumParams()
	}
	return nil
}

// NumParams returns the total number of weights and biases.
func (n *Network) NumParams() int {
	total := 0
	for _, l := range n.layers {
		total += l.NumParams()
	}
	return total
}

// Clone returns a deep copy that shares no memory with n.
func (n *Network) Clone() *Network {
	layers := make([]*layer.Dense, len(n.layers))
	for i, l := range n.layers {
		layers[i] = l.Clone()
	}
	return &Network{layers: layers, inputWidth: n.inputWidth}
}

// Summary writes a summary of the network architecture.
func (n *Network) Summary(w io.Writer) {
	fmt.Fprintln(w, "Model: Sigmoid feedforward")
	fmt.Fprintln(w, "_________________________________________________________________")
	fmt.Fprintf(w, "%-25s %-20s %-10s\n", "Layer (type)", "Output Shape", "Param #")
	fmt.Fprintln(w, "=================================================================")
	fmt.Fprintf(w, "%-25s %-20s %-10d\n", "Input", fmt.Sprintf("(%d)", n.inputWidth), 0)
	for i, l := range n.layers {
		fmt.Fprintf(w, "%-25s %-20s %-10d\n", fmt.Sprintf("Dense_%d", i), fmt.Sprintf("(%d)", l.OutSize()), l.NumParams())
	}
	fmt.Fprintln(w, "=================================================================")
	fmt.Fprintf(w, "Total params: %d\n", n.NumParams())
	fmt.Fprintln(w, "_________________________________________________________________")
}
