// Package backprop is the public entry point: a sigmoid feedforward
// network, the four passes of one online gradient-descent step, and the
// training driver built on them.
package backprop

import (
	"fmt"

	"github.com/FlavioCFOliveira/backprop/internal/dataset"
	"github.com/FlavioCFOliveira/backprop/internal/layer"
	"github.com/FlavioCFOliveira/backprop/internal/net"
	"github.com/FlavioCFOliveira/backprop/internal/train"
)

// Re-export common types and functions for easier access
type (
	Network      = net.Network
	Activations  = net.Activations
	Deltas       = net.Deltas
	WeightDeltas = net.WeightDeltas
	Option       = net.Option
	Initializer  = layer.Initializer

	Dataset   = dataset.Dataset
	Config    = train.Config
	Trainer   = train.Trainer
	History   = train.History
	RunResult = train.RunResult
	Callback  = train.Callback
)

// Errors
var (
	ErrInvalidShape      = net.ErrInvalidShape
	ErrDimensionMismatch = net.ErrDimensionMismatch
)

// ConstructNetwork creates a network of layerCount layers, layerSizes[i]
// units in layer i, the first layer consuming inputWidth values.
// layerCount must equal len(layerSizes).
func ConstructNetwork(layerCount int, layerSizes []int, inputWidth int, opts ...Option) (*Network, error) {
	if layerCount != len(layerSizes) {
		return nil, fmt.Errorf("%w: layer count %d but %d layer sizes", ErrInvalidShape, layerCount, len(layerSizes))
	}
	return net.New(layerSizes, inputWidth, opts...)
}

// Forward returns every layer's activation for input.
func Forward(n *Network, input []float64) (Activations, error) {
	return n.Forward(input)
}

// Backward returns every layer's delta for a forward snapshot and labels.
func Backward(n *Network, acts Activations, labels []float64) (Deltas, error) {
	return n.Backward(acts, labels)
}

// WeightDeltasOf returns the per-layer weight updates, scaled by
// -learningRate.
func WeightDeltasOf(n *Network, input []float64, acts Activations, deltas Deltas, learningRate float64) (WeightDeltas, error) {
	return n.WeightDeltas(input, acts, deltas, learningRate)
}

// ApplyUpdate adds the weight deltas and subtracts learningRate·delta from
// the biases, in place.
func ApplyUpdate(n *Network, wd WeightDeltas, deltas Deltas, learningRate float64) error {
	return n.ApplyUpdate(wd, deltas, learningRate)
}

// Error returns ½·Σ(o−y)² for the final activation.
func Error(acts Activations, labels []float64) (float64, error) {
	return net.Error(acts, labels)
}

// Network options
func WithSeed(seed uint64) Option             { return net.WithSeed(seed) }
func WithZeroInit() Option                    { return net.WithZeroInit() }
func WithInitializer(init Initializer) Option { return net.WithInitializer(init) }

// Training
func DefaultConfig() Config { return train.DefaultConfig() }

func NewTrainer(cfg Config, opts ...train.Option) (*Trainer, error) {
	return train.New(cfg, opts...)
}

func WithCallbacks(cbs ...Callback) train.Option { return train.WithCallbacks(cbs...) }

func RunMany(configs []Config, ds *Dataset, workers int) []RunResult {
	return train.RunMany(configs, ds, workers)
}

// Datasets
func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	return dataset.LoadCSV(filename, labelCols, hasHeader)
}

// Callbacks
func EarlyStopping(patience int, threshold float64) *train.EarlyStopping {
	return train.NewEarlyStopping(patience, threshold)
}

func CSVLogger(filename string, append bool) *train.CSVLogger {
	return train.NewCSVLogger(filename, append)
}
