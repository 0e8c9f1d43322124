// Package train drives online gradient descent over a network: one
// forward/backward/update step per (input, label) pair, round-robin over a
// dataset for a number of epochs.
package train

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/FlavioCFOliveira/backprop/internal/dataset"
	"github.com/FlavioCFOliveira/backprop/internal/net"
)

// State is the position of a Trainer inside one step.
type State int

// A step moves Idle -> ForwardComputed -> DeltasComputed ->
// WeightDeltasComputed -> Updated -> Idle. A failing stage returns to Idle.
const (
	Idle State = iota
	ForwardComputed
	DeltasComputed
	WeightDeltasComputed
	Updated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case ForwardComputed:
		return "ForwardComputed"
	case DeltasComputed:
		return "DeltasComputed"
	case WeightDeltasComputed:
		return "WeightDeltasComputed"
	case Updated:
		return "Updated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// StepResult is everything one step computed. Error is measured before the
// update is applied.
type StepResult struct {
	Activations  net.Activations
	Deltas       net.Deltas
	WeightDeltas net.WeightDeltas
	Error        float64
}

// History records a Fit call.
type History struct {
	Loss    []float64 // mean pre-update error of each completed epoch
	Steps   int
	Skipped int
	Stopped bool // a callback called Stop
}

// Trainer exclusively owns a network and mutates it one step at a time.
// It is not safe for concurrent use; hand Snapshot copies to readers.
type Trainer struct {
	network   *net.Network
	cfg       Config
	log       *slog.Logger
	callbacks []Callback
	observe   func(from, to State)

	state   State
	steps   int
	skipped int
	stop    bool
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithLogger overrides Config.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Trainer) {
		if l != nil {
			t.log = l
		}
	}
}

// WithCallbacks registers callbacks, called in order.
func WithCallbacks(cbs ...Callback) Option {
	return func(t *Trainer) { t.callbacks = append(t.callbacks, cbs...) }
}

// WithStateObserver calls fn on every state transition.
func WithStateObserver(fn func(from, to State)) Option {
	return func(t *Trainer) { t.observe = fn }
}

// New builds a network from cfg (Xavier initialization seeded by cfg.Seed)
// and a trainer that owns it.
func New(cfg Config, opts ...Option) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	network, err := net.New(cfg.Layers, cfg.InputWidth, net.WithSeed(cfg.Seed))
	if err != nil {
		return nil, err
	}
	return newTrainer(network, cfg, opts), nil
}

// NewWithNetwork wraps an existing network. The network's shape replaces
// cfg.Layers and cfg.InputWidth; the caller must not use it concurrently
// with the trainer.
func NewWithNetwork(network *net.Network, cfg Config, opts ...Option) (*Trainer, error) {
	if network == nil {
		return nil, fmt.Errorf("%w: nil network", ErrInvalidConfig)
	}
	cfg.Layers = network.LayerSizes()
	cfg.InputWidth = network.InputWidth()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newTrainer(network, cfg, opts), nil
}

func newTrainer(network *net.Network, cfg Config, opts []Option) *Trainer {
	t := &Trainer{
		network: network,
		cfg:     cfg,
		log:     cfg.logger(),
	}
	for _, apply := range opts {
		apply(t)
	}
	if cfg.LogInterval > 0 {
		t.callbacks = append(t.callbacks, Logger{Interval: cfg.LogInterval})
	}
	return t
}

// Network returns the owned network.
func (t *Trainer) Network() *net.Network { return t.network }

// Config returns the run configuration.
func (t *Trainer) Config() Config { return t.cfg }

// Logger returns the trainer's logger.
func (t *Trainer) Logger() *slog.Logger { return t.log }

// State returns the current step state. It is Idle between steps.
func (t *Trainer) State() State { return t.state }

// Steps returns the number of completed steps.
func (t *Trainer) Steps() int { return t.steps }

// Skipped returns the number of pairs skipped by the current or last Fit.
func (t *Trainer) Skipped() int { return t.skipped }

// Snapshot returns a deep copy of the network.
func (t *Trainer) Snapshot() *net.Network { return t.network.Clone() }

// Stop makes Fit return after the current epoch.
func (t *Trainer) Stop() { t.stop = true }

func (t *Trainer) setState(s State) {
	if t.observe != nil {
		t.observe(t.state, s)
	}
	t.state = s
}

func (t *Trainer) fail(err error) (StepResult, error) {
	if t.state != Idle {
		t.setState(Idle)
	}
	return StepResult{}, err
}

// Step performs one gradient-descent step on (input, labels).
func (t *Trainer) Step(input, labels []float64) (StepResult, error) {
	lr := t.cfg.LearningRate

	acts, err := t.network.Forward(input)
	if err != nil {
		return t.fail(err)
	}
	t.setState(ForwardComputed)

	deltas, err := t.network.Backward(acts, labels)
	if err != nil {
		return t.fail(err)
	}
	t.setState(DeltasComputed)

	wd, err := t.network.WeightDeltas(input, acts, deltas, lr)
	if err != nil {
		return t.fail(err)
	}
	t.setState(WeightDeltasComputed)

	e, err := net.Error(acts, labels)
	if err != nil {
		return t.fail(err)
	}
	if err := t.network.ApplyUpdate(wd, deltas, lr); err != nil {
		return t.fail(err)
	}
	t.setState(Updated)

	t.steps++
	t.setState(Idle)
	return StepResult{Activations: acts, Deltas: deltas, WeightDeltas: wd, Error: e}, nil
}

// Fit applies Step to every pair of ds in order, epochs times. Unless
// Config.SkipMismatched is set, the dataset is validated against the network
// first and a mismatch fails before any update.
func (t *Trainer) Fit(ds *dataset.Dataset, epochs int) (History, error) {
	var h History
	if ds == nil {
		return h, fmt.Errorf("%w: nil dataset", ErrInvalidConfig)
	}
	if epochs < 0 {
		return h, fmt.Errorf("%w: epochs %d", ErrInvalidConfig, epochs)
	}
	if !t.cfg.SkipMismatched {
		if err := ds.Validate(t.network.InputWidth(), t.network.OutputWidth()); err != nil {
			return h, err
		}
	}

	t.stop = false
	t.skipped = 0
	for _, cb := range t.callbacks {
		cb.OnTrainBegin(t)
	}
	defer func() {
		for _, cb := range t.callbacks {
			cb.OnTrainEnd(t)
		}
	}()

	for epoch := 0; epoch < epochs; epoch++ {
		for _, cb := range t.callbacks {
			cb.OnEpochBegin(epoch, t)
		}

		total, trained := 0.0, 0
		for i := 0; i < ds.Len(); i++ {
			for _, cb := range t.callbacks {
				cb.OnStepBegin(t.steps, t)
			}
			res, err := t.pairStep(ds, i)
			if err != nil {
				if t.cfg.SkipMismatched && errors.Is(err, net.ErrDimensionMismatch) {
					t.skipped++
					h.Skipped++
					t.log.Warn("skipping pair", "epoch", epoch, "pair", i, "err", err)
					continue
				}
				return h, fmt.Errorf("epoch %d pair %d: %w", epoch, i, err)
			}
			total += res.Error
			trained++
			h.Steps++
			for _, cb := range t.callbacks {
				cb.OnStepEnd(t.steps-1, res.Error, t)
			}
		}

		loss := 0.0
		if trained > 0 {
			loss = total / float64(trained)
		}
		h.Loss = append(h.Loss, loss)
		for _, cb := range t.callbacks {
			cb.OnEpochEnd(epoch, loss, t)
		}

		if t.stop {
			h.Stopped = true
			break
		}
	}

	return h, nil
}

func (t *Trainer) pairStep(ds *dataset.Dataset, i int) (StepResult, error) {
	if i >= len(ds.Labels) {
		return StepResult{}, fmt.Errorf("%w: pair %d has no label", net.ErrDimensionMismatch, i)
	}
	return t.Step(ds.Inputs[i], ds.Labels[i])
}

// Evaluate returns the mean error of the network over ds without updating it.
func (t *Trainer) Evaluate(ds *dataset.Dataset) (float64, error) {
	return Evaluate(t.network, ds)
}

// Evaluate returns the mean error of network over ds.
func Evaluate(network *net.Network, ds *dataset.Dataset) (float64, error) {
	if ds == nil || ds.Len() == 0 {
		return 0, nil
	}
	if len(ds.Labels) != ds.Len() {
		return 0, fmt.Errorf("%w: %d inputs, %d labels", net.ErrDimensionMismatch, ds.Len(), len(ds.Labels))
	}
	total := 0.0
	for i := range ds.Inputs {
		acts, err := network.Forward(ds.Inputs[i])
		if err != nil {
			return 0, fmt.Errorf("pair %d: %w", i, err)
		}
		e, err := net.Error(acts, ds.Labels[i])
		if err != nil {
			return 0, fmt.Errorf("pair %d: %w", i, err)
		}
		total += e
	}
	return total / float64(ds.Len()), nil
}
