package train

import (
	"log/slog"
	"math"
)

// Callback defines the interface for training callbacks.
type Callback interface {
	OnTrainBegin(t *Trainer)
	OnTrainEnd(t *Trainer)
	OnEpochBegin(epoch int, t *Trainer)
	OnEpochEnd(epoch int, loss float64, t *Trainer)
	OnStepBegin(step int, t *Trainer)
	OnStepEnd(step int, loss float64, t *Trainer)
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(t *Trainer)                        {}
func (c BaseCallback) OnTrainEnd(t *Trainer)                          {}
func (c BaseCallback) OnEpochBegin(epoch int, t *Trainer)             {}
func (c BaseCallback) OnEpochEnd(epoch int, loss float64, t *Trainer) {}
func (c BaseCallback) OnStepBegin(step int, t *Trainer)               {}
func (c BaseCallback) OnStepEnd(step int, loss float64, t *Trainer)   {}

// EarlyStopping stops training when the epoch error has stopped improving
// by more than Threshold for Patience epochs. State is reset at the start of
// every Fit, so the zero value is usable.
type EarlyStopping struct {
	BaseCallback
	Patience  int
	Threshold float64

	bestLoss     float64
	numBadEpochs int
	Stopped      bool
}

func NewEarlyStopping(patience int, threshold float64) *EarlyStopping {
	return &EarlyStopping{
		Patience:  patience,
		Threshold: threshold,
		bestLoss:  math.Inf(1),
	}
}

func (c *EarlyStopping) OnTrainBegin(t *Trainer) {
	c.bestLoss = math.Inf(1)
	c.numBadEpochs = 0
	c.Stopped = false
}

func (c *EarlyStopping) OnEpochEnd(epoch int, loss float64, t *Trainer) {
	if loss < c.bestLoss-c.Threshold {
		c.bestLoss = loss
		c.numBadEpochs = 0
	} else {
		c.numBadEpochs++
	}

	if c.numBadEpochs >= c.Patience && c.numBadEpochs > 0 {
		t.Logger().Info("early stopping", "epoch", epoch, "error", loss, "patience", c.Patience)
		c.Stopped = true
		t.Stop()
	}
}

// Logger logs training progress every Interval epochs. Log defaults to the
// trainer's logger.
type Logger struct {
	BaseCallback
	Interval int
	Log      *slog.Logger
}

func (c Logger) OnEpochEnd(epoch int, loss float64, t *Trainer) {
	if c.Interval <= 0 || epoch%c.Interval != 0 {
		return
	}
	log := c.Log
	if log == nil {
		log = t.Logger()
	}
	log.Info("epoch", "epoch", epoch, "error", loss, "steps", t.Steps(), "skipped", t.Skipped())
}
