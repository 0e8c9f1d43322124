package train

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/FlavioCFOliveira/backprop/internal/net"
	"github.com/FlavioCFOliveira/backprop/internal/opt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("train: invalid config")

// Config describes one training run.
type Config struct {
	Layers       []int // width of every layer, the last is the output width
	InputWidth   int
	LearningRate float64
	Epochs       int
	Seed         uint64

	// LogInterval logs the epoch error every LogInterval epochs. 0 disables it.
	LogInterval int

	// SkipMismatched logs and skips pairs whose shape does not fit the
	// network instead of failing the run.
	SkipMismatched bool

	// Logger receives run progress. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns the settings of a 2-3-1 network trained for 5000
// epochs at learning rate 0.5.
func DefaultConfig() Config {
	return Config{
		Layers:       []int{3, 1},
		InputWidth:   2,
		LearningRate: 0.5,
		Epochs:       5000,
		Seed:         net.DefaultSeed,
		LogInterval:  500,
	}
}

// Validate reports the first setting that cannot start a run.
func (c Config) Validate() error {
	if len(c.Layers) == 0 {
		return fmt.Errorf("%w: %w: no layers", ErrInvalidConfig, net.ErrInvalidShape)
	}
	for i, size := range c.Layers {
		if size <= 0 {
			return fmt.Errorf("%w: %w: layer %d has width %d", ErrInvalidConfig, net.ErrInvalidShape, i, size)
		}
	}
	if c.InputWidth <= 0 {
		return fmt.Errorf("%w: %w: input width %d", ErrInvalidConfig, net.ErrInvalidShape, c.InputWidth)
	}
	if err := (opt.SGD{LearningRate: c.LearningRate}).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Epochs < 0 {
		return fmt.Errorf("%w: epochs %d", ErrInvalidConfig, c.Epochs)
	}
	if c.LogInterval < 0 {
		return fmt.Errorf("%w: log interval %d", ErrInvalidConfig, c.LogInterval)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}
