package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/FlavioCFOliveira/backprop/internal/dataset"
	"github.com/FlavioCFOliveira/backprop/internal/train"
)

func main() {
	var (
		hidden   = flag.Int("hidden", 3, "hidden layer width")
		epochs   = flag.Int("epochs", 5000, "training epochs")
		lr       = flag.Float64("lr", 0.5, "learning rate")
		seed     = flag.Uint64("seed", 42, "initialization seed")
		every    = flag.Int("log-every", 500, "log the epoch error every N epochs (0 disables)")
		logLevel = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level: %v\n", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fmt.Println("=== XOR Training Example ===")

	// Create a simple XOR network: 2 inputs -> hidden -> 1 output
	// The XOR function cannot be solved by a single-layer perceptron
	// but can be solved by a multi-layer perceptron with hidden layers
	cfg := train.Config{
		Layers:       []int{*hidden, 1},
		InputWidth:   2,
		LearningRate: *lr,
		Epochs:       *epochs,
		Seed:         *seed,
		LogInterval:  *every,
		Logger:       logger,
	}

	trainer, err := train.New(cfg)
	if err != nil {
		logger.Error("building trainer", "err", err)
		os.Exit(1)
	}
	trainer.Network().Summary(os.Stdout)

	// XOR training data
	ds := &dataset.Dataset{
		Inputs: [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		Labels: [][]float64{{0}, {1}, {1}, {0}},
	}

	h, err := trainer.Fit(ds, cfg.Epochs)
	if err != nil {
		logger.Error("training", "err", err)
		os.Exit(1)
	}
	logger.Info("training done", "epochs", len(h.Loss), "steps", h.Steps)

	// Test the network
	fmt.Println("\nTesting trained network:")
	for i := range ds.Inputs {
		pred, err := trainer.Network().Predict(ds.Inputs[i])
		if err != nil {
			logger.Error("predict", "err", err)
			os.Exit(1)
		}
		fmt.Printf("Input: %v, Predicted: %.4f, Target: %v\n", ds.Inputs[i], pred[0], ds.Labels[i][0])
	}
}
