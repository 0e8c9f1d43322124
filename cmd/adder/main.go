// Command adder trains a network to add two numbers. The sum s is taught as
// sigmoid(s) so it fits the output range, and decoded back with the logit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/FlavioCFOliveira/backprop/internal/activations"
	"github.com/FlavioCFOliveira/backprop/internal/dataset"
	"github.com/FlavioCFOliveira/backprop/internal/loss"
	"github.com/FlavioCFOliveira/backprop/internal/train"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

func main() {
	var (
		hidden   = flag.Int("hidden", 16, "hidden layer width")
		samples  = flag.Int("samples", 200, "number of generated pairs")
		span     = flag.Float64("span", 2, "operands are drawn from [-span, span]")
		epochs   = flag.Int("epochs", 3000, "training epochs")
		lr       = flag.Float64("lr", 0.5, "learning rate")
		seed     = flag.Uint64("seed", 1, "seed for data and initialization")
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

	operand := distuv.Uniform{Min: -*span, Max: *span, Src: rand.NewSource(*seed)}
	var sig activations.Sigmoid
	ds := &dataset.Dataset{}
	for i := 0; i < *samples; i++ {
		a, b := operand.Rand(), operand.Rand()
		ds.Add([]float64{a, b}, []float64{sig.Activate(a + b)})
	}
	trainSet, testSet := ds.Split(0.8)

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

	if _, err := trainer.Fit(trainSet, cfg.Epochs); err != nil {
		logger.Error("training", "err", err)
		os.Exit(1)
	}

	network := trainer.Snapshot()
	testErr, err := train.Evaluate(network, testSet)
	if err != nil {
		logger.Error("evaluating", "err", err)
		os.Exit(1)
	}

	fmt.Println("a + b = want / got")
	dist, absErr := 0.0, 0.0
	for i := range testSet.Inputs {
		x, y := testSet.Inputs[i], testSet.Labels[i]
		pred, err := network.Predict(x)
		if err != nil {
			logger.Error("predict", "err", err)
			os.Exit(1)
		}
		dist += loss.Distance(pred, y)
		got := activations.Logit(pred[0])
		absErr += math.Abs(got - (x[0] + x[1]))
		if i < 10 {
			fmt.Printf("%+.3f + %+.3f = %+.3f / %+.3f\n", x[0], x[1], x[0]+x[1], got)
		}
	}
	n := float64(max(testSet.Len(), 1))
	logger.Info("test set",
		"pairs", testSet.Len(),
		"half_sse", testErr,
		"l2_distance", dist/n,
		"mean_abs_sum_error", absErr/n)

	fmt.Println()
	network.Summary(os.Stdout)
}
