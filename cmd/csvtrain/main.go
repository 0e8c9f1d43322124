// Command csvtrain trains a sigmoid network on a CSV file.
//
//	csvtrain -file data.csv -labels 4 -header -layers 8,1 -seeds 4
//
// With -seeds > 1 one independent network is trained per seed and the one
// with the lowest final error is evaluated.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/FlavioCFOliveira/backprop/internal/dataset"
	"github.com/FlavioCFOliveira/backprop/internal/net"
	"github.com/FlavioCFOliveira/backprop/internal/train"
)

func main() {
	var (
		file      = flag.String("file", "", "CSV file to train on (required)")
		labelCols = flag.String("labels", "", "comma-separated label column indices")
		header    = flag.Bool("header", false, "skip the first CSV line")
		layers    = flag.String("layers", "8,1", "comma-separated layer widths, the last is the output")
		lr        = flag.Float64("lr", 0.5, "learning rate")
		epochs    = flag.Int("epochs", 1000, "training epochs")
		seed      = flag.Uint64("seed", net.DefaultSeed, "first initialization seed")
		seeds     = flag.Int("seeds", 1, "number of independent runs, seeded seed, seed+1, ...")
		workers   = flag.Int("workers", 4, "concurrent runs when -seeds > 1")
		split     = flag.Float64("split", 0.8, "fraction of rows used for training")
		normalize = flag.Bool("normalize", true, "min-max normalize input columns")
		skip      = flag.Bool("skip-mismatched", false, "skip rows that do not fit the network")
		patience  = flag.Int("patience", 0, "stop after N epochs without improvement (0 disables)")
		csvLog    = flag.String("csv-log", "", "write per-epoch error to this CSV file")
		every     = flag.Int("log-every", 100, "log the epoch error every N epochs (0 disables)")
		logLevel  = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level: %v\n", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}
	labels, err := parseInts(*labelCols)
	if err != nil || len(labels) == 0 {
		logger.Error("invalid -labels", "value", *labelCols, "err", err)
		os.Exit(2)
	}
	sizes, err := parseInts(*layers)
	if err != nil {
		logger.Error("invalid -layers", "value", *layers, "err", err)
		os.Exit(2)
	}

	ds, err := dataset.LoadCSV(*file, labels, *header)
	if err != nil {
		logger.Error("loading dataset", "file", *file, "err", err)
		os.Exit(1)
	}
	if *normalize {
		ds.Normalize()
	}
	trainSet, testSet := ds.Split(*split)
	logger.Info("dataset loaded", "rows", ds.Len(), "train", trainSet.Len(), "test", testSet.Len())

	base := train.Config{
		Layers:         sizes,
		InputWidth:     len(ds.Inputs[0]),
		LearningRate:   *lr,
		Epochs:         *epochs,
		Seed:           *seed,
		SkipMismatched: *skip,
		Logger:         logger,
	}

	var network *net.Network
	if *seeds <= 1 {
		network, err = single(base, trainSet, *every, *patience, *csvLog)
	} else {
		network, err = many(base, trainSet, *seeds, *workers)
	}
	if err != nil {
		logger.Error("training", "err", err)
		os.Exit(1)
	}

	network.Summary(os.Stdout)
	if testSet.Len() > 0 {
		testErr, err := train.Evaluate(network, testSet)
		if err != nil {
			logger.Error("evaluating", "err", err)
			os.Exit(1)
		}
		logger.Info("test set", "rows", testSet.Len(), "error", testErr)
	}
}

func single(cfg train.Config, ds *dataset.Dataset, every, patience int, csvLog string) (*net.Network, error) {
	cfg.LogInterval = every

	var callbacks []train.Callback
	if patience > 0 {
		callbacks = append(callbacks, train.NewEarlyStopping(patience, 0))
	}
	if csvLog != "" {
		callbacks = append(callbacks, train.NewCSVLogger(csvLog, false))
	}

	trainer, err := train.New(cfg, train.WithCallbacks(callbacks...))
	if err != nil {
		return nil, err
	}
	h, err := trainer.Fit(ds, cfg.Epochs)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Info("training done", "epochs", len(h.Loss), "steps", h.Steps, "skipped", h.Skipped, "early_stopped", h.Stopped)
	return trainer.Network(), nil
}

func many(base train.Config, ds *dataset.Dataset, seeds, workers int) (*net.Network, error) {
	configs := make([]train.Config, seeds)
	for i := range configs {
		configs[i] = base
		configs[i].Seed = base.Seed + uint64(i)
	}

	results := train.RunMany(configs, ds, workers)
	for _, r := range results {
		if r.Err != nil {
			base.Logger.Warn("run failed", "seed", r.Config.Seed, "err", r.Err)
			continue
		}
		base.Logger.Info("run done", "seed", r.Config.Seed, "error", r.FinalLoss(), "skipped", r.History.Skipped)
	}

	best, ok := train.Best(results)
	if !ok {
		return nil, results[0].Err
	}
	base.Logger.Info("best run", "seed", best.Config.Seed, "error", best.FinalLoss())
	return best.Network, nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
