package train

import (
	"math"

	"github.com/FlavioCFOliveira/backprop/internal/dataset"
	"github.com/FlavioCFOliveira/backprop/internal/net"
	"github.com/FlavioCFOliveira/backprop/internal/parallel"
)

// RunResult is the outcome of one independent run.
type RunResult struct {
	Config  Config
	Network *net.Network
	History History
	Err     error
}

// FinalLoss returns the last epoch error, or +Inf for a failed or empty run.
func (r RunResult) FinalLoss() float64 {
	if r.Err != nil || len(r.History.Loss) == 0 {
		return math.Inf(1)
	}
	return r.History.Loss[len(r.History.Loss)-1]
}

// RunMany trains one fresh network per config on ds, at most workers at a
// time. Each run owns its network; ds is only read. Results keep the order
// of configs.
func RunMany(configs []Config, ds *dataset.Dataset, workers int) []RunResult {
	results := make([]RunResult, len(configs))

	parallel.ForEach(len(configs), workers, func(i int) {
		cfg := configs[i]
		results[i].Config = cfg

		t, err := New(cfg)
		if err != nil {
			results[i].Err = err
			return
		}
		results[i].History, results[i].Err = t.Fit(ds, cfg.Epochs)
		results[i].Network = t.Network()
	})

	return results
}

// Best returns the successful result with the lowest final loss.
func Best(results []RunResult) (RunResult, bool) {
	best, found := RunResult{}, false
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !found || r.FinalLoss() < best.FinalLoss() {
			best, found = r, true
		}
	}
	return best, found
}
