// Package opt provides benchmarks for the SGD rule.
package opt

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func randomVec(n int) *mat.VecDense {
	data := make([]float64, n)
	for i := range data {
		data[i] = rand.Float64()
	}
	return mat.NewVecDense(n, data)
}

// BenchmarkSGDWeightDelta benchmarks the outer-product update for a 128x128 layer.
func BenchmarkSGDWeightDelta(b *testing.B) {
	sgd := SGD{LearningRate: 0.1}
	delta := randomVec(128)
	prev := randomVec(128)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sgd.WeightDelta(delta, prev)
	}
}

// BenchmarkSGDUpdate benchmarks applying a weight and bias update.
func BenchmarkSGDUpdate(b *testing.B) {
	sgd := SGD{LearningRate: 0.1}
	w := mat.NewDense(128, 128, nil)
	bias := mat.NewVecDense(128, nil)
	delta := randomVec(128)
	dw := sgd.WeightDelta(delta, randomVec(128))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sgd.UpdateWeights(w, dw)
		sgd.UpdateBias(bias, delta)
	}
}
