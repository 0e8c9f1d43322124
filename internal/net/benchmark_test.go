// Package net provides benchmarks for neural network training.
package net

import (
	"math/rand"
	"testing"
)

// fillRandom fills a slice with random values.
func fillRandom(slice []float64) {
	for i := range slice {
		slice[i] = rand.Float64()
	}
}

func benchNetwork(b *testing.B) *Network {
	network, err := New([]int{256, 128, 10}, 784, WithSeed(1))
	if err != nil {
		b.Fatal(err)
	}
	return network
}

// BenchmarkNetworkForward benchmarks a forward pass through a small network.
func BenchmarkNetworkForward(b *testing.B) {
	network := benchNetwork(b)
	input := make([]float64, 784)
	fillRandom(input)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = network.Forward(input)
	}
}

// BenchmarkNetworkBackward benchmarks the delta computation.
func BenchmarkNetworkBackward(b *testing.B) {
	network := benchNetwork(b)
	input := make([]float64, 784)
	target := make([]float64, 10)
	fillRandom(input)
	fillRandom(target)

	acts, err := network.Forward(input)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = network.Backward(acts, target)
	}
}

// BenchmarkNetworkTrain benchmarks training on a single sample.
func BenchmarkNetworkTrain(b *testing.B) {
	network := benchNetwork(b)
	input := make([]float64, 784)
	target := make([]float64, 10)
	fillRandom(input)
	fillRandom(target)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = network.Train(input, target, 0.1)
	}
}

// BenchmarkNetworkParams benchmarks getting all network parameters.
func BenchmarkNetworkParams(b *testing.B) {
	network := benchNetwork(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = network.Params()
	}
}
