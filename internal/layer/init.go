package layer

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Initializer produces the starting parameters of a dense layer.
type Initializer interface {
	// Weights returns fanOut*fanIn values, row-major (one row per unit).
	Weights(fanIn, fanOut int) []float64
	// Biases returns fanOut values.
	Biases(fanIn, fanOut int) []float64
}

// Zeros initializes every weight and bias to 0.
type Zeros struct{}

func (Zeros) Weights(fanIn, fanOut int) []float64 { return make([]float64, fanIn*fanOut) }
func (Zeros) Biases(fanIn, fanOut int) []float64  { return make([]float64, fanOut) }

// Constant initializes every weight to Weight and every bias to Bias.
type Constant struct {
	Weight float64
	Bias   float64
}

func (c Constant) Weights(fanIn, fanOut int) []float64 { return fill(fanIn*fanOut, c.Weight) }
func (c Constant) Biases(fanIn, fanOut int) []float64  { return fill(fanOut, c.Bias) }

func fill(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// Xavier is Glorot uniform initialization: weights ~ U(-s, s) with
// s = sqrt(2 / (fanIn + fanOut)) and biases ~ U(-0.1, 0.1).
// A nil Src draws from the global source.
type Xavier struct {
	Src rand.Source
}

// NewXavier returns a Xavier initializer with a source seeded by seed.
func NewXavier(seed uint64) Xavier {
	return Xavier{Src: rand.NewSource(seed)}
}

func (x Xavier) Weights(fanIn, fanOut int) []float64 {
	scale := math.Sqrt(2.0 / (float64(fanIn) + float64(fanOut)))
	return draw(distuv.Uniform{Min: -scale, Max: scale, Src: x.Src}, fanIn*fanOut)
}

func (x Xavier) Biases(fanIn, fanOut int) []float64 {
	return draw(distuv.Uniform{Min: -0.1, Max: 0.1, Src: x.Src}, fanOut)
}

// Uniform draws weights and biases from U(Min, Max).
type Uniform struct {
	Min, Max float64
	Src      rand.Source
}

func (u Uniform) Weights(fanIn, fanOut int) []float64 {
	return draw(distuv.Uniform{Min: u.Min, Max: u.Max, Src: u.Src}, fanIn*fanOut)
}

func (u Uniform) Biases(fanIn, fanOut int) []float64 {
	return draw(distuv.Uniform{Min: u.Min, Max: u.Max, Src: u.Src}, fanOut)
}

// Normal draws weights and biases from N(Mean, StdDev²).
type Normal struct {
	Mean, StdDev float64
	Src          rand.Source
}

func (n Normal) Weights(fanIn, fanOut int) []float64 {
	return draw(distuv.Normal{Mu: n.Mean, Sigma: n.StdDev, Src: n.Src}, fanIn*fanOut)
}

func (n Normal) Biases(fanIn, fanOut int) []float64 {
	return draw(distuv.Normal{Mu: n.Mean, Sigma: n.StdDev, Src: n.Src}, fanOut)
}

type sampler interface {
	Rand() float64
}

func draw(dist sampler, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = dist.Rand()
	}
	return s
}
