package algorithms

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// WeightSampling picks the distribution random weight vectors come from.
type WeightSampling int

const (
	// Dirichlet samples from a symmetric Dirichlet(1,...,1), i.e. uniformly
	// on the probability simplex.
	Dirichlet WeightSampling = iota
	// Uniform normalizes i.i.d. U(0,1) draws. It is biased towards the
	// simplex center compared to Dirichlet.
	Uniform
)

func (s WeightSampling) String() string {
	switch s {
	case Dirichlet:
		return "Dirichlet"
	case Uniform:
		return "Uniform"
	}
	return fmt.Sprintf("WeightSampling(%d)", int(s))
}

// WeightSampler draws weight vectors with non-negative entries summing to 1.
type WeightSampler interface {
	Sample() []float64
}

// NewWeightSampler returns a sampler of m-dimensional weights driven by src.
func NewWeightSampler(kind WeightSampling, m int, src rand.Source) (WeightSampler, error) {
	switch kind {
	case Dirichlet:
		alpha := make([]float64, m)
		for i := range alpha {
			alpha[i] = 1
		}
		return &dirichletSampler{dist: distmv.NewDirichlet(alpha, src)}, nil
	case Uniform:
		return &uniformSampler{m: m, dist: distuv.Uniform{Min: 0, Max: 1, Src: src}}, nil
	}
	return nil, fmt.Errorf("unknown weight sampling %v", kind)
}

type dirichletSampler struct {
	dist *distmv.Dirichlet
}

func (s *dirichletSampler) Sample() []float64 {
	return s.dist.Rand(nil)
}

type uniformSampler struct {
	m    int
	dist distuv.Uniform
}

func (s *uniformSampler) Sample() []float64 {
	w := make([]float64, s.m)
	for i := range w {
		w[i] = s.dist.Rand()
	}
	sum := floats.Sum(w)
	if sum == 0 {
		// every draw was exactly zero; fall back to the simplex center
		for i := range w {
			w[i] = 1 / float64(s.m)
		}
		return w
	}
	floats.Scale(1/sum, w)
	return w
}
