// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package fountain

import (
	"github.com/hrissan/ur/xoshiro"
)

// Sampler draws indexes with probability proportional to their weights using
// Vose's alias method. Set is O(n), Next is O(1) with two PRNG draws.
// Scratch slices are reused between Set calls.
type Sampler struct {
	aliases []int
	probs   []float64
	weights []float64

	small []int
	large []int
}

// Set panics if a weight is negative or if weights do not sum to a positive value.
func (s *Sampler) Set(weights []float64) {
	s.weights = append(s.weights[:0], weights...)

	summed := 0.0
	for _, p := range s.weights {
		if p < 0 {
			panic("negative probability encountered")
		}
		summed += p
	}
	if !(summed > 0) {
		panic("probabilities don't sum to a positive value")
	}

	ratio := float64(len(s.weights)) / summed
	for i := range s.weights {
		s.weights[i] *= ratio
	}

	s.reset(len(s.weights))

	for i := len(s.weights) - 1; i >= 0; i-- {
		if s.weights[i] < 1 {
			s.small = append(s.small, i)
		} else {
			s.large = append(s.large, i)
		}
	}

	for len(s.small) != 0 && len(s.large) != 0 {
		a := s.small[len(s.small)-1]
		s.small = s.small[:len(s.small)-1]
		g := s.large[len(s.large)-1]
		s.large = s.large[:len(s.large)-1]

		s.probs[a] = s.weights[a]
		s.aliases[a] = g
		s.weights[g] += s.weights[a] - 1
		if s.weights[g] < 1 {
			s.small = append(s.small, g)
		} else {
			s.large = append(s.large, g)
		}
	}

	for _, g := range s.large {
		s.probs[g] = 1
	}
	for _, a := range s.small {
		s.probs[a] = 1
	}
	s.large = s.large[:0]
	s.small = s.small[:0]
}

func (s *Sampler) Len() int { return len(s.probs) }

func (s *Sampler) Next(prng *xoshiro.Xoshiro256) int {
	r1 := prng.NextDouble()
	r2 := prng.NextDouble()
	i := int(float64(len(s.probs)) * r1)
	if r2 < s.probs[i] {
		return i
	}
	return s.aliases[i]
}

func (s *Sampler) reset(n int) {
	s.small = s.small[:0]
	s.large = s.large[:0]
	s.aliases = resizeZeroed(s.aliases, n)
	s.probs = resizeZeroed(s.probs, n)
}

func resizeZeroed[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	s = s[:n]
	clear(s)
	return s
}
