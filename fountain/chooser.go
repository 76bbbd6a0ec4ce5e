// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package fountain

import (
	"encoding/binary"
	"slices"

	"github.com/hrissan/ur/xoshiro"
)

// FragmentChooser computes which fragments a part carries. Encoder and
// decoder must agree bit for bit, so everything here is deterministic.
// The sampler for the degree distribution depends only on the sequence
// count, so it is rebuilt only when the count changes.
type FragmentChooser struct {
	sampler      Sampler
	samplerCount uint32

	weights  []float64
	indexes  []int
	shuffled []int
}

// ChooseFragments is a convenience wrapper allocating a fresh chooser.
func ChooseFragments(sequence uint32, sequenceCount uint32, checksum uint32) []int {
	var c FragmentChooser
	return c.AppendFragments(nil, sequence, sequenceCount, checksum)
}

// ChooseFragments returns the sorted fragment indexes of the part.
func (c *FragmentChooser) ChooseFragments(sequence uint32, sequenceCount uint32, checksum uint32) []int {
	return c.AppendFragments(nil, sequence, sequenceCount, checksum)
}

// AppendFragments appends the sorted fragment indexes of the part to dst.
// Panics if sequence or sequenceCount is zero.
func (c *FragmentChooser) AppendFragments(dst []int, sequence uint32, sequenceCount uint32, checksum uint32) []int {
	if sequence == 0 || sequenceCount == 0 {
		panic("sequence and sequence count must be greater than zero")
	}
	if sequence <= sequenceCount {
		return append(dst, int(sequence-1))
	}

	var seed [8]byte
	binary.BigEndian.PutUint32(seed[0:], sequence)
	binary.BigEndian.PutUint32(seed[4:], checksum)
	prng := xoshiro.FromBytes(seed[:])

	degree := c.chooseDegree(&prng, sequenceCount)

	c.indexes = c.indexes[:0]
	for i := 0; i < int(sequenceCount); i++ {
		c.indexes = append(c.indexes, i)
	}
	c.shuffled = shuffleIndexes(&prng, c.indexes, c.shuffled[:0], degree)

	start := len(dst)
	dst = append(dst, c.shuffled...)
	slices.Sort(dst[start:])
	return dst
}

func (c *FragmentChooser) chooseDegree(prng *xoshiro.Xoshiro256, sequenceCount uint32) int {
	if c.samplerCount != sequenceCount {
		c.weights = c.weights[:0]
		for i := uint32(0); i < sequenceCount; i++ {
			c.weights = append(c.weights, 1/float64(i+1))
		}
		c.sampler.Set(c.weights)
		c.samplerCount = sequenceCount
	}
	return c.sampler.Next(prng) + 1
}

// shuffleIndexes moves degree uniformly chosen elements of indexes to shuffled,
// removing each from indexes while keeping the order of the rest.
func shuffleIndexes(prng *xoshiro.Xoshiro256, indexes []int, shuffled []int, degree int) []int {
	for len(shuffled) < degree {
		i := int(prng.NextInt(0, uint64(len(indexes)-1)))
		shuffled = append(shuffled, indexes[i])
		indexes = slices.Delete(indexes, i, i+1)
	}
	return shuffled
}
