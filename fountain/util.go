// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package fountain implements the rateless code carrying UR messages.
// The Encoder splits a message into equal fragments and emits an unbounded
// stream of parts, first every fragment in order, then XOR combinations of
// fragments selected by a PRNG seeded from the part's sequence number and the
// message checksum. The Decoder accepts parts in any order, with loss and
// duplicates, and peels combinations until every fragment is known.
package fountain

func divCeil(a int, b int) int {
	d := a / b
	if a%b != 0 {
		return d + 1
	}
	return d
}

// FragmentLength spreads messageLength evenly over the smallest number of
// fragments not longer than maxFragmentLength.
func FragmentLength(messageLength int, maxFragmentLength int) int {
	if maxFragmentLength <= 0 {
		panic("fragment length must be greater than zero")
	}
	fragmentCount := divCeil(messageLength, maxFragmentLength)
	if fragmentCount == 0 {
		return 0
	}
	return divCeil(messageLength, fragmentCount)
}

func xorInto(dst []byte, src []byte) {
	if len(dst) != len(src) {
		panic("xor of slices with different length")
	}
	for i, b := range src {
		dst[i] ^= b
	}
}

// isSubset reports whether sorted a is contained in sorted b.
func isSubset(a []int, b []int) bool {
	if len(a) > len(b) {
		return false
	}
	j := 0
	for _, v := range a {
		for j < len(b) && b[j] < v {
			j++
		}
		if j == len(b) || b[j] != v {
			return false
		}
		j++
	}
	return true
}

// subtractInPlace removes sorted sub from sorted from, reusing its storage.
func subtractInPlace(from []int, sub []int) []int {
	result := from[:0]
	j := 0
	for _, v := range from {
		for j < len(sub) && sub[j] < v {
			j++
		}
		if j < len(sub) && sub[j] == v {
			continue
		}
		result = append(result, v)
	}
	return result
}

func containsIndex(indexes []int, index int) bool {
	for _, v := range indexes {
		if v == index {
			return true
		}
		if v > index {
			return false
		}
	}
	return false
}

func equalIndexes(a []int, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
