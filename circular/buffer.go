// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package circular implements FIFO ring buffers in two flavours: Buffer owns a
// growable power-of-two slice, BufferExt keeps only positions and works over
// storage supplied by the caller, so it never allocates.
package circular

type Buffer[T any] struct {
	elements []T  // length == capacity == 2^x
	readPos  uint // uint because we rely on integer overflow
	writePos uint
}

func (s *Buffer[T]) Len() int {
	return int(s.writePos - s.readPos) // diff will always fit int and be >= 0
}

func (s *Buffer[T]) Cap() int {
	return len(s.elements)
}

func (s *Buffer[T]) mask() uint { return uint(len(s.elements)) - 1 } // also correct for 0 length

// Slices returns the two parts of the buffer in FIFO order.
func (s *Buffer[T]) Slices() ([]T, []T) {
	m := s.mask()
	if s.writePos&^m == s.readPos&^m {
		return s.elements[s.readPos&m : s.writePos&m], nil
	}
	return s.elements[s.readPos&m:], s.elements[:s.writePos&m]
}

func (s *Buffer[T]) grow(newCapacity int) {
	capacity := len(s.elements)
	if capacity == 0 {
		capacity = 1
	}
	for capacity < newCapacity {
		capacity *= 2
	}
	s1, s2 := s.Slices()
	elements := make([]T, capacity)
	off := copy(elements, s1)
	off += copy(elements[off:], s2)
	if off != len(s1)+len(s2) {
		panic("circular buffer invariant violated in grow")
	}
	s.readPos = 0
	s.writePos = uint(off)
	s.elements = elements
}

// Reserve makes room for at least newCapacity elements, rounded up to a power of two.
func (s *Buffer[T]) Reserve(newCapacity int) {
	if newCapacity > len(s.elements) {
		s.grow(newCapacity)
	}
}

func (s *Buffer[T]) PushBack(element T) {
	capacity := len(s.elements)
	if s.Len() == capacity {
		s.grow(max(4, capacity*2))
	}
	s.elements[s.writePos&s.mask()] = element
	s.writePos++
}

func (s *Buffer[T]) Front() T {
	if s.writePos == s.readPos {
		panic("empty circular buffer")
	}
	return s.elements[s.readPos&s.mask()]
}

func (s *Buffer[T]) Back() T {
	if s.writePos == s.readPos {
		panic("empty circular buffer")
	}
	return s.elements[(s.writePos-1)&s.mask()]
}

func (s *Buffer[T]) Index(pos int) T {
	return *s.IndexRef(pos)
}

func (s *Buffer[T]) IndexRef(pos int) *T {
	if pos < 0 {
		panic("circular buffer index < 0")
	}
	if pos >= s.Len() {
		panic("circular buffer index out of range")
	}
	return &s.elements[(s.readPos+uint(pos))&s.mask()]
}

func (s *Buffer[T]) PopFront() T {
	element, ok := s.TryPopFront()
	if !ok {
		panic("empty circular buffer")
	}
	return element
}

func (s *Buffer[T]) TryPopFront() (T, bool) {
	var empty T
	if s.writePos == s.readPos {
		return empty, false
	}
	offset := s.readPos & s.mask()
	element := s.elements[offset]
	s.elements[offset] = empty // do not keep dangling references in unused parts of buffer
	s.readPos++
	return element, true
}

// Clear drops all elements but keeps the storage for reuse.
func (s *Buffer[T]) Clear() {
	clearSlices(s.Slices())
	s.readPos = 0
	s.writePos = 0
}

func clearSlices[T any](s1 []T, s2 []T) {
	clear(s1)
	clear(s2)
}
