// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package circular

// BufferExt is like Buffer, but with external storage, which must have power of 2 length.
// The same storage must be passed to every call.

type BufferExt[T any] struct {
	readPos  uint // uint because we rely on integer overflow
	writePos uint
}

// StorageSize rounds capacity up to the storage length BufferExt accepts.
func StorageSize(capacity int) int {
	size := 1
	for size < capacity {
		size *= 2
	}
	return size
}

func (s *BufferExt[T]) Len() int {
	return int(s.writePos - s.readPos) // diff will always fit int and be >= 0
}

func (s *BufferExt[T]) mask(elements []T) uint {
	m := uint(len(elements)) - 1 // also correct for 0 length
	if uint(len(elements))&m != 0 {
		panic("circular buffer storage length must be power of 2")
	}
	return m
}

// Slices returns the two parts of the buffer in FIFO order.
func (s *BufferExt[T]) Slices(elements []T) ([]T, []T) {
	m := s.mask(elements)
	if s.writePos&^m == s.readPos&^m {
		return elements[s.readPos&m : s.writePos&m], nil
	}
	return elements[s.readPos&m:], elements[:s.writePos&m]
}

// Full reports whether the next PushBack would panic.
func (s *BufferExt[T]) Full(elements []T) bool {
	return s.Len() == len(elements)
}

func (s *BufferExt[T]) PushBack(elements []T, element T) {
	if s.Full(elements) {
		panic("full circular buffer")
	}
	elements[s.writePos&s.mask(elements)] = element
	s.writePos++
}

func (s *BufferExt[T]) Front(elements []T) T {
	if s.writePos == s.readPos {
		panic("empty circular buffer")
	}
	return elements[s.readPos&s.mask(elements)]
}

func (s *BufferExt[T]) Back(elements []T) T {
	if s.writePos == s.readPos {
		panic("empty circular buffer")
	}
	return elements[(s.writePos-1)&s.mask(elements)]
}

func (s *BufferExt[T]) Index(elements []T, pos int) T {
	if pos < 0 {
		panic("circular buffer index < 0")
	}
	if pos >= s.Len() {
		panic("circular buffer index out of range")
	}
	return elements[(s.readPos+uint(pos))&s.mask(elements)]
}

func (s *BufferExt[T]) PopFront(elements []T) T {
	t, ok := s.TryPopFront(elements)
	if !ok {
		panic("empty circular buffer")
	}
	return t
}

func (s *BufferExt[T]) TryPopFront(elements []T) (T, bool) {
	var empty T
	if s.writePos == s.readPos {
		return empty, false
	}
	offset := s.readPos & s.mask(elements)
	element := elements[offset]
	elements[offset] = empty // do not keep dangling references in unused parts of buffer
	s.readPos++
	return element, true
}

func (s *BufferExt[T]) Clear(elements []T) {
	clearSlices(s.Slices(elements))
	s.readPos = 0
	s.writePos = 0
}
