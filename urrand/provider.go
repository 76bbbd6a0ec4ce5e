// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package urrand

import "crypto/rand"

// We need to fix salts and nonces for tests, hence abstraction

type Rand interface {
	Read(data []byte)
}

type cryptoRand struct {
}

func (c *cryptoRand) Read(data []byte) {
	if _, err := rand.Read(data); err != nil {
		panic("failed to read crypto rand: " + err.Error())
	}
}

type fixedRand struct {
	counter byte
}

// Read fills data with an incrementing byte sequence continued across calls,
// so consecutive salt and nonce reads differ.
func (c *fixedRand) Read(data []byte) {
	for i := range data {
		data[i] = c.counter
		c.counter++
	}
}

func CryptoRand() Rand {
	return &cryptoRand{}
}

func FixedRand() Rand {
	return &fixedRand{}
}
