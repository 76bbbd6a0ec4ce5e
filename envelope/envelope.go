// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package envelope prepares payloads before they are split into URs:
// optional compression followed by optional passphrase sealing.
//
//	[version][compression][flags]
//	[original length, 4 bytes]        if compressed
//	[salt, 16 bytes][nonce, 24 bytes] if sealed
//	body
//
// The sealed body is XChaCha20-Poly1305 over the (compressed) payload, keyed by
// Argon2id of the passphrase, with everything before the body as associated data.
package envelope

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/hrissan/ur/format"
	"github.com/hrissan/ur/safecast"
	"github.com/hrissan/ur/urrand"
)

const Version = 1

const (
	flagSealed = 1 << 0

	saltSize = 16
	keySize  = chacha20poly1305.KeySize
)

// Argon2id parameters, fixed by the version byte.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// MaxPayloadLength bounds the original length announced by compressed envelopes.
const MaxPayloadLength = 64 << 20

var (
	ErrUnsupportedVersion = errors.New("envelope: unsupported version")
	ErrUnknownFlags       = errors.New("envelope: unknown flags")
	ErrPassphraseRequired = errors.New("envelope: sealed, passphrase required")
	ErrNotSealed          = errors.New("envelope: passphrase given, but envelope is not sealed")
	ErrDecryptFailed      = errors.New("envelope: wrong passphrase or corrupted data")
	ErrTooLarge           = errors.New("envelope: payload too large")
)

type Options struct {
	Compression Compression
	Passphrase  []byte      // empty means not sealed
	Rand        urrand.Rand // salt and nonce source, nil means crypto/rand
}

// Wrap compresses and seals payload. Compression falls back to none when it
// does not make payload smaller.
func Wrap(payload []byte, opts *Options) ([]byte, error) {
	if len(payload) > MaxPayloadLength {
		return nil, ErrTooLarge
	}
	body, compression, err := compress(payload, opts.Compression)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 3+4+saltSize+chacha20poly1305.NonceSizeX+len(body)+chacha20poly1305.Overhead)
	out = append(out, Version, byte(compression))
	out, flagsMark := format.MarkByteOffset(out)
	if compression != CompressionNone {
		out = format.AppendUint32(out, safecast.Cast[uint32](len(payload)))
	}
	if len(opts.Passphrase) == 0 {
		return append(out, body...), nil
	}

	format.FillByteOffset(out, flagsMark, flagSealed)
	rnd := opts.Rand
	if rnd == nil {
		rnd = urrand.CryptoRand()
	}
	var salt [saltSize]byte
	var nonce [chacha20poly1305.NonceSizeX]byte
	rnd.Read(salt[:])
	rnd.Read(nonce[:])
	out = append(out, salt[:]...)
	out = append(out, nonce[:]...)

	aead, err := chacha20poly1305.NewX(deriveKey(opts.Passphrase, salt[:]))
	if err != nil {
		panic("chacha20poly1305.NewX fails " + err.Error())
	}
	header := append([]byte(nil), out...)
	return aead.Seal(out, nonce[:], body, header), nil
}

// Unwrap reverses Wrap. passphrase must be given exactly for sealed envelopes.
func Unwrap(data []byte, passphrase []byte) ([]byte, error) {
	offset, err := format.ParserReadByteConst(data, 0, Version, ErrUnsupportedVersion)
	if err != nil {
		return nil, err
	}
	offset, tag, err := format.ParserReadByte(data, offset)
	if err != nil {
		return nil, err
	}
	compression := Compression(tag)
	if !compression.valid() {
		return nil, fmt.Errorf("envelope: unknown compression %d", tag)
	}
	offset, flags, err := format.ParserReadByte(data, offset)
	if err != nil {
		return nil, err
	}
	if flags&^flagSealed != 0 {
		return nil, ErrUnknownFlags
	}
	originalLength := -1
	if compression != CompressionNone {
		var length uint32
		if offset, length, err = format.ParserReadUint32(data, offset); err != nil {
			return nil, err
		}
		if length > MaxPayloadLength {
			return nil, ErrTooLarge
		}
		originalLength = int(length)
	}

	sealed := flags&flagSealed != 0
	if sealed && len(passphrase) == 0 {
		return nil, ErrPassphraseRequired
	}
	if !sealed && len(passphrase) != 0 {
		return nil, ErrNotSealed
	}

	var body []byte
	if sealed {
		var salt [saltSize]byte
		var nonce [chacha20poly1305.NonceSizeX]byte
		if offset, err = format.ParserReadFixedBytes(data, offset, salt[:]); err != nil {
			return nil, err
		}
		if offset, err = format.ParserReadFixedBytes(data, offset, nonce[:]); err != nil {
			return nil, err
		}
		header := data[:offset]
		_, ciphertext, err := format.ParserReadRest(data, offset)
		if err != nil {
			return nil, err
		}
		aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt[:]))
		if err != nil {
			panic("chacha20poly1305.NewX fails " + err.Error())
		}
		if body, err = aead.Open(nil, nonce[:], ciphertext, header); err != nil {
			return nil, ErrDecryptFailed
		}
	} else if _, body, err = format.ParserReadRest(data, offset); err != nil {
		return nil, err
	}

	if compression == CompressionNone {
		return append([]byte{}, body...), nil
	}
	return decompress(body, compression, originalLength)
}

func deriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, keySize)
}
