package envelope

import (
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

type Compression byte

const (
	CompressionNone Compression = 0
	CompressionZstd Compression = 1
	CompressionLZ4  Compression = 2
)

func (c Compression) valid() bool {
	return c <= CompressionLZ4
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	}
	return fmt.Sprintf("compression(%d)", byte(c))
}

func ParseCompression(text string) (Compression, error) {
	switch strings.ToLower(text) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	}
	return CompressionNone, fmt.Errorf("unknown compression %q, expected none, zstd or lz4", text)
}

// zstd.Encoder and zstd.Decoder are safe for concurrent use of EncodeAll and DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		panic("envelope: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(MaxPayloadLength),
	)
	if err != nil {
		panic("envelope: zstd decoder initialization failed: " + err.Error())
	}
}

// compress returns payload itself with CompressionNone if the algorithm
// does not make it smaller.
func compress(payload []byte, compression Compression) ([]byte, Compression, error) {
	switch compression {
	case CompressionNone:
		return payload, CompressionNone, nil
	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(payload, nil)
		if len(compressed)+4 >= len(payload) {
			return payload, CompressionNone, nil
		}
		return compressed, CompressionZstd, nil
	case CompressionLZ4:
		destination := make([]byte, lz4.CompressBlockBound(len(payload)))
		written, err := lz4.CompressBlock(payload, destination, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("envelope: lz4 compress: %w", err)
		}
		if written == 0 || written+4 >= len(payload) { // 0 means incompressible
			return payload, CompressionNone, nil
		}
		return destination[:written], CompressionLZ4, nil
	}
	return nil, 0, fmt.Errorf("envelope: unknown compression %d", byte(compression))
}

func decompress(body []byte, compression Compression, originalLength int) ([]byte, error) {
	switch compression {
	case CompressionZstd:
		result, err := zstdDecoder.DecodeAll(body, make([]byte, 0, originalLength))
		if err != nil {
			return nil, fmt.Errorf("envelope: zstd decompress: %w", err)
		}
		if len(result) != originalLength {
			return nil, fmt.Errorf("envelope: zstd decompress: got %d bytes, expected %d", len(result), originalLength)
		}
		return result, nil
	case CompressionLZ4:
		destination := make([]byte, originalLength)
		read, err := lz4.UncompressBlock(body, destination)
		if err != nil {
			return nil, fmt.Errorf("envelope: lz4 decompress: %w", err)
		}
		if read != originalLength {
			return nil, fmt.Errorf("envelope: lz4 decompress: got %d bytes, expected %d", read, originalLength)
		}
		return destination, nil
	}
	return nil, fmt.Errorf("envelope: unknown compression %d", byte(compression))
}
