// Package compress provides the snapshot payload codecs.
//
// A snapshot stores the size of its uncompressed payload in the header, so
// every Decompress call knows the exact output size up front.
package compress

import (
	"fmt"

	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/format"
)

// Compressor compresses a complete snapshot payload.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not
	// modified; the result may alias it for the no-op codec.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original payload. size is the uncompressed
	// length recorded by the writer; a mismatch is reported as an error.
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both directions. Implementations are safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}

func checkSize(name string, out []byte, size int) ([]byte, error) {
	if len(out) != size {
		return nil, fmt.Errorf("%s: decompressed %d bytes, expected %d", name, len(out), size)
	}

	return out, nil
}
