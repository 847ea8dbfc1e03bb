// Package section defines the fixed-size header and the column directory of
// a snapshot file.
//
// Layout:
//
//	header     HeaderSize bytes
//	metadata   MetadataSize bytes (uncompressed key/value strings)
//	payload    PayloadSize bytes, compressed; RawSize bytes once restored
//	             directory: column count, then per column name, type, size
//	             column data, in directory order
//
// The header checksum covers every byte after the header.
package section

// Magic is the first four bytes of every snapshot.
var Magic = [4]byte{'F', 'A', 'M', 'E'}

const (
	// Version is the snapshot format version written by this package.
	Version = 1
	// HeaderSize is the fixed header size in bytes.
	HeaderSize = 32
	// MaxColumns bounds the column count of a directory.
	MaxColumns = 1 << 12
)
