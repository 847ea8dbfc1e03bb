package compress

// NoOpCompressor stores payloads as they are. Compress and Decompress return
// the input slice without copying.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor returns the pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged after checking its length.
func (c NoOpCompressor) Decompress(data []byte, size int) ([]byte, error) {
	return checkSize("none", data, size)
}
